package contact

import (
	"context"

	"mindlyst/internal/models"
	"mindlyst/internal/store"
)

const requestsFile = "contact-requests.json"

// RequestRepository is the contact request ledger. Requests are appended,
// resolved in place, and never deleted.
type RequestRepository struct {
	store store.DocumentStore
}

func NewRequestRepository(s store.DocumentStore) *RequestRepository {
	return &RequestRepository{store: s}
}

func (r *RequestRepository) load(ctx context.Context) ([]models.ContactRequest, error) {
	var requests []models.ContactRequest
	if err := r.store.Read(ctx, requestsFile, &requests, []models.ContactRequest{}); err != nil {
		return nil, err
	}
	return requests, nil
}

// PendingForRecipient returns the pending requests addressed to userID, in
// persisted order.
func (r *RequestRepository) PendingForRecipient(ctx context.Context, userID string) ([]models.ContactRequest, error) {
	requests, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	pending := []models.ContactRequest{}
	for _, req := range requests {
		if req.RecipientID == userID && req.Status == models.RequestPending {
			pending = append(pending, req)
		}
	}
	return pending, nil
}

// HasPending checks the exact requester-to-recipient direction only. The
// reverse direction is deliberately not considered: two users asking each
// other produce two independent pending requests.
func (r *RequestRepository) HasPending(ctx context.Context, requesterID, recipientID string) (bool, error) {
	requests, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	for _, req := range requests {
		if req.RequesterID == requesterID && req.RecipientID == recipientID && req.Status == models.RequestPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *RequestRepository) Append(ctx context.Context, req models.ContactRequest) error {
	requests, err := r.load(ctx)
	if err != nil {
		return err
	}
	requests = append(requests, req)
	return r.store.Write(ctx, requestsFile, requests)
}

// Resolve moves a pending request addressed to recipientID into a terminal
// status and persists the ledger. It returns nil when no record matches:
// unknown id, already resolved, or addressed to someone else all look the
// same to the caller.
func (r *RequestRepository) Resolve(ctx context.Context, requestID, recipientID, status string) (*models.ContactRequest, error) {
	requests, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range requests {
		if requests[i].ID != requestID || requests[i].RecipientID != recipientID || requests[i].Status != models.RequestPending {
			continue
		}
		requests[i].Status = status
		if err := r.store.Write(ctx, requestsFile, requests); err != nil {
			return nil, err
		}
		resolved := requests[i]
		return &resolved, nil
	}
	return nil, nil
}
