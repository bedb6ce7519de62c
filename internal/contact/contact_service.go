package contact

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mindlyst/internal/events"
	"mindlyst/internal/models"
)

var (
	ErrSelfContact     = errors.New("cannot add yourself as a contact")
	ErrContactExists   = errors.New("contact already exists")
	ErrRequestPending  = errors.New("a contact request is already pending")
	ErrUserNotFound    = errors.New("user not found")
	ErrRequestNotFound = errors.New("request not found or already processed")
)

// UserDirectory resolves request participants. Lookups return nil without
// error when no user matches.
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Search(ctx context.Context, query, excludeID string) ([]models.User, error)
}

// Notifier pushes an event to a user's live connections.
type Notifier interface {
	Notify(userID string, event events.Event)
}

// Service owns the contact request state machine and the contact ledger.
// Both ledgers are whole-document JSON collections, so every check here is
// check-then-act: two racing callers can both pass a duplicate check and
// both append. That is accepted behavior on the single-writer deployment
// this service targets.
type Service struct {
	contacts  *ContactRepository
	requests  *RequestRepository
	directory UserDirectory
	publisher events.Publisher
	notifier  Notifier
}

func NewService(contacts *ContactRepository, requests *RequestRepository, directory UserDirectory, publisher events.Publisher, notifier Notifier) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		contacts:  contacts,
		requests:  requests,
		directory: directory,
		publisher: publisher,
		notifier:  notifier,
	}
}

// publish is best-effort: the ledger write already happened, so a failed
// notification is logged and swallowed.
func (s *Service) publish(ctx context.Context, evt events.Event) {
	evt.At = time.Now().UnixMilli()
	if s.notifier != nil {
		s.notifier.Notify(evt.UserID, evt)
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		slog.Error("failed to publish contact event", "type", evt.Type, "error", err)
	}
}

// Contacts returns the edges owned by userID.
func (s *Service) Contacts(ctx context.Context, userID string) ([]models.Contact, error) {
	return s.contacts.ListByUser(ctx, userID)
}

// CreateRequest opens a pending request from requesterID to recipientID.
// The duplicate-pending check covers the requester-to-recipient direction
// only; a pending request the other way around does not block this one.
func (s *Service) CreateRequest(ctx context.Context, requesterID, recipientID string) (*models.ContactRequest, error) {
	if requesterID == recipientID {
		return nil, ErrSelfContact
	}

	exists, err := s.contacts.ExistsBetween(ctx, requesterID, recipientID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrContactExists
	}

	pending, err := s.requests.HasPending(ctx, requesterID, recipientID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrRequestPending
	}

	requester, err := s.directory.FindByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, ErrUserNotFound
	}

	req := models.ContactRequest{
		ID:                uuid.NewString(),
		RequesterID:       requesterID,
		RequesterUsername: requester.Username,
		RequesterEmail:    requester.Email,
		RecipientID:       recipientID,
		Status:            models.RequestPending,
		CreatedAt:         time.Now().UnixMilli(),
	}
	if err := s.requests.Append(ctx, req); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.TypeRequestCreated,
		UserID:    recipientID,
		ActorID:   requesterID,
		RequestID: req.ID,
	})
	return &req, nil
}

// Accept resolves a pending request addressed to actingUserID and
// materializes the relation as two directional edges, one per side, in a
// single ledger write. The returned edge is the accepting user's.
//
// The status write lands before the participants are resolved, mirroring
// the data files produced so far: a directory miss at this point leaves
// the request accepted with no edges.
func (s *Service) Accept(ctx context.Context, requestID, actingUserID string) (*models.Contact, error) {
	req, err := s.requests.Resolve(ctx, requestID, actingUserID, models.RequestAccepted)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}

	requester, err := s.directory.FindByID(ctx, req.RequesterID)
	if err != nil {
		return nil, err
	}
	recipient, err := s.directory.FindByID(ctx, req.RecipientID)
	if err != nil {
		return nil, err
	}
	if requester == nil || recipient == nil {
		return nil, ErrUserNotFound
	}

	now := time.Now().UnixMilli()
	forRequester := models.Contact{
		ID:              uuid.NewString(),
		UserID:          req.RequesterID,
		ContactUserID:   req.RecipientID,
		ContactUsername: recipient.Username,
		ContactEmail:    recipient.Email,
		CreatedAt:       now,
	}
	forRecipient := models.Contact{
		ID:              uuid.NewString(),
		UserID:          req.RecipientID,
		ContactUserID:   req.RequesterID,
		ContactUsername: requester.Username,
		ContactEmail:    requester.Email,
		CreatedAt:       now,
	}
	if err := s.contacts.Append(ctx, forRequester, forRecipient); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.TypeRequestAccepted,
		UserID:    req.RequesterID,
		ActorID:   actingUserID,
		RequestID: req.ID,
	})
	return &forRecipient, nil
}

// Reject resolves a pending request addressed to actingUserID. No edges
// are created.
func (s *Service) Reject(ctx context.Context, requestID, actingUserID string) error {
	req, err := s.requests.Resolve(ctx, requestID, actingUserID, models.RequestRejected)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrRequestNotFound
	}

	s.publish(ctx, events.Event{
		Type:      events.TypeRequestRejected,
		UserID:    req.RequesterID,
		ActorID:   actingUserID,
		RequestID: req.ID,
	})
	return nil
}

// PendingRequests returns the pending requests addressed to userID.
func (s *Service) PendingRequests(ctx context.Context, userID string) ([]models.ContactRequest, error) {
	return s.requests.PendingForRecipient(ctx, userID)
}

// AddContact is the legacy direct-insert path kept for callers that
// predate the request workflow. It creates a single one-directional edge
// and is idempotent: an existing edge is returned as-is. The existence
// check runs before the self check, which is the order the legacy callers
// rely on.
func (s *Service) AddContact(ctx context.Context, userID, contactUserID string) (*models.Contact, error) {
	existing, err := s.contacts.FindOwned(ctx, userID, contactUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if userID == contactUserID {
		return nil, ErrSelfContact
	}

	contactUser, err := s.directory.FindByID(ctx, contactUserID)
	if err != nil {
		return nil, err
	}
	if contactUser == nil {
		return nil, ErrUserNotFound
	}

	edge := models.Contact{
		ID:              uuid.NewString(),
		UserID:          userID,
		ContactUserID:   contactUserID,
		ContactUsername: contactUser.Username,
		ContactEmail:    contactUser.Email,
		CreatedAt:       time.Now().UnixMilli(),
	}
	if err := s.contacts.Append(ctx, edge); err != nil {
		return nil, err
	}
	return &edge, nil
}

// RemoveContact deletes an edge owned by userID. A miss is reported as
// false, never as an error.
func (s *Service) RemoveContact(ctx context.Context, userID, contactID string) (bool, error) {
	removed, err := s.contacts.Remove(ctx, userID, contactID)
	if err != nil {
		return false, err
	}
	if removed == nil {
		return false, nil
	}

	s.publish(ctx, events.Event{
		Type:      events.TypeContactRemoved,
		UserID:    removed.ContactUserID,
		ActorID:   userID,
		ContactID: removed.ID,
	})
	return true, nil
}

// SearchUsers finds directory entries by username substring, excluding the
// caller, capped at ten results.
func (s *Service) SearchUsers(ctx context.Context, query, excludeUserID string) ([]models.PublicUser, error) {
	users, err := s.directory.Search(ctx, query, excludeUserID)
	if err != nil {
		return nil, err
	}
	results := make([]models.PublicUser, 0, len(users))
	for i := range users {
		results = append(results, users[i].Public())
	}
	return results, nil
}

// FindUserByUsername is a case-insensitive exact lookup. It returns nil
// when no user matches.
func (s *Service) FindUserByUsername(ctx context.Context, username string) (*models.PublicUser, error) {
	u, err := s.directory.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	public := u.Public()
	return &public, nil
}
