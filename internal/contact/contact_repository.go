package contact

import (
	"context"

	"mindlyst/internal/models"
	"mindlyst/internal/store"
)

const contactsFile = "contacts.json"

// ContactRepository is the contact ledger: directional edges persisted as
// one JSON document, scanned linearly. Every mutation is a whole-document
// read-modify-write; two concurrent writers race and the last one wins.
type ContactRepository struct {
	store store.DocumentStore
}

func NewContactRepository(s store.DocumentStore) *ContactRepository {
	return &ContactRepository{store: s}
}

func (r *ContactRepository) load(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := r.store.Read(ctx, contactsFile, &contacts, []models.Contact{}); err != nil {
		return nil, err
	}
	return contacts, nil
}

// ListByUser returns the edges owned by userID, in persisted order.
func (r *ContactRepository) ListByUser(ctx context.Context, userID string) ([]models.Contact, error) {
	contacts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	owned := []models.Contact{}
	for _, c := range contacts {
		if c.UserID == userID {
			owned = append(owned, c)
		}
	}
	return owned, nil
}

// ExistsBetween reports whether any edge links the two users, in either
// direction.
func (r *ContactRepository) ExistsBetween(ctx context.Context, a, b string) (bool, error) {
	contacts, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	for _, c := range contacts {
		if (c.UserID == a && c.ContactUserID == b) || (c.UserID == b && c.ContactUserID == a) {
			return true, nil
		}
	}
	return false, nil
}

// FindOwned returns the edge owned by userID pointing at contactUserID, or
// nil when there is none.
func (r *ContactRepository) FindOwned(ctx context.Context, userID, contactUserID string) (*models.Contact, error) {
	contacts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range contacts {
		if contacts[i].UserID == userID && contacts[i].ContactUserID == contactUserID {
			c := contacts[i]
			return &c, nil
		}
	}
	return nil, nil
}

// Append adds edges in one write, so the two edges of an acceptance land
// together.
func (r *ContactRepository) Append(ctx context.Context, edges ...models.Contact) error {
	contacts, err := r.load(ctx)
	if err != nil {
		return err
	}
	contacts = append(contacts, edges...)
	return r.store.Write(ctx, contactsFile, contacts)
}

// Remove deletes the edge only if userID owns it and returns the removed
// edge, or nil when nothing matched. It never errors on a miss.
func (r *ContactRepository) Remove(ctx context.Context, userID, contactID string) (*models.Contact, error) {
	contacts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	var removed *models.Contact
	kept := make([]models.Contact, 0, len(contacts))
	for _, c := range contacts {
		if c.ID == contactID && c.UserID == userID {
			edge := c
			removed = &edge
			continue
		}
		kept = append(kept, c)
	}
	if removed == nil {
		return nil, nil
	}
	if err := r.store.Write(ctx, contactsFile, kept); err != nil {
		return nil, err
	}
	return removed, nil
}
