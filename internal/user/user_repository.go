package user

import (
	"context"
	"strings"

	"mindlyst/internal/models"
	"mindlyst/internal/store"
)

const usersFile = "users.json"

// maxSearchResults caps directory searches.
const maxSearchResults = 10

// Repository is the user directory: the read side used to resolve request
// participants, plus the account creation path used by signup. Lookups are
// linear scans over the whole document.
type Repository struct {
	store store.DocumentStore
}

func NewRepository(s store.DocumentStore) *Repository {
	return &Repository{store: s}
}

func (r *Repository) load(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.store.Read(ctx, usersFile, &users, []models.User{}); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByID returns nil when no user matches.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// FindByEmail matches the normalized (lowercased) email exactly.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// FindByUsername is a case-insensitive exact match.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(username)
	for i := range users {
		if strings.ToLower(users[i].Username) == lower {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// Search returns users whose username contains query (case-insensitive),
// excluding excludeID, in directory order, capped at maxSearchResults.
func (r *Repository) Search(ctx context.Context, query, excludeID string) ([]models.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(query)
	matches := make([]models.User, 0, maxSearchResults)
	for i := range users {
		if users[i].ID == excludeID {
			continue
		}
		if !strings.Contains(strings.ToLower(users[i].Username), lower) {
			continue
		}
		matches = append(matches, users[i])
		if len(matches) == maxSearchResults {
			break
		}
	}
	return matches, nil
}

func (r *Repository) Create(ctx context.Context, u models.User) error {
	users, err := r.load(ctx)
	if err != nil {
		return err
	}
	users = append(users, u)
	return r.store.Write(ctx, usersFile, users)
}
