package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"mindlyst/internal/models"
	"mindlyst/internal/store"
)

const sessionsFile = "sessions.json"

// SessionCookie is the cookie carrying the opaque session token.
const SessionCookie = "mindlyst_session"

// SessionDuration matches the frontend's cookie lifetime.
const SessionDuration = 7 * 24 * time.Hour

// SessionRepository persists opaque session tokens. The JSON document is
// the source of truth; when a Redis client is configured, token lookups go
// through it first and cache misses fall back to the document.
type SessionRepository struct {
	store store.DocumentStore
	cache *redis.Client
}

func NewSessionRepository(s store.DocumentStore, cache *redis.Client) *SessionRepository {
	return &SessionRepository{store: s, cache: cache}
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// active loads the session document and drops expired entries, rewriting
// the document when anything was pruned.
func (r *SessionRepository) active(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	if err := r.store.Read(ctx, sessionsFile, &sessions, []models.Session{}); err != nil {
		return nil, err
	}
	now := time.Now().UnixMilli()
	kept := make([]models.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.ExpiresAt > now {
			kept = append(kept, s)
		}
	}
	if len(kept) != len(sessions) {
		if err := r.store.Write(ctx, sessionsFile, kept); err != nil {
			return nil, err
		}
	}
	return kept, nil
}

func (r *SessionRepository) cacheKey(token string) string {
	return "session:" + token
}

// Get returns nil when the token is unknown or expired.
func (r *SessionRepository) Get(ctx context.Context, token string) (*models.Session, error) {
	if r.cache != nil {
		userID, err := r.cache.Get(ctx, r.cacheKey(token)).Result()
		if err == nil {
			return &models.Session{Token: token, UserID: userID}, nil
		}
		if err != redis.Nil {
			slog.Warn("session cache lookup failed", "error", err)
		}
	}

	sessions, err := r.active(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range sessions {
		if s.Token == token {
			if r.cache != nil {
				ttl := time.Until(time.UnixMilli(s.ExpiresAt))
				if err := r.cache.Set(ctx, r.cacheKey(token), s.UserID, ttl).Err(); err != nil {
					slog.Warn("session cache store failed", "error", err)
				}
			}
			session := s
			return &session, nil
		}
	}
	return nil, nil
}

func (r *SessionRepository) Create(ctx context.Context, userID string) (*models.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	session := models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(SessionDuration).UnixMilli(),
	}

	sessions, err := r.active(ctx)
	if err != nil {
		return nil, err
	}
	sessions = append(sessions, session)
	if err := r.store.Write(ctx, sessionsFile, sessions); err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, r.cacheKey(token), userID, SessionDuration).Err(); err != nil {
			slog.Warn("session cache store failed", "error", err)
		}
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	sessions, err := r.active(ctx)
	if err != nil {
		return err
	}
	kept := make([]models.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.Token != token {
			kept = append(kept, s)
		}
	}
	if err := r.store.Write(ctx, sessionsFile, kept); err != nil {
		return err
	}
	if r.cache != nil {
		if err := r.cache.Del(ctx, r.cacheKey(token)).Err(); err != nil {
			slog.Warn("session cache delete failed", "error", err)
		}
	}
	return nil
}
