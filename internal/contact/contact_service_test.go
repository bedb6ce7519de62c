package contact

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"mindlyst/internal/models"
	"mindlyst/internal/store"
	"mindlyst/internal/user"
)

func newTestService(t *testing.T) (*Service, *user.Repository) {
	t.Helper()
	docs := store.NewFileStore(t.TempDir())
	users := user.NewRepository(docs)
	svc := NewService(NewContactRepository(docs), NewRequestRepository(docs), users, nil, nil)
	return svc, users
}

func seedUser(t *testing.T, users *user.Repository, id, username string) {
	t.Helper()
	err := users.Create(context.Background(), models.User{
		ID:        id,
		Email:     username + "@example.com",
		Username:  username,
		CreatedAt: time.Now().UnixMilli(),
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
}

func TestCreateRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("SelfRequestFails", func(t *testing.T) {
		svc, users := newTestService(t)
		seedUser(t, users, "1", "alice")

		if _, err := svc.CreateRequest(ctx, "1", "1"); !errors.Is(err, ErrSelfContact) {
			t.Errorf("expected ErrSelfContact, got %v", err)
		}
	})

	t.Run("CreatesPendingRecord", func(t *testing.T) {
		svc, users := newTestService(t)
		seedUser(t, users, "1", "alice")
		seedUser(t, users, "2", "bob")

		req, err := svc.CreateRequest(ctx, "1", "2")
		if err != nil {
			t.Fatalf("CreateRequest: %v", err)
		}
		if req.ID == "" {
			t.Error("expected a generated id")
		}
		if req.Status != models.RequestPending {
			t.Errorf("expected pending status, got %q", req.Status)
		}
		if req.RequesterUsername != "alice" || req.RequesterEmail != "alice@example.com" {
			t.Errorf("requester snapshot not taken: %+v", req)
		}

		pending, err := svc.PendingRequests(ctx, "2")
		if err != nil {
			t.Fatalf("PendingRequests: %v", err)
		}
		if len(pending) != 1 || pending[0].ID != req.ID {
			t.Errorf("expected the new request in bob's pending list, got %+v", pending)
		}
	})

	t.Run("DuplicateSameDirectionFails", func(t *testing.T) {
		svc, users := newTestService(t)
		seedUser(t, users, "1", "alice")
		seedUser(t, users, "2", "bob")

		if _, err := svc.CreateRequest(ctx, "1", "2"); err != nil {
			t.Fatalf("first CreateRequest: %v", err)
		}
		if _, err := svc.CreateRequest(ctx, "1", "2"); !errors.Is(err, ErrRequestPending) {
			t.Errorf("expected ErrRequestPending, got %v", err)
		}
	})

	// The duplicate check covers only the exact requester->recipient
	// direction. Two users asking each other yields two independent pending
	// requests. Known anomaly, kept for compatibility with existing data.
	t.Run("ReverseDirectionStillAllowed", func(t *testing.T) {
		svc, users := newTestService(t)
		seedUser(t, users, "1", "alice")
		seedUser(t, users, "2", "bob")

		if _, err := svc.CreateRequest(ctx, "1", "2"); err != nil {
			t.Fatalf("CreateRequest 1->2: %v", err)
		}
		if _, err := svc.CreateRequest(ctx, "2", "1"); err != nil {
			t.Fatalf("CreateRequest 2->1 should succeed, got %v", err)
		}

		alicePending, _ := svc.PendingRequests(ctx, "1")
		bobPending, _ := svc.PendingRequests(ctx, "2")
		if len(alicePending) != 1 || len(bobPending) != 1 {
			t.Errorf("expected one pending request on each side, got %d and %d",
				len(alicePending), len(bobPending))
		}
	})

	t.Run("UnknownRequesterFails", func(t *testing.T) {
		svc, users := newTestService(t)
		seedUser(t, users, "2", "bob")

		if _, err := svc.CreateRequest(ctx, "ghost", "2"); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("ExistingContactBlocksEitherDirection", func(t *testing.T) {
		svc, users := newTestService(t)
		seedUser(t, users, "1", "alice")
		seedUser(t, users, "2", "bob")

		req, err := svc.CreateRequest(ctx, "1", "2")
		if err != nil {
			t.Fatalf("CreateRequest: %v", err)
		}
		if _, err := svc.Accept(ctx, req.ID, "2"); err != nil {
			t.Fatalf("Accept: %v", err)
		}

		if _, err := svc.CreateRequest(ctx, "1", "2"); !errors.Is(err, ErrContactExists) {
			t.Errorf("expected ErrContactExists, got %v", err)
		}
		if _, err := svc.CreateRequest(ctx, "2", "1"); !errors.Is(err, ErrContactExists) {
			t.Errorf("expected ErrContactExists for reverse direction, got %v", err)
		}
	})
}

func TestAcceptRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("MaterializesBothEdges", func(t *testing.T) {
		svc, users := newTestService(t)
		seedUser(t, users, "1", "alice")
		seedUser(t, users, "2", "bob")

		req, err := svc.CreateRequest(ctx, "1", "2")
		if err != nil {
			t.Fatalf("CreateRequest: %v", err)
		}

		edge, err := svc.Accept(ctx, req.ID, "2")
		if err != nil {
			t.Fatalf("Accept: %v", err)
		}
		if edge.UserID != "2" || edge.ContactUserID != "1" {
			t.Errorf("expected the accepting user's edge, got %+v", edge)
		}
		if edge.ContactUsername != "alice" || edge.ContactEmail != "alice@example.com" {
			t.Errorf("snapshot of the other party missing: %+v", edge)
		}

		aliceContacts, _ := svc.Contacts(ctx, "1")
		bobContacts, _ := svc.Contacts(ctx, "2")
		if len(aliceContacts) != 1 || aliceContacts[0].ContactUserID != "2" {
			t.Errorf("alice should have exactly one edge to bob, got %+v", aliceContacts)
		}
		if len(bobContacts) != 1 || bobContacts[0].ContactUserID != "1" {
			t.Errorf("bob should have exactly one edge to alice, got %+v", bobContacts)
		}

		pending, _ := svc.PendingRequests(ctx, "2")
		if len(pending) != 0 {
			t.Errorf("accepted request still pending: %+v", pending)
		}
	})

	t.Run("TerminalAfterAccept", func(t *testing.T) {
		svc, users := newTestService(t)
		seedUser(t, users, "1", "alice")
		seedUser(t, users, "2", "bob")

		req, _ := svc.CreateRequest(ctx, "1", "2")
		if _, err := svc.Accept(ctx, req.ID, "2"); err != nil {
			t.Fatalf("Accept: %v", err)
		}

		if _, err := svc.Accept(ctx, req.ID, "2"); !errors.Is(err, ErrRequestNotFound) {
			t.Errorf("second accept: expected ErrRequestNotFound, got %v", err)
		}
		if err := svc.Reject(ctx, req.ID, "2"); !errors.Is(err, ErrRequestNotFound) {
			t.Errorf("reject after accept: expected ErrRequestNotFound, got %v", err)
		}
	})

	t.Run("OnlyRecipientCanAccept", func(t *testing.T) {
		svc, users := newTestService(t)
		seedUser(t, users, "1", "alice")
		seedUser(t, users, "2", "bob")
		seedUser(t, users, "3", "carol")

		req, _ := svc.CreateRequest(ctx, "1", "2")

		if _, err := svc.Accept(ctx, req.ID, "1"); !errors.Is(err, ErrRequestNotFound) {
			t.Errorf("requester accepting own request: expected ErrRequestNotFound, got %v", err)
		}
		if _, err := svc.Accept(ctx, req.ID, "3"); !errors.Is(err, ErrRequestNotFound) {
			t.Errorf("third party accepting: expected ErrRequestNotFound, got %v", err)
		}

		// Still pending for the real recipient.
		if _, err := svc.Accept(ctx, req.ID, "2"); err != nil {
			t.Errorf("recipient accept after failed attempts: %v", err)
		}
	})

	t.Run("UnknownIDFails", func(t *testing.T) {
		svc, users := newTestService(t)
		seedUser(t, users, "2", "bob")

		if _, err := svc.Accept(ctx, "missing", "2"); !errors.Is(err, ErrRequestNotFound) {
			t.Errorf("expected ErrRequestNotFound, got %v", err)
		}
	})
}

func TestRejectRequest(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestService(t)
	seedUser(t, users, "1", "alice")
	seedUser(t, users, "2", "bob")

	req, err := svc.CreateRequest(ctx, "1", "2")
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if err := svc.Reject(ctx, req.ID, "2"); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	// No edges on either side.
	aliceContacts, _ := svc.Contacts(ctx, "1")
	bobContacts, _ := svc.Contacts(ctx, "2")
	if len(aliceContacts) != 0 || len(bobContacts) != 0 {
		t.Errorf("reject must not create edges, got %d and %d", len(aliceContacts), len(bobContacts))
	}

	// Terminal: cannot be resolved again.
	if err := svc.Reject(ctx, req.ID, "2"); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("second reject: expected ErrRequestNotFound, got %v", err)
	}
	if _, err := svc.Accept(ctx, req.ID, "2"); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("accept after reject: expected ErrRequestNotFound, got %v", err)
	}
}

func TestAddContactLegacy(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesSingleDirectionalEdge", func(t *testing.T) {
		svc, users := newTestService(t)
		seedUser(t, users, "1", "alice")
		seedUser(t, users, "2", "bob")

		edge, err := svc.AddContact(ctx, "1", "2")
		if err != nil {
			t.Fatalf("AddContact: %v", err)
		}
		if edge.UserID != "1" || edge.ContactUserID != "2" {
			t.Errorf("unexpected edge: %+v", edge)
		}

		// One-directional: bob gets nothing.
		bobContacts, _ := svc.Contacts(ctx, "2")
		if len(bobContacts) != 0 {
			t.Errorf("legacy add must not create the reverse edge, got %+v", bobContacts)
		}
	})

	t.Run("IdempotentOnExistingEdge", func(t *testing.T) {
		svc, users := newTestService(t)
		seedUser(t, users, "1", "alice")
		seedUser(t, users, "2", "bob")

		first, err := svc.AddContact(ctx, "1", "2")
		if err != nil {
			t.Fatalf("AddContact: %v", err)
		}
		second, err := svc.AddContact(ctx, "1", "2")
		if err != nil {
			t.Fatalf("repeat AddContact: %v", err)
		}
		if second.ID != first.ID {
			t.Errorf("expected the existing edge back, got %q and %q", first.ID, second.ID)
		}

		contacts, _ := svc.Contacts(ctx, "1")
		if len(contacts) != 1 {
			t.Errorf("expected one edge after repeat add, got %d", len(contacts))
		}
	})

	t.Run("SelfAddFails", func(t *testing.T) {
		svc, users := newTestService(t)
		seedUser(t, users, "1", "alice")

		if _, err := svc.AddContact(ctx, "1", "1"); !errors.Is(err, ErrSelfContact) {
			t.Errorf("expected ErrSelfContact, got %v", err)
		}
	})

	t.Run("UnknownTargetFails", func(t *testing.T) {
		svc, users := newTestService(t)
		seedUser(t, users, "1", "alice")

		if _, err := svc.AddContact(ctx, "1", "ghost"); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestRemoveContact(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestService(t)
	seedUser(t, users, "1", "alice")
	seedUser(t, users, "2", "bob")

	req, _ := svc.CreateRequest(ctx, "1", "2")
	bobEdge, err := svc.Accept(ctx, req.ID, "2")
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}

	t.Run("NotOwnedReturnsFalse", func(t *testing.T) {
		// bobEdge belongs to bob; alice cannot remove it.
		removed, err := svc.RemoveContact(ctx, "1", bobEdge.ID)
		if err != nil {
			t.Fatalf("RemoveContact: %v", err)
		}
		if removed {
			t.Error("removing someone else's edge must report false")
		}
		bobContacts, _ := svc.Contacts(ctx, "2")
		if len(bobContacts) != 1 {
			t.Errorf("ledger changed on a miss: %+v", bobContacts)
		}
	})

	t.Run("UnknownIDReturnsFalse", func(t *testing.T) {
		removed, err := svc.RemoveContact(ctx, "2", "missing")
		if err != nil {
			t.Fatalf("RemoveContact: %v", err)
		}
		if removed {
			t.Error("unknown id must report false")
		}
	})

	t.Run("OwnedEdgeIsRemoved", func(t *testing.T) {
		removed, err := svc.RemoveContact(ctx, "2", bobEdge.ID)
		if err != nil {
			t.Fatalf("RemoveContact: %v", err)
		}
		if !removed {
			t.Fatal("expected removal of owned edge")
		}

		bobContacts, _ := svc.Contacts(ctx, "2")
		if len(bobContacts) != 0 {
			t.Errorf("edge still present: %+v", bobContacts)
		}
		// Removal is one-sided: alice keeps her edge.
		aliceContacts, _ := svc.Contacts(ctx, "1")
		if len(aliceContacts) != 1 {
			t.Errorf("alice's edge should survive, got %+v", aliceContacts)
		}
	})
}

func TestSearchUsers(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestService(t)
	seedUser(t, users, "me", "searcher")
	for i := 0; i < 12; i++ {
		seedUser(t, users, fmt.Sprintf("u%d", i), fmt.Sprintf("Player_%02d", i))
	}

	t.Run("CapsAtTenResults", func(t *testing.T) {
		results, err := svc.SearchUsers(ctx, "player", "me")
		if err != nil {
			t.Fatalf("SearchUsers: %v", err)
		}
		if len(results) != 10 {
			t.Errorf("expected 10 results, got %d", len(results))
		}
	})

	t.Run("ExcludesCaller", func(t *testing.T) {
		results, err := svc.SearchUsers(ctx, "search", "me")
		if err != nil {
			t.Fatalf("SearchUsers: %v", err)
		}
		for _, r := range results {
			if r.ID == "me" {
				t.Error("search must not return the caller")
			}
		}
	})

	t.Run("CaseInsensitiveSubstring", func(t *testing.T) {
		results, err := svc.SearchUsers(ctx, "PLAYER_03", "me")
		if err != nil {
			t.Fatalf("SearchUsers: %v", err)
		}
		if len(results) != 1 || results[0].Username != "Player_03" {
			t.Errorf("unexpected results: %+v", results)
		}
	})
}

func TestFindUserByUsername(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestService(t)
	seedUser(t, users, "1", "Alice")

	u, err := svc.FindUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("FindUserByUsername: %v", err)
	}
	if u == nil || u.ID != "1" {
		t.Errorf("expected alice, got %+v", u)
	}

	// Exact match only: a substring is not enough.
	u, err = svc.FindUserByUsername(ctx, "alic")
	if err != nil {
		t.Fatalf("FindUserByUsername: %v", err)
	}
	if u != nil {
		t.Errorf("expected no match for partial username, got %+v", u)
	}
}

// The full lifecycle as the frontend drives it.
func TestRequestLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestService(t)
	seedUser(t, users, "1", "alice")
	seedUser(t, users, "2", "bob")

	r1, err := svc.CreateRequest(ctx, "1", "2")
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	edge, err := svc.Accept(ctx, r1.ID, "2")
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if edge.UserID != "2" || edge.ContactUserID != "1" {
		t.Fatalf("accept must return the recipient's edge, got %+v", edge)
	}

	aliceContacts, _ := svc.Contacts(ctx, "1")
	if len(aliceContacts) != 1 || aliceContacts[0].ContactUserID != "2" {
		t.Errorf("alice's list: %+v", aliceContacts)
	}
	bobContacts, _ := svc.Contacts(ctx, "2")
	if len(bobContacts) != 1 || bobContacts[0].ContactUserID != "1" {
		t.Errorf("bob's list: %+v", bobContacts)
	}
}
