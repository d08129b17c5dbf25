package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/authshell/authshell/internal/core/domain"
	"github.com/authshell/authshell/internal/infrastructure/queue"
)

func newTestStore(kv *stubKV) *sessionStore {
	return NewSessionStore(kv, nil, zerolog.Nop()).(*sessionStore)
}

func TestSessionStore_CurrentUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newStubKV()
	store := newTestStore(kv)

	user, err := store.LoadCurrentUser(ctx)
	if err != nil || user != nil {
		t.Fatalf("expected no session, got %+v %v", user, err)
	}

	jane := &domain.User{ID: "1", Name: "Jane Doe", Email: "jane@example.com"}
	if err := store.SaveCurrentUser(ctx, jane); err != nil {
		t.Fatalf("save: %v", err)
	}
	if raw, _ := kv.raw(CurrentUserKey); raw != `{"id":"1","name":"Jane Doe","email":"jane@example.com"}` {
		t.Fatalf("unexpected stored json: %s", raw)
	}

	loaded, err := store.LoadCurrentUser(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil || *loaded != *jane {
		t.Fatalf("expected %+v, got %+v", jane, loaded)
	}

	if err := store.ClearCurrentUser(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if loaded, _ := store.LoadCurrentUser(ctx); loaded != nil {
		t.Fatalf("expected cleared session, got %+v", loaded)
	}
}

func TestSessionStore_LoadCurrentUser_Errors(t *testing.T) {
	ctx := context.Background()

	kv := newStubKV()
	kv.data[CurrentUserKey] = "{oops"
	if _, err := newTestStore(kv).LoadCurrentUser(ctx); !errors.Is(err, domain.ErrCorruptRecord) {
		t.Fatalf("expected ErrCorruptRecord, got %v", err)
	}

	kv = newStubKV()
	kv.data[CurrentUserKey] = "null"
	if user, err := newTestStore(kv).LoadCurrentUser(ctx); err != nil || user != nil {
		t.Fatalf("expected null to mean no session, got %+v %v", user, err)
	}

	kv = newStubKV()
	kv.getErr[CurrentUserKey] = errors.New("disk gone")
	if _, err := newTestStore(kv).LoadCurrentUser(ctx); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestSessionStore_WriteErrorsArePersistenceErrors(t *testing.T) {
	ctx := context.Background()
	kv := newStubKV()
	kv.setErr[CurrentUserKey] = errors.New("read-only")
	kv.removeErr = errors.New("read-only")
	store := newTestStore(kv)

	if err := store.SaveCurrentUser(ctx, &domain.User{ID: "1"}); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence on save, got %v", err)
	}
	if err := store.ClearCurrentUser(ctx); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence on clear, got %v", err)
	}
}

func TestSessionStore_LoadRegisteredUsers(t *testing.T) {
	ctx := context.Background()

	users, err := newTestStore(newStubKV()).LoadRegisteredUsers(ctx)
	if err != nil || users == nil || len(users) != 0 {
		t.Fatalf("expected empty collection, got %v %v", users, err)
	}

	kv := newStubKV()
	kv.data[RegisteredUsersKey] = "not json"
	users, err = newTestStore(kv).LoadRegisteredUsers(ctx)
	if err != nil || len(users) != 0 {
		t.Fatalf("expected malformed data to read as empty, got %v %v", users, err)
	}

	kv = newStubKV()
	kv.getErr[RegisteredUsersKey] = errors.New("io")
	if _, err := newTestStore(kv).LoadRegisteredUsers(ctx); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestSessionStore_AppendRegisteredUser(t *testing.T) {
	ctx := context.Background()
	kv := newStubKV()
	kv.data[RegisteredUsersKey] = `[{"id":"1","name":"Ann","email":"ann@example.com"},{"id":"2","name":"Bob","email":"bob@example.com"}]`
	store := newTestStore(kv)

	cat := domain.User{ID: "3", Name: "Cat", Email: "cat@example.com"}
	if err := store.AppendRegisteredUser(ctx, cat); err != nil {
		t.Fatalf("append: %v", err)
	}

	users, err := store.LoadRegisteredUsers(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	if users[2] != cat {
		t.Fatalf("expected appended user last, got %+v", users[2])
	}
	count := 0
	for _, u := range users {
		if u == cat {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected user exactly once, got %d", count)
	}
	if users[0].ID != "1" || users[1].ID != "2" {
		t.Fatalf("existing order not preserved: %+v", users)
	}
}

func TestSessionStore_AppendRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	kv := newStubKV()
	store := newTestStore(kv)

	if err := store.AppendRegisteredUser(ctx, domain.User{ID: "1", Email: "jane@example.com"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	before, _ := kv.raw(RegisteredUsersKey)

	err := store.AppendRegisteredUser(ctx, domain.User{ID: "2", Email: "jane@example.com"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if after, _ := kv.raw(RegisteredUsersKey); after != before {
		t.Fatalf("collection changed on duplicate: %s", after)
	}
}

func TestSessionStore_AppendWriteFailure(t *testing.T) {
	kv := newStubKV()
	kv.setErr[RegisteredUsersKey] = errors.New("quota exceeded")

	err := newTestStore(kv).AppendRegisteredUser(context.Background(), domain.User{ID: "1", Email: "a@b.co"})
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestSessionStore_ConcurrentAppendsKeepEveryUser(t *testing.T) {
	w := queue.NewWriter(4, zerolog.Nop())
	w.Start(context.Background())
	defer w.Stop()

	for name, store := range map[string]*sessionStore{
		"mutex":  newTestStore(newStubKV()),
		"writer": NewSessionStore(newStubKV(), w, zerolog.Nop()).(*sessionStore),
	} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			var wg sync.WaitGroup
			for i := 0; i < 25; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					u := domain.User{ID: fmt.Sprint(i), Email: fmt.Sprintf("u%d@example.com", i)}
					if err := store.AppendRegisteredUser(ctx, u); err != nil {
						t.Errorf("append %d: %v", i, err)
					}
				}(i)
			}
			wg.Wait()

			users, err := store.LoadRegisteredUsers(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if len(users) != 25 {
				t.Fatalf("expected 25 users, got %d", len(users))
			}
		})
	}
}
