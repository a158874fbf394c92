// Package tracker implements the translation-request lifecycle: user
// sessions, the per-user file registry, the append-only artifact ledger and
// reconciliation against the durable store.
//
// The in-memory state is authoritative for one process. Every mutation is
// written through to the store before it becomes visible, and other
// processes' writes are observed only after an explicit Reload. The store is
// last-writer-wins: concurrent cross-session edits to the same user's file
// list can lose updates, so independent sessions should reload right before
// mutating.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lmarchuk/translix/internal/common"
	"github.com/lmarchuk/translix/internal/logging"
	"github.com/lmarchuk/translix/internal/models"
	"github.com/lmarchuk/translix/internal/storage/kv"
)

// Durable store keys. The whole user collection and the signed-in user
// snapshot are the only two top-level records.
const (
	KeyUsers             = "users"
	KeyAuthenticatedUser = "authenticatedUser"
)

// Tracker funnels every mutation of the user collection through its named
// operations. The mutex serializes operations within one process; it does
// nothing for other processes sharing the store.
type Tracker struct {
	mu    sync.Mutex
	store kv.Store
	log   logging.Logger

	users     []models.User
	authEmail string

	now           func() time.Time
	newArtifactID func() string
	lastRequestID int64
}

// New builds a tracker and pulls current state from the store.
func New(ctx context.Context, store kv.Store, log logging.Logger) (*Tracker, error) {
	t := &Tracker{
		store:         store,
		log:           log,
		now:           time.Now,
		newArtifactID: uuid.NewString,
	}
	if err := t.Reload(ctx); err != nil {
		return nil, fmt.Errorf("initial load error: %w", err)
	}
	return t, nil
}

// Users returns a deep copy of the user collection.
func (t *Tracker) Users() []models.User {
	t.mu.Lock()
	defer t.mu.Unlock()

	result := make([]models.User, len(t.users))
	for i, u := range t.users {
		result[i] = u.Clone()
	}
	return result
}

// UserByEmail returns a deep copy of one user.
func (t *Tracker) UserByEmail(email string) (*models.User, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.userIndex(email)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	u := t.users[i].Clone()
	return &u, nil
}

// AuthenticatedUser derives the signed-in snapshot from the user collection,
// so it can never drift from the authoritative state within this process.
// Returns nil when nobody is signed in.
func (t *Tracker) AuthenticatedUser() *models.User {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.authenticatedLocked()
}

func (t *Tracker) authenticatedLocked() *models.User {
	if t.authEmail == "" {
		return nil
	}
	i := t.userIndex(t.authEmail)
	if i < 0 {
		return nil
	}
	u := t.users[i].Clone()
	return &u
}

func (t *Tracker) userIndex(email string) int {
	for i, u := range t.users {
		if u.Email == email {
			return i
		}
	}
	return -1
}

// nextRequestIDLocked derives a request id from the clock, bumping past the
// previous one so ids stay unique even within a millisecond.
func (t *Tracker) nextRequestIDLocked() int64 {
	id := t.now().UnixMilli()
	if id <= t.lastRequestID {
		id = t.lastRequestID + 1
	}
	t.lastRequestID = id
	return id
}

// saveUsersLocked writes the given collection through to the store and,
// only on success, installs it as the in-memory state. It also refreshes the
// durable snapshot record when the mutation touched the signed-in user.
func (t *Tracker) saveUsersLocked(ctx context.Context, next []models.User, touched string) error {
	b, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	if err := t.store.Put(ctx, KeyUsers, b); err != nil {
		return fmt.Errorf("failed to persist users: %w", err)
	}
	t.users = next

	if t.authEmail != "" && t.authEmail == touched {
		if err := t.persistSnapshotLocked(ctx); err != nil {
			return err
		}
	}
	return nil
}

// persistSnapshotLocked writes the full signed-in user record under the
// authenticatedUser key, keeping the durable projection in step with the
// collection.
func (t *Tracker) persistSnapshotLocked(ctx context.Context) error {
	u := t.authenticatedLocked()
	if u == nil {
		return t.store.Delete(ctx, KeyAuthenticatedUser)
	}
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := t.store.Put(ctx, KeyAuthenticatedUser, b); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	return nil
}
