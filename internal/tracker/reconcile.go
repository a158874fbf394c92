package tracker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/lmarchuk/translix/internal/common"
	"github.com/lmarchuk/translix/internal/models"
)

// Reload discards the in-memory state and re-reads both durable records.
// This is the only mechanism that makes another session's writes visible:
// views that need cross-session state (an admin dashboard opened after a
// client uploaded elsewhere) call it explicitly.
//
// Malformed store content is recovered by substituting the empty default for
// that key; only hard store failures propagate.
func (t *Tracker) Reload(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	users, err := t.loadUsers(ctx)
	if err != nil {
		return err
	}

	snapshot, err := t.loadSnapshot(ctx)
	if err != nil {
		return err
	}

	t.users = users
	t.authEmail = ""
	if snapshot != nil {
		t.authEmail = snapshot.Email
	}

	// Keep generated ids ahead of everything already persisted.
	for _, u := range t.users {
		for _, f := range u.Files {
			if f.ID > t.lastRequestID {
				t.lastRequestID = f.ID
			}
		}
	}
	return nil
}

func (t *Tracker) loadUsers(ctx context.Context) ([]models.User, error) {
	b, err := t.store.Get(ctx, KeyUsers)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return []models.User{}, nil
		}
		return nil, err
	}

	var users []models.User
	if err := json.Unmarshal(b, &users); err != nil {
		t.log.Warn(ctx, "malformed users record, falling back to empty collection", "error", err)
		return []models.User{}, nil
	}
	return users, nil
}

func (t *Tracker) loadSnapshot(ctx context.Context) (*models.User, error) {
	b, err := t.store.Get(ctx, KeyAuthenticatedUser)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var u models.User
	if err := json.Unmarshal(b, &u); err != nil {
		t.log.Warn(ctx, "malformed snapshot record, falling back to signed-out state", "error", err)
		return nil, nil
	}
	return &u, nil
}
