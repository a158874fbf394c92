package tracker

import (
	"context"
	"crypto/subtle"

	"github.com/lmarchuk/translix/internal/common"
	"github.com/lmarchuk/translix/internal/models"
)

// Register creates a user with empty file and artifact lists. The email is
// the identity key: a second registration with the same email fails with
// ErrorDuplicateIdentity and leaves the collection untouched.
func (t *Tracker) Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.userIndex(email) >= 0 {
		return nil, common.ErrorDuplicateIdentity
	}

	u := models.NewUser(name, email, password, role)

	next := make([]models.User, len(t.users), len(t.users)+1)
	copy(next, t.users)
	next = append(next, u)

	if err := t.saveUsersLocked(ctx, next, email); err != nil {
		return nil, err
	}

	c := u.Clone()
	return &c, nil
}

// Authenticate scans for an exact (email, password) match. On success the
// matched user becomes the signed-in identity and its snapshot is persisted;
// on failure nothing changes and ErrorInvalidCredentials is returned.
//
// The password is an opaque comparable secret; the comparison is constant
// time but no hashing happens here.
func (t *Tracker) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.userIndex(email)
	if i < 0 || !secretsEqual(t.users[i].Password, password) {
		return nil, common.ErrorInvalidCredentials
	}

	prev := t.authEmail
	t.authEmail = email
	if err := t.persistSnapshotLocked(ctx); err != nil {
		t.authEmail = prev
		return nil, err
	}

	u := t.users[i].Clone()
	return &u, nil
}

// Logout clears the signed-in identity and removes its durable record.
// Calling it when nobody is signed in is a no-op.
func (t *Tracker) Logout(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.authEmail == "" {
		return nil
	}

	if err := t.store.Delete(ctx, KeyAuthenticatedUser); err != nil {
		return err
	}
	t.authEmail = ""
	return nil
}

func secretsEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
