package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmarchuk/translix/internal/common"
	"github.com/lmarchuk/translix/internal/models"
)

func TestRegister_DuplicateEmailLeavesCollectionUnchanged(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	_, err := tr.Register(ctx, "Alice", "a@x.com", "pw1", models.RoleClient)
	require.NoError(t, err)

	before := tr.Users()

	_, err = tr.Register(ctx, "Impostor", "a@x.com", "other", models.RoleAdmin)
	require.ErrorIs(t, err, common.ErrorDuplicateIdentity)

	after := tr.Users()
	require.Len(t, after, 1)
	assert.Equal(t, before, after)
	assert.Equal(t, "Alice", after[0].Name)
}

func TestRegister_NewUserHasEmptyLists(t *testing.T) {
	tr := newTestTracker(t)

	u, err := tr.Register(context.Background(), "Alice", "a@x.com", "pw1", models.RoleClient)
	require.NoError(t, err)
	require.NotNil(t, u.Files)
	require.NotNil(t, u.Artifacts)
	assert.Empty(t, u.Files)
	assert.Empty(t, u.Artifacts)
}

func TestAuthenticate_ExactMatchOnly(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()
	registerClient(t, tr, "a@x.com")

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{name: "exact match", email: "a@x.com", password: "pw1"},
		{name: "wrong password", email: "a@x.com", password: "pw2", wantErr: true},
		{name: "unknown email", email: "b@x.com", password: "pw1", wantErr: true},
		{name: "case-sensitive email", email: "A@x.com", password: "pw1", wantErr: true},
		{name: "empty password", email: "a@x.com", password: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u, err := tr.Authenticate(ctx, tc.email, tc.password)
			if tc.wantErr {
				require.ErrorIs(t, err, common.ErrorInvalidCredentials)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.email, u.Email)
		})
	}
}

func TestAuthenticate_FailureLeavesSnapshotUnchanged(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()
	registerClient(t, tr, "a@x.com")

	_, err := tr.Authenticate(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	_, err = tr.Authenticate(ctx, "a@x.com", "wrong")
	require.ErrorIs(t, err, common.ErrorInvalidCredentials)

	snap := tr.AuthenticatedUser()
	require.NotNil(t, snap)
	assert.Equal(t, "a@x.com", snap.Email)
}

func TestAuthenticate_SnapshotSurvivesReload(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()
	registerClient(t, tr, "a@x.com")

	_, err := tr.Authenticate(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	require.NoError(t, tr.Reload(ctx))

	snap := tr.AuthenticatedUser()
	require.NotNil(t, snap)
	assert.Equal(t, "a@x.com", snap.Email)
}

func TestLogout_IsIdempotent(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()
	registerClient(t, tr, "a@x.com")

	_, err := tr.Authenticate(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	require.NoError(t, tr.Logout(ctx))
	require.Nil(t, tr.AuthenticatedUser())

	// Second logout is a no-op.
	require.NoError(t, tr.Logout(ctx))
	require.Nil(t, tr.AuthenticatedUser())

	// The durable record is gone too.
	require.NoError(t, tr.Reload(ctx))
	require.Nil(t, tr.AuthenticatedUser())
}
