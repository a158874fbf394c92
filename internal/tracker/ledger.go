package tracker

import (
	"context"
	"fmt"

	"github.com/lmarchuk/translix/internal/common"
	"github.com/lmarchuk/translix/internal/models"
)

// AttachArtifact appends a translated-file artifact to the named user's
// ledger and returns the generated id. The ledger is append-only: nothing
// ever edits or removes an artifact.
func (t *Tracker) AttachArtifact(ctx context.Context, email string, draft models.Artifact) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.userIndex(email)
	if i < 0 {
		t.log.Warn(ctx, "artifact for unknown user", "email", email)
		return "", common.ErrorNotFound
	}

	draft.ID = t.newArtifactID()
	draft.UploadedAt = t.now()

	next := t.cloneUsersLocked()
	next[i].Artifacts = append(next[i].Artifacts, draft)

	if err := t.saveUsersLocked(ctx, next, email); err != nil {
		return "", err
	}
	return draft.ID, nil
}

// ArtifactForRequest returns the newest artifact attached for the given file
// request id. This is the unambiguous way to resolve a download.
func (t *Tracker) ArtifactForRequest(email string, requestID int64) (*models.Artifact, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.userIndex(email)
	if i < 0 {
		return nil, common.ErrorNotFound
	}

	arts := t.users[i].Artifacts
	for j := len(arts) - 1; j >= 0; j-- {
		if arts[j].RequestID == requestID {
			a := arts[j]
			return &a, nil
		}
	}
	return nil, common.ErrorNotFound
}

// LatestArtifact keeps the old positional convention: the first element of
// the ledger. Prefer ArtifactForRequest.
func (t *Tracker) LatestArtifact(email string) (*models.Artifact, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.userIndex(email)
	if i < 0 || len(t.users[i].Artifacts) == 0 {
		return nil, common.ErrorNotFound
	}
	a := t.users[i].Artifacts[0]
	return &a, nil
}

// Notification carries the fields of the ready-for-delivery mail an
// administrator sends for a completed request. Composing and sending the
// actual message is out of scope here.
type Notification struct {
	To      string
	Subject string
	Body    string
}

// Notification builds the delivery notice for a completed file request.
// Requests that are not Completed yet refuse with ErrorWrongStatus.
func (t *Tracker) Notification(email string, id int64) (*Notification, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.userIndex(email)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	fi := t.users[i].FileByID(id)
	if fi < 0 {
		return nil, common.ErrorNotFound
	}

	f := t.users[i].Files[fi]
	if !f.Status.AllowsDelivery() {
		return nil, common.ErrorWrongStatus
	}

	return &Notification{
		To:      email,
		Subject: "Your Translated File is Ready!",
		Body: fmt.Sprintf("Hello,\n\nYour translated file %q is ready.\n\n"+
			"You can download it here: %s\n\nBest Regards,\nAdmin Team", f.FileName, f.FileURL),
	}, nil
}
