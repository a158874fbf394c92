package tracker

import (
	"context"

	"github.com/lmarchuk/translix/internal/common"
	"github.com/lmarchuk/translix/internal/models"
)

// Submit appends a file request with a freshly generated id and status
// Uploaded to the named user's list and returns the new id. Any id or status
// carried by the draft is overwritten.
func (t *Tracker) Submit(ctx context.Context, email string, draft models.FileRequest) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.userIndex(email)
	if i < 0 {
		t.log.Warn(ctx, "submit for unknown user", "email", email)
		return 0, common.ErrorNotFound
	}

	draft.ID = t.nextRequestIDLocked()
	draft.Status = models.StatusUploaded

	next := t.cloneUsersLocked()
	next[i].Files = append(next[i].Files, draft)

	if err := t.saveUsersLocked(ctx, next, email); err != nil {
		return 0, err
	}
	return draft.ID, nil
}

// Upsert replaces the file request with the same id, or appends when the id
// is new. Used both for client edits and admin pushes that carry a full
// record. Unknown users are a logged no-op.
func (t *Tracker) Upsert(ctx context.Context, email string, req models.FileRequest) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.userIndex(email)
	if i < 0 {
		t.log.Warn(ctx, "upsert for unknown user", "email", email)
		return nil
	}

	next := t.cloneUsersLocked()
	if fi := next[i].FileByID(req.ID); fi >= 0 {
		next[i].Files[fi] = req
	} else {
		next[i].Files = append(next[i].Files, req)
	}

	return t.saveUsersLocked(ctx, next, email)
}

// Remove deletes the file request with the given id. Absent users or ids are
// a logged no-op. The Uploaded-only eligibility rule is enforced by callers,
// not here.
func (t *Tracker) Remove(ctx context.Context, email string, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.userIndex(email)
	if i < 0 {
		t.log.Warn(ctx, "remove for unknown user", "email", email)
		return nil
	}

	next := t.cloneUsersLocked()
	files := next[i].Files[:0:0]
	for _, f := range next[i].Files {
		if f.ID != id {
			files = append(files, f)
		}
	}
	if len(files) == len(next[i].Files) {
		t.log.Warn(ctx, "remove for unknown request", "email", email, "id", id)
	}
	next[i].Files = files

	return t.saveUsersLocked(ctx, next, email)
}

// RemoveByName deletes every file request with the given file name, matching
// the way clients delete their own uploads.
func (t *Tracker) RemoveByName(ctx context.Context, email, fileName string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.userIndex(email)
	if i < 0 {
		t.log.Warn(ctx, "remove for unknown user", "email", email)
		return nil
	}

	next := t.cloneUsersLocked()
	files := next[i].Files[:0:0]
	for _, f := range next[i].Files {
		if f.FileName != fileName {
			files = append(files, f)
		}
	}
	next[i].Files = files

	return t.saveUsersLocked(ctx, next, email)
}

// SetStatus overwrites the status of one file request in place. It is an
// unconstrained setter: any of the three statuses may be assigned, which
// also lets an administrator revert a mis-marked request. Absent users or
// ids are a logged no-op, to be prevented by callers.
func (t *Tracker) SetStatus(ctx context.Context, email string, id int64, status models.Status) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.userIndex(email)
	if i < 0 {
		t.log.Warn(ctx, "status update for unknown user", "email", email)
		return nil
	}
	fi := t.users[i].FileByID(id)
	if fi < 0 {
		t.log.Warn(ctx, "status update for unknown request", "email", email, "id", id)
		return nil
	}

	next := t.cloneUsersLocked()
	next[i].Files[fi].Status = status

	return t.saveUsersLocked(ctx, next, email)
}

// AdvanceStatus is the guarded variant of SetStatus: the new status must
// follow the forward order Uploaded → InProgress → Completed (setting the
// current status again is allowed). Unlike SetStatus it reports absence.
func (t *Tracker) AdvanceStatus(ctx context.Context, email string, id int64, status models.Status) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.userIndex(email)
	if i < 0 {
		return common.ErrorNotFound
	}
	fi := t.users[i].FileByID(id)
	if fi < 0 {
		return common.ErrorNotFound
	}

	if !t.users[i].Files[fi].Status.CanAdvance(status) {
		return common.ErrorInvalidTransition
	}

	next := t.cloneUsersLocked()
	next[i].Files[fi].Status = status

	return t.saveUsersLocked(ctx, next, email)
}

// StatusCounts tallies the named user's file requests by status, including
// zero entries for statuses with no requests.
func (t *Tracker) StatusCounts(email string) (map[models.Status]int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.userIndex(email)
	if i < 0 {
		return nil, common.ErrorNotFound
	}

	counts := map[models.Status]int{
		models.StatusUploaded:   0,
		models.StatusInProgress: 0,
		models.StatusCompleted:  0,
	}
	for _, f := range t.users[i].Files {
		counts[f.Status]++
	}
	return counts, nil
}

func (t *Tracker) cloneUsersLocked() []models.User {
	next := make([]models.User, len(t.users))
	for i, u := range t.users {
		next[i] = u.Clone()
	}
	return next
}
