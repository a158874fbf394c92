// Package cli is an interactive terminal front end for the tracker. It opens
// the durable store directly and drives a local Tracker instance, so two
// CLI sessions against the same database see each other's writes after an
// explicit reload.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/lmarchuk/translix/internal/logging"
	"github.com/lmarchuk/translix/internal/storage/kv"
	"github.com/lmarchuk/translix/internal/tracker"
)

type App struct {
	store   kv.Store
	tracker *tracker.Tracker
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(ctx context.Context, dsn string) (*App, error) {

	store, err := kv.Open(ctx, dsn)
	if err != nil {
		log.Printf("error opening store: %s", err.Error())
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	t, err := tracker.New(ctx, store, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &App{store: store, tracker: t, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.store.Close()

	fmt.Fprintln(a.out, "Welcome to the translix CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.tracker.AuthenticatedUser() != nil
}

func (a *App) getStatus() string {
	u := a.tracker.AuthenticatedUser()
	if u == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", u.Email, u.Role)
}

// currentEmail returns the signed-in user's email or an error suitable for
// command handlers to report directly.
func (a *App) currentEmail() (string, error) {
	u := a.tracker.AuthenticatedUser()
	if u == nil {
		return "", fmt.Errorf("not logged in")
	}
	return u.Email, nil
}
