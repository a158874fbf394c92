package cli

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/lmarchuk/translix/internal/models"
)

func (a *App) List(ctx context.Context) error {

	email, err := a.currentEmail()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	u, err := a.tracker.UserByEmail(email)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	for _, f := range u.Files {
		fmt.Fprintf(a.out, "%d\t%s -> %s\t%dh\t%s\t%s\n",
			f.ID, f.SourceLanguage, f.TargetLanguage, f.TurnaroundHours, f.Status, f.FileName)
	}
	return nil
}

func (a *App) Counts(ctx context.Context) error {

	email, err := a.currentEmail()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	counts, err := a.tracker.StatusCounts(email)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	for _, s := range []models.Status{models.StatusUploaded, models.StatusInProgress, models.StatusCompleted} {
		fmt.Fprintf(a.out, "%s\t%d\n", s, counts[s])
	}
	return nil
}

func (a *App) Submit(ctx context.Context) error {

	email, err := a.currentEmail()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	src, err := GetSimpleText(a.reader, "Source language", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	dst, err := GetSimpleText(a.reader, "Target language", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	turnaroundText, err := GetSimpleText(a.reader, "Turnaround time (hours)", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	turnaround, err := strconv.Atoi(turnaroundText)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fileName, err := GetSimpleText(a.reader, "File name", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	id, err := a.tracker.Submit(ctx, email, models.FileRequest{
		SourceLanguage:  src,
		TargetLanguage:  dst,
		TurnaroundHours: turnaround,
		FileName:        fileName,
	})
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Submitted request %d\n", id)
	return nil
}

func (a *App) Remove(ctx context.Context) error {

	email, err := a.currentEmail()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	id, err := a.promptRequestID()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	// The same rule the dashboards apply: only fresh uploads may be removed.
	u, err := a.tracker.UserByEmail(email)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	if fi := u.FileByID(id); fi >= 0 && !u.Files[fi].Status.AllowsDelete() {
		err := fmt.Errorf("request %d is %s, only uploaded requests may be removed", id, u.Files[fi].Status)
		log.Printf("Error: %s", err.Error())
		return err
	}

	if err := a.tracker.Remove(ctx, email, id); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	return nil
}

func (a *App) Reload(ctx context.Context) error {
	if err := a.tracker.Reload(ctx); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	log.Printf("Reloaded")
	return nil
}

func (a *App) promptRequestID() (int64, error) {
	text, err := GetSimpleText(a.reader, "Enter request id", a.out)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(text, 10, 64)
}
