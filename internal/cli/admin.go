package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/lmarchuk/translix/internal/models"
)

// requireAdmin guards the commands that mutate other users' registries.
func (a *App) requireAdmin() error {
	u := a.tracker.AuthenticatedUser()
	if u == nil {
		return fmt.Errorf("not logged in")
	}
	if u.Role != models.RoleAdmin {
		return fmt.Errorf("admin role required")
	}
	return nil
}

func (a *App) SetStatus(ctx context.Context) error {

	if err := a.requireAdmin(); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	email, err := GetSimpleText(a.reader, "Enter client email", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	id, err := a.promptRequestID()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	statusText, err := GetSimpleText(a.reader, "Enter status (Uploaded/In Progress/Completed)", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	status, err := models.ParseStatus(statusText)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.tracker.SetStatus(ctx, email, id, status); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	return nil
}

func (a *App) Attach(ctx context.Context) error {

	if err := a.requireAdmin(); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	email, err := GetSimpleText(a.reader, "Enter client email", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	id, err := a.promptRequestID()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	// Delivery is only available once the request is Completed.
	u, err := a.tracker.UserByEmail(email)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	if fi := u.FileByID(id); fi < 0 || !u.Files[fi].Status.AllowsDelivery() {
		err := fmt.Errorf("request %d is not completed", id)
		log.Printf("Error: %s", err.Error())
		return err
	}

	name, err := GetSimpleText(a.reader, "Translated file name", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	content, err := GetSimpleText(a.reader, "Content (inline payload or storage key)", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	artifactID, err := a.tracker.AttachArtifact(ctx, email, models.Artifact{
		RequestID: id,
		Name:      name,
		Content:   content,
	})
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Attached artifact %s\n", artifactID)
	return nil
}
