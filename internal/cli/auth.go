package cli

import (
	"context"
	"log"

	"github.com/lmarchuk/translix/internal/models"
)

func (a *App) Register(ctx context.Context) error {

	name, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	roleText, err := GetSimpleText(a.reader, "Enter role (client/admin)", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	role, err := models.ParseRole(roleText)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if _, err := a.tracker.Register(ctx, name, email, password, role); err != nil {
		log.Printf("Registration unsuccessfull: %s", err.Error())
		return err
	}

	log.Printf("Registration successfull")
	return nil
}

func (a *App) Login(ctx context.Context) error {

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if _, err := a.tracker.Authenticate(ctx, email, password); err != nil {
		log.Printf("Login unsuccessfull: %s", err.Error())
		return err
	}

	log.Printf("Login successfull")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.tracker.Logout(ctx); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	log.Printf("Logged out")
	return nil
}
