package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cityreport/internal/client/models"
	"github.com/dmitrijs2005/cityreport/internal/common"
)

// Register prompts for email, password and confirmation, validates the
// form locally and creates the account. A successful registration also logs
// the user in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	return a.register(ctx, models.Registration{Email: email, Password: string(password), ConfirmPassword: string(confirm)})
}

// RegisterWith creates an account from credentials given on the command
// line. There is nothing to confirm, so only the email and password rules
// apply.
func (a *App) RegisterWith(ctx context.Context, email, password string) error {
	return a.register(ctx, models.Registration{Email: email, Password: password, ConfirmPassword: password})
}

func (a *App) register(ctx context.Context, form models.Registration) error {
	if err := form.Validate(); err != nil {
		return err
	}

	id, err := a.session.Register(ctx, form.Email, form.Password)
	if err != nil {
		return err
	}

	a.printf("Welcome, %s!\n", id)
	return nil
}

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.LoginWith(ctx, email, string(password))
}

// LoginWith logs in with credentials given on the command line.
func (a *App) LoginWith(ctx context.Context, email, password string) error {
	id, err := a.session.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.printf("Logged in as %s\n", id)
	return nil
}

// Logout always succeeds.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.println("Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	id, err := a.requireLogin()
	if err != nil {
		return err
	}
	a.printf("%s\n", id)
	return nil
}

// Ping checks that the server is reachable.
func (a *App) Ping(ctx context.Context) error {
	if err := a.api.Ping(ctx); err != nil {
		return err
	}
	a.println(fmt.Sprintf("Server %s is up.", a.config.ServerURL))
	return nil
}
