package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/studenthub/internal/client/services"
	"github.com/dmitrijs2005/studenthub/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username and password and creates the account on
// the server. Registration needs connectivity.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, userName, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Success! You can log in now.")
	return nil
}

// Login authenticates against the server and falls back to the locally
// cached credentials when the server is unreachable. A successful online
// login starts a sync cycle in the background.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	online, err := a.authService.Login(ctx, userName, password)
	if err != nil {
		if errors.Is(err, services.ErrNoOfflineData) {
			return fmt.Errorf("server unavailable and no offline login data for %q", userName)
		}
		return err
	}

	if online {
		fmt.Fprintln(a.out, "Logged in.")
		a.syncInBackground(ctx)
	} else {
		fmt.Fprintln(a.out, "Logged in offline. Changes will sync once the server is reachable.")
	}
	return nil
}

// Logout waits for in-flight pushes and forgets the session. Local records
// stay on disk and are pushed after the next login.
func (a *App) Logout(ctx context.Context) error {
	if err := a.engine.Flush(ctx); err != nil {
		return err
	}
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
