package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// signUp prompts for the new account's details and registers it.
//
// The password byte slice is securely wiped before returning.
func (a *App) signUp(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	firstName, err := getSimpleText(a.reader, "Enter first name", a.out)
	if err != nil {
		return err
	}

	lastName, err := getSimpleText(a.reader, "Enter last name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.requestCtx(ctx)
	defer cancel()

	acc, err := a.client.SignUp(ctx, email, string(password), firstName, lastName)
	if err != nil {
		fmt.Fprintln(a.out, "Sign up failed:", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %s)\n", acc.Email, acc.ID)
	return nil
}

// login prompts for credentials and authenticates. On success the token
// pair stays on the client connection, so a following `validate` can run
// without re-entering the token.
func (a *App) login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.requestCtx(ctx)
	defer cancel()

	sess, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		fmt.Fprintln(a.out, "Login failed:", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s, access token expires in %ds\n", sess.Account.Email, sess.ExpiresIn)
	fmt.Fprintln(a.out, "Access token:", sess.AccessToken)
	fmt.Fprintln(a.out, "Refresh token:", sess.RefreshToken)
	return nil
}

// validateToken checks a token with the server. The token is taken from the
// command argument when present, otherwise from the last login.
func (a *App) validateToken(ctx context.Context, args []string) error {
	var token string
	if len(args) > 0 {
		token = args[0]
	} else {
		token = a.client.AccessToken()
	}
	if token == "" {
		fmt.Fprintln(a.out, "Usage: validate <token> (or login first)")
		return nil
	}

	ctx, cancel := a.requestCtx(ctx)
	defer cancel()

	st, err := a.client.ValidateToken(ctx, token)
	if err != nil {
		fmt.Fprintln(a.out, "Validation failed:", err.Error())
		return err
	}

	if st.Valid {
		fmt.Fprintf(a.out, "Token is valid, belongs to %s\n", st.Account.Email)
	} else {
		fmt.Fprintln(a.out, "Token is invalid:", st.Message)
	}
	return nil
}

// forgotPassword starts the reset flow for an email.
func (a *App) forgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.requestCtx(ctx)
	defer cancel()

	msg, err := a.client.ForgotPassword(ctx, email)
	if err != nil {
		fmt.Fprintln(a.out, "Request failed:", err.Error())
		return err
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

// resetPassword redeems a reset token for a new password.
func (a *App) resetPassword(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter reset token", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.requestCtx(ctx)
	defer cancel()

	msg, err := a.client.ResetPassword(ctx, token, string(password))
	if err != nil {
		fmt.Fprintln(a.out, "Reset failed:", err.Error())
		return err
	}

	fmt.Fprintln(a.out, msg)
	return nil
}
