package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.isLoggedIn() {
		return "(authenticated) "
	}
	return ""
}

// Root runs the interactive command loop until exit or EOF.
func (a *App) Root(ctx context.Context) {

	fmt.Fprintln(a.out, "Welcome to AuthKeeper CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "authkeeper %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		a.Dispatch(ctx, cmd, args)
		if cmd == "exit" || cmd == "quit" {
			return
		}
	}
}

// Dispatch executes one named command. Unknown names print a hint instead
// of failing.
func (a *App) Dispatch(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "help":
		fmt.Fprintln(a.out, "Available commands: signup, login, validate, forgot, reset, exit")

	case "signup":
		a.signUp(ctx)
	case "login":
		a.login(ctx)
	case "validate":
		a.validateToken(ctx, args)
	case "forgot":
		a.forgotPassword(ctx)
	case "reset":
		a.resetPassword(ctx)
	case "exit", "quit":
		fmt.Fprintln(a.out, "Bye!")

	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
	}
}
