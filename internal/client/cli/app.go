package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/config"
)

// AuthClient is the backend surface the CLI uses. *client.GRPCClient
// implements it; tests substitute a fake.
type AuthClient interface {
	SignUp(ctx context.Context, email, password, firstName, lastName string) (*client.Account, error)
	Login(ctx context.Context, email, password string) (*client.Session, error)
	ValidateToken(ctx context.Context, token string) (*client.TokenStatus, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
	AccessToken() string
	Close() error
}

// App is the interactive AuthKeeper CLI.
type App struct {
	config *config.Config
	client AuthClient
	reader *bufio.Reader
	out    io.Writer
}

// NewApp connects to the server from c and builds the CLI around the
// connection.
func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewAuthKeeperClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		client: apiClient,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run starts the command loop and closes the connection when it ends.
func (a *App) Run(ctx context.Context) {
	defer a.client.Close()
	a.Root(ctx)
}

// requestCtx derives a per-RPC context with the configured timeout.
func (a *App) requestCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) isLoggedIn() bool {
	return a.client.AccessToken() != ""
}
