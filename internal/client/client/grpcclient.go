package client

import (
	"context"
	"fmt"

	pb "github.com/dmitrijs2005/authkeeper/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// Account is the client-side view of a user returned by the server.
type Account struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
}

// Session is the outcome of a successful login. ExpiresIn is the access
// token lifetime in seconds.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	Account      *Account
}

// TokenStatus is the outcome of a token validation call.
type TokenStatus struct {
	Valid   bool
	Message string
	Account *Account
}

// GRPCClient wraps the generated AuthService client. It remembers the token
// pair from the last successful login so the CLI can validate without
// re-entering the token.
type GRPCClient struct {
	endpointURL  string
	conn         *grpc.ClientConn
	client       pb.AuthServiceClient
	accessToken  string
	refreshToken string
}

// NewAuthKeeperClient connects to the server at endpointURL. The connection
// is plaintext; the service is expected to sit behind TLS termination.
func NewAuthKeeperClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.initGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) initGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewAuthServiceClient(conn)
	return nil
}

func toAccount(u *pb.User) *Account {
	if u == nil {
		return nil
	}
	return &Account{
		ID:        u.Id,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// SignUp registers a new account and returns its summary.
func (s *GRPCClient) SignUp(ctx context.Context, email, password, firstName, lastName string) (*Account, error) {

	req := &pb.SignUpRequest{Email: email, Password: password, FirstName: firstName, LastName: lastName}

	resp, err := s.client.SignUp(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	return toAccount(resp.User), nil
}

// Login exchanges credentials for a token pair. The tokens are kept on the
// client for later AccessToken calls.
func (s *GRPCClient) Login(ctx context.Context, email, password string) (*Session, error) {

	req := &pb.LoginRequest{Email: email, Password: password}

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	s.accessToken = resp.AccessToken
	s.refreshToken = resp.RefreshToken

	return &Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		Account:      toAccount(resp.User),
	}, nil
}

// ValidateToken asks the server whether token is valid and who owns it.
func (s *GRPCClient) ValidateToken(ctx context.Context, token string) (*TokenStatus, error) {

	req := &pb.ValidateTokenRequest{AccessToken: token}

	resp, err := s.client.ValidateToken(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &TokenStatus{
		Valid:   resp.Valid,
		Message: resp.Message,
		Account: toAccount(resp.User),
	}, nil
}

// ForgotPassword starts the reset flow and returns the server's message.
func (s *GRPCClient) ForgotPassword(ctx context.Context, email string) (string, error) {

	req := &pb.ForgotPasswordRequest{Email: email}

	resp, err := s.client.ForgotPassword(ctx, req)
	if err != nil {
		return "", s.mapError(err)
	}

	return resp.Message, nil
}

// ResetPassword redeems a reset token and returns the server's message.
func (s *GRPCClient) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {

	req := &pb.ResetPasswordRequest{Token: token, NewPassword: newPassword}

	resp, err := s.client.ResetPassword(ctx, req)
	if err != nil {
		return "", s.mapError(err)
	}

	return resp.Message, nil
}

// AccessToken returns the access token from the last successful login, or
// an empty string.
func (s *GRPCClient) AccessToken() string {
	return s.accessToken
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrLocked, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", ErrAlreadyExists, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
