// Package services contains server-side business logic. This file implements
// AuthService, which composes password hashing, token issuance, the token
// store, and login-attempt throttling into the account flows.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/jwt"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/resettokens"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/authkeeper/internal/server/validation"
)

// resetTokenBytes is the entropy of a password reset token. The token string
// is twice as long in hex.
const resetTokenBytes = 32

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

// TokenIssuer mints and validates signed bearer tokens.
type TokenIssuer interface {
	CreateAccessToken(userID, email string) (string, error)
	CreateRefreshToken(userID string) (string, error)
	ValidateToken(tokenString string) (*jwt.Claims, error)
	TokenID(tokenString string) (string, error)
}

// AttemptTracker counts failed login attempts per identity.
type AttemptTracker interface {
	Track(ctx context.Context, identity string) (int64, error)
	Count(ctx context.Context, identity string) (int64, error)
	Clear(ctx context.Context, identity string) error
}

// ResetNotifier delivers a password reset token to the account owner.
type ResetNotifier interface {
	SendPasswordReset(ctx context.Context, email, token string, validity time.Duration) error
}

// LoginResult bundles the tokens and account summary returned by a
// successful Login. ExpiresIn is the access token lifetime in seconds.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	User         *models.Summary
}

// TokenCheck is the outcome of a ValidateToken call. Token and account
// problems make Valid false with a short reason; they are not errors.
type TokenCheck struct {
	Valid   bool
	User    *models.Summary
	Message string
}

// AuthService provides the account flows:
// - SignUp: create accounts
// - Login: verify credentials and mint tokens
// - ValidateToken: check an access token and the account behind it
// - ForgotPassword / ResetPassword: the password reset round trip
type AuthService struct {
	users         users.Repository
	refreshTokens refreshtokens.Repository
	resetTokens   resettokens.Repository
	hasher        PasswordHasher
	tokens        TokenIssuer
	attempts      AttemptTracker
	notifier      ResetNotifier
	logger        logging.Logger

	maxLoginAttempts int
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
	resetTokenTTL    time.Duration
}

// NewAuthService constructs an AuthService from its collaborators and the
// limits in cfg.
func NewAuthService(
	cfg *config.Config,
	logger logging.Logger,
	usersRepo users.Repository,
	refreshRepo refreshtokens.Repository,
	resetRepo resettokens.Repository,
	hasher PasswordHasher,
	issuer TokenIssuer,
	tracker AttemptTracker,
	notifier ResetNotifier,
) *AuthService {
	return &AuthService{
		users:            usersRepo,
		refreshTokens:    refreshRepo,
		resetTokens:      resetRepo,
		hasher:           hasher,
		tokens:           issuer,
		attempts:         tracker,
		notifier:         notifier,
		logger:           logger,
		maxLoginAttempts: cfg.MaxLoginAttempts,
		accessTokenTTL:   cfg.AccessTokenValidityDuration,
		refreshTokenTTL:  cfg.RefreshTokenValidityDuration,
		resetTokenTTL:    cfg.ResetTokenValidityDuration,
	}
}

// SignUp registers a new account. The email must not be registered yet.
func (s *AuthService) SignUp(ctx context.Context, email, password, firstName, lastName string) (*models.Summary, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(firstName, "first_name"); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(lastName, "last_name"); err != nil {
		return nil, err
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "failed to check email existence", err)
	}
	if exists {
		return nil, common.E(common.KindAlreadyExists, "email already registered")
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "failed to hash password", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		IsActive:     true,
		IsVerified:   false,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		// a concurrent signup can slip past EmailExists
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.E(common.KindAlreadyExists, "email already registered")
		}
		return nil, common.Wrap(common.KindInternal, "failed to create user", err)
	}

	return created.Summary(), nil
}

// Login authenticates credentials and mints a token pair. Lockout applies
// per email: once maxLoginAttempts failed verifications accumulate inside
// the window, further attempts are refused until the counter expires.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, common.E(common.KindInvalidArgument, "password is required")
	}

	count, err := s.attempts.Count(ctx, email)
	if err != nil {
		s.logger.Warn(ctx, "failed to read login attempt counter", "error", err)
	}
	if count >= int64(s.maxLoginAttempts) {
		return nil, common.E(common.KindPermissionDenied, "too many failed login attempts, please try again later")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.E(common.KindUnauthenticated, "invalid email or password")
		}
		return nil, common.Wrap(common.KindInternal, "failed to fetch user", err)
	}

	if !user.IsActive {
		return nil, common.E(common.KindPermissionDenied, "account is disabled")
	}

	valid, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "failed to verify password", err)
	}
	if !valid {
		if _, err := s.attempts.Track(ctx, email); err != nil {
			s.logger.Warn(ctx, "failed to record login attempt", "error", err)
		}
		return nil, common.E(common.KindUnauthenticated, "invalid email or password")
	}

	if err := s.attempts.Clear(ctx, email); err != nil {
		s.logger.Warn(ctx, "failed to clear login attempt counter", "error", err)
	}
	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn(ctx, "failed to update last login", "error", err)
	}

	accessToken, err := s.tokens.CreateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "failed to create access token", err)
	}

	refreshToken, err := s.tokens.CreateRefreshToken(user.ID)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "failed to create refresh token", err)
	}

	tokenID, err := s.tokens.TokenID(refreshToken)
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "failed to get token id", err)
	}

	if err := s.refreshTokens.Create(ctx, tokenID, user.ID, s.refreshTokenTTL); err != nil {
		return nil, common.Wrap(common.KindInternal, "failed to store refresh token", err)
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTokenTTL.Seconds()),
		User:         user.Summary(),
	}, nil
}

// ValidateToken checks an access token and the account behind it.
func (s *AuthService) ValidateToken(ctx context.Context, accessToken string) (*TokenCheck, error) {
	if err := validation.ValidateToken(accessToken); err != nil {
		return nil, err
	}

	claims, err := s.tokens.ValidateToken(accessToken)
	if err != nil {
		return &TokenCheck{Valid: false, Message: "invalid or expired token"}, nil
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &TokenCheck{Valid: false, Message: "user not found"}, nil
		}
		return nil, common.Wrap(common.KindInternal, "failed to fetch user", err)
	}

	if !user.IsActive {
		return &TokenCheck{Valid: false, Message: "user account is disabled"}, nil
	}

	return &TokenCheck{
		Valid:   true,
		User:    user.Summary(),
		Message: "token is valid",
	}, nil
}

// ForgotPassword issues a reset token for a registered email and hands it to
// the notifier. An unregistered email returns nil without creating anything,
// so the two outcomes are indistinguishable to the caller.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return common.Wrap(common.KindInternal, "failed to fetch user", err)
	}

	resetToken, err := common.MakeRandHexString(resetTokenBytes)
	if err != nil {
		return common.Wrap(common.KindInternal, "failed to generate reset token", err)
	}

	if err := s.resetTokens.Create(ctx, resetToken, user.ID, s.resetTokenTTL); err != nil {
		return common.Wrap(common.KindInternal, "failed to create reset token", err)
	}

	if err := s.notifier.SendPasswordReset(ctx, user.Email, resetToken, s.resetTokenTTL); err != nil {
		return common.Wrap(common.KindInternal, "failed to send reset notification", err)
	}

	return nil
}

// ResetPassword redeems a reset token and replaces the account password.
// Each token works at most once.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := validation.ValidateToken(token); err != nil {
		return err
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	userID, err := s.resetTokens.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.E(common.KindInvalidArgument, "invalid or expired reset token")
		}
		return common.Wrap(common.KindInternal, "failed to consume reset token", err)
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return common.Wrap(common.KindInternal, "failed to hash password", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return common.Wrap(common.KindInternal, "failed to update password", err)
	}

	return nil
}
