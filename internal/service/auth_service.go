package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/accumanage/portal/internal/auth"
	"github.com/accumanage/portal/internal/config"
	"github.com/accumanage/portal/internal/domain"
	"github.com/accumanage/portal/internal/events"
	"github.com/accumanage/portal/internal/repository"
	apperrors "github.com/accumanage/portal/pkg/util"
)

// LoginResult is returned by flows that establish a session.
type LoginResult struct {
	User    *domain.User
	Cookies []*fiber.Cookie
}

// AuthService coordinates registration, login and logout.
type AuthService struct {
	users       repository.UserRepository
	attempts    repository.LoginAttemptRepository
	sessions    *auth.SessionManager
	decoder     auth.Decoder
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	bcryptCost  int
	maxAttempts int
	window      time.Duration
}

// AuthDependencies encapsulates collaborators of the auth service.
type AuthDependencies struct {
	UserRepo      repository.UserRepository
	LoginAttempts repository.LoginAttemptRepository
	Sessions      *auth.SessionManager
	Decoder       auth.Decoder
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:       deps.UserRepo,
		attempts:    deps.LoginAttempts,
		sessions:    deps.Sessions,
		decoder:     deps.Decoder,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
		bcryptCost:  cfg.BcryptCost,
		maxAttempts: cfg.LoginMaxAttempts,
		window:      cfg.LoginWindow(),
	}
}

// Register creates a user-role account and signs it in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, err
	}
	s.publish(ctx, events.New(events.EventUserRegistered,
		events.Actor{UserID: user.ID, Role: user.Role},
		events.UserPayload{UserID: user.ID, Email: user.Email}))

	return s.establish(ctx, user, domain.SessionScopeGeneral)
}

// Login checks credentials and establishes a session for scope. Administrative
// logins additionally require a privileged role.
func (s *AuthService) Login(ctx context.Context, email, password string, scope domain.SessionScope) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if err := s.checkThrottle(ctx, email); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			auth.BurnPasswordCheck(password)
			return nil, s.rejectLogin(ctx, email, scope, "unknown_email")
		}
		return nil, err
	}
	if !auth.PasswordMatches(user.PasswordHash, password) {
		return nil, s.rejectLogin(ctx, email, scope, "bad_password")
	}

	if scope == domain.SessionScopeAdmin && !auth.HasRole(claimsFor(user), auth.PrivilegedRoles) {
		s.publish(ctx, events.New(events.EventLoginFailed,
			events.Actor{UserID: user.ID, Role: user.Role},
			events.LoginFailedPayload{Email: email, Scope: scope, Reason: "insufficient_role"}))
		return nil, apperrors.NewForbidden("administrator access required")
	}

	s.resetThrottle(ctx, email)
	return s.establish(ctx, user, scope)
}

// Logout clears the session cookies. It succeeds whether or not token is a
// valid session.
func (s *AuthService) Logout(ctx context.Context, scope domain.SessionScope, token string) []*fiber.Cookie {
	actor := events.Actor{}
	if token != "" && s.decoder != nil {
		if claims, err := s.decoder.Decode(token); err == nil {
			actor = events.Actor{UserID: claims.UserID, Role: claims.Role}
		}
	}
	s.publish(ctx, events.New(events.EventSessionTerminated, actor, events.SessionPayload{Scope: scope}))
	return s.sessions.Terminate(scope)
}

func (s *AuthService) establish(ctx context.Context, user *domain.User, scope domain.SessionScope) (*LoginResult, error) {
	cookies, err := s.sessions.Establish(*claimsFor(user), scope)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.publish(ctx, events.New(events.EventSessionEstablished,
		events.Actor{UserID: user.ID, Role: user.Role},
		events.SessionPayload{Scope: scope}))
	return &LoginResult{User: user, Cookies: cookies}, nil
}

func (s *AuthService) checkThrottle(ctx context.Context, email string) error {
	if s.attempts == nil || s.maxAttempts <= 0 {
		return nil
	}
	failures, err := s.attempts.Failures(ctx, email)
	if err != nil {
		s.logger.Warn("login throttle unavailable", zap.Error(err))
		return nil
	}
	if failures >= int64(s.maxAttempts) {
		return apperrors.NewTooManyRequests("too many failed login attempts; try again later")
	}
	return nil
}

func (s *AuthService) rejectLogin(ctx context.Context, email string, scope domain.SessionScope, reason string) error {
	if s.attempts != nil {
		if _, err := s.attempts.RecordFailure(ctx, email, s.window); err != nil {
			s.logger.Warn("record login failure", zap.Error(err))
		}
	}
	s.publish(ctx, events.New(events.EventLoginFailed, events.Actor{},
		events.LoginFailedPayload{Email: email, Scope: scope, Reason: reason}))
	return apperrors.NewUnauthorized("invalid email or password")
}

func (s *AuthService) resetThrottle(ctx context.Context, email string) {
	if s.attempts == nil {
		return
	}
	if err := s.attempts.Reset(ctx, email); err != nil {
		s.logger.Warn("reset login failures", zap.Error(err))
	}
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func claimsFor(user *domain.User) *auth.Claims {
	return &auth.Claims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	}
}
