// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"simple-notes-be/internal/entity"
	"simple-notes-be/internal/pkg/apperror"
	"simple-notes-be/internal/pkg/identity"
	"simple-notes-be/internal/pkg/logger"
	"simple-notes-be/internal/repository/contract"
	"simple-notes-be/pkg/events"

	"github.com/google/uuid"
)

// AuthResult is the outcome of a successful sign-in: the account and the
// session opened for it.
type AuthResult struct {
	User    *entity.User
	Session *entity.Session
}

type IAuthService interface {
	// RegisterAnonymousUser returns the existing record unchanged when the
	// user is already known, so repeated calls keep a single record.
	RegisterAnonymousUser(ctx context.Context, userId string) (*entity.User, error)
	AuthenticateAnonymous(ctx context.Context, idToken string) (*AuthResult, error)
	Login(ctx context.Context, idToken string) (*AuthResult, error)
	Signup(ctx context.Context, idToken string, displayName *string) (*AuthResult, error)
	Promote(ctx context.Context, current *identity.Identity, sessionId, idToken string, displayName *string) (*AuthResult, error)
	Logout(ctx context.Context, sessionId string) error
	// ResolveRequest checks the session first and the bearer token second.
	ResolveRequest(ctx context.Context, sessionId, bearer string) (*identity.Identity, error)
	EnsureUser(ctx context.Context, id *identity.Identity) (*entity.User, error)
	Session(ctx context.Context, sessionId string) (*entity.Session, error)
}

type authService struct {
	userRepo         contract.UserRepository
	sessionRepo      contract.SessionRepository
	verifier         identity.TokenVerifier
	publisherService IPublisherService
	sessionTTL       time.Duration
	logger           logger.ILogger
	now              func() time.Time
}

func NewAuthService(
	userRepo contract.UserRepository,
	sessionRepo contract.SessionRepository,
	verifier identity.TokenVerifier,
	publisherService IPublisherService,
	sessionTTL time.Duration,
	log logger.ILogger,
) IAuthService {
	return &authService{
		userRepo:         userRepo,
		sessionRepo:      sessionRepo,
		verifier:         verifier,
		publisherService: publisherService,
		sessionTTL:       sessionTTL,
		logger:           log,
		now:              time.Now,
	}
}

func (s *authService) RegisterAnonymousUser(ctx context.Context, userId string) (*entity.User, error) {
	existing, err := s.userRepo.FindByID(ctx, userId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	user := entity.NewAnonymousUser(userId, s.now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.publishUser(ctx, events.UserRegistered, user)
	return user, nil
}

func (s *authService) AuthenticateAnonymous(ctx context.Context, idToken string) (*AuthResult, error) {
	id, err := s.verify(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if !id.IsAnonymous {
		return nil, apperror.Validation("token does not belong to an anonymous account")
	}

	user, err := s.RegisterAnonymousUser(ctx, id.UserId)
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, user, id.Email)
}

func (s *authService) Login(ctx context.Context, idToken string) (*AuthResult, error) {
	id, err := s.verify(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if id.IsAnonymous {
		return nil, apperror.Validation("anonymous accounts sign in through /auth/anonymous")
	}

	user, err := s.userRepo.FindByID(ctx, id.UserId)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsAnonymous {
		return nil, apperror.Authentication("account not registered")
	}
	return s.openSession(ctx, user, id.Email)
}

func (s *authService) Signup(ctx context.Context, idToken string, displayName *string) (*AuthResult, error) {
	id, err := s.verify(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if id.IsAnonymous {
		return nil, apperror.Validation("anonymous accounts cannot sign up")
	}

	existing, err := s.userRepo.FindByID(ctx, id.UserId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("account already registered")
	}

	user := entity.NewRegisteredUser(id.UserId, optional(id.Email), trimmed(displayName), s.now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.publishUser(ctx, events.UserRegistered, user)
	return s.openSession(ctx, user, id.Email)
}

func (s *authService) Promote(ctx context.Context, current *identity.Identity, sessionId, idToken string, displayName *string) (*AuthResult, error) {
	if current == nil || !current.IsAnonymous {
		return nil, apperror.Validation("only anonymous accounts can be promoted")
	}

	id, err := s.verify(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if id.IsAnonymous {
		return nil, apperror.Validation("token does not belong to a registered account")
	}
	if id.UserId != current.UserId {
		return nil, apperror.Validation("token belongs to a different account")
	}

	user, err := s.userRepo.FindByID(ctx, current.UserId)
	if err != nil {
		return nil, err
	}
	if user != nil && !user.IsAnonymous {
		return nil, apperror.Conflict("account already registered")
	}
	if user == nil {
		user = entity.NewAnonymousUser(current.UserId, s.now())
	}

	user.Promote(optional(id.Email), trimmed(displayName), s.now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	if sessionId != "" {
		if err := s.sessionRepo.Delete(ctx, sessionId); err != nil {
			return nil, err
		}
	}

	s.publishUser(ctx, events.UserPromoted, user)
	return s.openSession(ctx, user, id.Email)
}

func (s *authService) Logout(ctx context.Context, sessionId string) error {
	if sessionId == "" {
		return nil
	}
	return s.sessionRepo.Delete(ctx, sessionId)
}

func (s *authService) ResolveRequest(ctx context.Context, sessionId, bearer string) (*identity.Identity, error) {
	if sessionId != "" {
		session, err := s.sessionRepo.Get(ctx, sessionId)
		if err != nil {
			return nil, err
		}
		if session != nil {
			return s.sessionIdentity(ctx, session)
		}
	}

	if bearer != "" {
		return s.verify(ctx, bearer)
	}
	if sessionId != "" {
		return nil, apperror.Authentication("session expired or invalid")
	}
	return nil, apperror.Authentication("missing credentials")
}

// sessionIdentity trusts registered sessions as stored. An anonymous session
// may have been promoted from another device, so the user record decides.
func (s *authService) sessionIdentity(ctx context.Context, session *entity.Session) (*identity.Identity, error) {
	id := &identity.Identity{
		UserId:      session.UserId,
		IsAnonymous: session.IsAnonymous,
		Email:       session.Email,
	}
	if !session.IsAnonymous {
		return id, nil
	}

	user, err := s.userRepo.FindByID(ctx, session.UserId)
	if err != nil {
		return nil, err
	}
	if user != nil && !user.IsAnonymous {
		id.IsAnonymous = false
		if user.Email != nil {
			id.Email = *user.Email
		}
	}
	return id, nil
}

func (s *authService) EnsureUser(ctx context.Context, id *identity.Identity) (*entity.User, error) {
	if id.IsAnonymous {
		return s.RegisterAnonymousUser(ctx, id.UserId)
	}

	existing, err := s.userRepo.FindByID(ctx, id.UserId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	user := entity.NewRegisteredUser(id.UserId, optional(id.Email), nil, s.now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.publishUser(ctx, events.UserRegistered, user)
	return user, nil
}

func (s *authService) Session(ctx context.Context, sessionId string) (*entity.Session, error) {
	if sessionId == "" {
		return nil, nil
	}
	return s.sessionRepo.Get(ctx, sessionId)
}

func (s *authService) verify(ctx context.Context, token string) (*identity.Identity, error) {
	id, err := s.verifier.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, identity.ErrMissingToken) {
			return nil, apperror.Authentication("missing identity token")
		}
		s.logger.Debug("AuthService", "Token rejected", map[string]interface{}{"error": err.Error()})
		return nil, apperror.Authentication("invalid identity token")
	}
	return id, nil
}

func (s *authService) openSession(ctx context.Context, user *entity.User, email string) (*AuthResult, error) {
	now := s.now().UTC()
	session := &entity.Session{
		Id:          uuid.NewString(),
		UserId:      user.UserId,
		IsAnonymous: user.IsAnonymous,
		Email:       email,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Session: session}, nil
}

func (s *authService) publishUser(ctx context.Context, eventType string, user *entity.User) {
	s.publisherService.Publish(ctx, events.UserEvent(eventType, user.UserId, user.IsAnonymous, s.now()))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
