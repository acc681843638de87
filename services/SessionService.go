package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"storefront/entities"
	"storefront/models"
	"storefront/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionService holds the one active identity. Every change is persisted
// before it becomes visible through CurrentIdentity.
type SessionService struct {
	mu       sync.Mutex
	sr       repository.SessionRepository
	verifier repository.CredentialVerifier
	forms    *FormValidator
	log      *zap.Logger
	current  *entities.Identity
	newId    func() string
}

// NewSessionService restores the persisted identity. A corrupt record has
// already been discarded by the repository, leaving the session logged out.
func NewSessionService(ctx context.Context, sRepo repository.SessionRepository, verifier repository.CredentialVerifier, forms *FormValidator, log *zap.Logger) (*SessionService, error) {
	if sRepo == nil || verifier == nil {
		return nil, errors.New("session repository and credential verifier must be non-nil")
	}
	if forms == nil {
		forms = NewFormValidator()
	}
	if log == nil {
		log = zap.NewNop()
	}
	us := &SessionService{
		sr:       sRepo,
		verifier: verifier,
		forms:    forms,
		log:      log,
		newId:    uuid.NewString,
	}
	identity, exists, err := sRepo.GetIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		us.current = &identity
		log.Info("restored session", zap.String("identity", identity.Id))
	}
	return us, nil
}

// Login validates the form before consulting the verifier.
func (us *SessionService) Login(ctx context.Context, email, password string) (identity entities.Identity, err error) {
	creds := models.Credentials{Email: strings.TrimSpace(email), Password: password}
	if err = us.forms.Check(creds); err != nil {
		return
	}
	identity, ok, err := us.verifier.Verify(ctx, creds.Email, creds.Password)
	if err != nil {
		us.log.Error("Login: verify credentials", zap.Error(err))
		return entities.Identity{}, err
	}
	if !ok {
		us.log.Info("Login: invalid credentials")
		return entities.Identity{}, models.ErrInvalidCredentials
	}
	if err = us.activate(ctx, identity); err != nil {
		return entities.Identity{}, err
	}
	us.log.Info("logged in", zap.String("identity", identity.Id))
	return identity, nil
}

// Register mints a new identity for a well-formed profile. There is no
// uniqueness check on the email.
func (us *SessionService) Register(ctx context.Context, profile models.Profile) (identity entities.Identity, err error) {
	profile.Name = strings.TrimSpace(profile.Name)
	profile.Email = strings.TrimSpace(profile.Email)
	if err = us.forms.Check(profile); err != nil {
		return
	}
	identity = entities.Identity{
		Id:    us.newId(),
		Name:  profile.Name,
		Email: profile.Email,
	}
	if err = us.activate(ctx, identity); err != nil {
		return entities.Identity{}, err
	}
	us.log.Info("registered", zap.String("identity", identity.Id))
	return identity, nil
}

func (us *SessionService) activate(ctx context.Context, identity entities.Identity) error {
	us.mu.Lock()
	defer us.mu.Unlock()
	if err := us.sr.SetIdentity(ctx, identity); err != nil {
		return err
	}
	us.current = &identity
	return nil
}

// Logout is safe to call when nobody is logged in.
func (us *SessionService) Logout(ctx context.Context) error {
	us.mu.Lock()
	defer us.mu.Unlock()
	if err := us.sr.DeleteIdentity(ctx); err != nil {
		return err
	}
	if us.current != nil {
		us.log.Info("logged out", zap.String("identity", us.current.Id))
	}
	us.current = nil
	return nil
}

func (us *SessionService) CurrentIdentity() (entities.Identity, bool) {
	us.mu.Lock()
	defer us.mu.Unlock()
	if us.current == nil {
		return entities.Identity{}, false
	}
	return *us.current, true
}

func (us *SessionService) IsAuthenticated() bool {
	_, ok := us.CurrentIdentity()
	return ok
}
