package repository

import (
	"context"
	"errors"
	"sync"

	"storefront/entities"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier checks an email/password pair and returns the identity
// it belongs to. A real backend can replace CredentialRepo behind it.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (identity entities.Identity, ok bool, err error)
}

const (
	MockEmail    = "test@example.com"
	MockPassword = "123456"
	mockName     = "Test User"
	mockId       = "1"
)

type account struct {
	identity entities.Identity
	hash     []byte
}

// CredentialRepo is an in-process account list with bcrypt hashed passwords.
type CredentialRepo struct {
	mu       sync.RWMutex
	accounts map[string]account
	log      *zap.Logger
}

// NewCredentialRepository returns a verifier that knows the mock account.
func NewCredentialRepository(log *zap.Logger) (*CredentialRepo, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c := &CredentialRepo{accounts: make(map[string]account), log: log}
	err := c.AddAccount(entities.Identity{Id: mockId, Name: mockName, Email: MockEmail}, MockPassword)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CredentialRepo) AddAccount(identity entities.Identity, password string) error {
	if identity.Email == "" {
		return errors.New("account email must be non-empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 8)
	if err != nil {
		c.log.Error("AddAccount: hash password", zap.Error(err))
		return err
	}
	c.mu.Lock()
	c.accounts[identity.Email] = account{identity: identity, hash: hash}
	c.mu.Unlock()
	return nil
}

func (c *CredentialRepo) Verify(ctx context.Context, email, password string) (identity entities.Identity, ok bool, err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	c.mu.RLock()
	acc, exists := c.accounts[email]
	c.mu.RUnlock()
	if !exists {
		c.log.Debug("Verify: unknown account")
		return
	}
	if e := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); e != nil {
		c.log.Debug("Verify: wrong password", zap.String("identity", acc.identity.Id))
		return
	}
	return acc.identity, true, nil
}
