package repository

import (
	"context"
	"errors"

	"storefront/entities"
	"storefront/models"

	"go.uber.org/zap"
)

// SessionRepository persists the one active identity under IdentityKey.
type SessionRepository interface {
	GetIdentity(ctx context.Context) (identity entities.Identity, exists bool, err error)
	SetIdentity(ctx context.Context, identity entities.Identity) error
	DeleteIdentity(ctx context.Context) error
}

type SessionRepo struct {
	p   Persistence
	log *zap.Logger
}

func NewSessionRepository(p Persistence, log *zap.Logger) (*SessionRepo, error) {
	if p == nil {
		return nil, errors.New("persistence must be non-nil")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionRepo{p: p, log: log}, nil
}

func checkIdentity(rec models.IdentityRecord) error {
	if rec.Id == "" {
		return errors.New("identity without id")
	}
	return nil
}

func (s *SessionRepo) GetIdentity(ctx context.Context) (identity entities.Identity, exists bool, err error) {
	rec, exists, err := loadRecord(ctx, s.p, s.log, IdentityKey, checkIdentity)
	if err != nil || !exists {
		return
	}
	identity = entities.Identity{
		Id:     rec.Id,
		Name:   rec.Name,
		Email:  rec.Email,
		Avatar: rec.Avatar,
	}
	return
}

func (s *SessionRepo) SetIdentity(ctx context.Context, identity entities.Identity) error {
	rec := models.IdentityRecord{
		Id:     identity.Id,
		Name:   identity.Name,
		Email:  identity.Email,
		Avatar: identity.Avatar,
	}
	return saveRecord(ctx, s.p, s.log, IdentityKey, rec)
}

func (s *SessionRepo) DeleteIdentity(ctx context.Context) error {
	return removeRecord(ctx, s.p, s.log, IdentityKey)
}
