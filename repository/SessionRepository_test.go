package repository

import (
	"context"
	"testing"

	"storefront/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPersistence()
	repo, err := NewSessionRepository(p, nil)
	require.NoError(t, err)

	_, exists, err := repo.GetIdentity(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	avatar := "me.png"
	want := entities.Identity{Id: "42", Name: "Ann", Email: "ann@example.com", Avatar: &avatar}
	require.NoError(t, repo.SetIdentity(ctx, want))

	reloaded, err := NewSessionRepository(p, nil)
	require.NoError(t, err)
	got, exists, err := reloaded.GetIdentity(ctx)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, want, got)

	require.NoError(t, repo.DeleteIdentity(ctx))
	_, exists, err = repo.GetIdentity(ctx)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSessionRepo_CorruptRecord(t *testing.T) {
	ctx := context.Background()

	for name, payload := range map[string]string{
		"not json":     `{"id":`,
		"wrong shape":  `["a","b"]`,
		"missing id":   `{"name":"x"}`,
		"empty string": ``,
	} {
		t.Run(name, func(t *testing.T) {
			p := NewMemoryPersistence()
			require.NoError(t, p.Set(ctx, IdentityKey, []byte(payload)))
			repo, err := NewSessionRepository(p, nil)
			require.NoError(t, err)

			_, exists, err := repo.GetIdentity(ctx)
			require.NoError(t, err)
			assert.False(t, exists)

			_, stored, _ := p.Get(ctx, IdentityKey)
			assert.False(t, stored, "corrupt record should be discarded")
		})
	}
}

func TestNewSessionRepository_NilPersistence(t *testing.T) {
	_, err := NewSessionRepository(nil, nil)
	assert.Error(t, err)
}
