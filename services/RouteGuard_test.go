package services

import (
	"context"
	"testing"

	"storefront/entities"
	"storefront/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteGuard_Decide(t *testing.T) {
	g := NewRouteGuard([]string{"/checkout", "/profile"})
	someone := &entities.Identity{Id: "1"}

	tests := []struct {
		name     string
		path     string
		identity *entities.Identity
		want     Decision
	}{
		{"public view, anonymous", "/", nil, Decision{Render: true}},
		{"public cart, anonymous", "/cart", nil, Decision{Render: true}},
		{"protected, signed in", "/checkout", someone, Decision{Render: true}},
		{"protected, anonymous", "/checkout", nil, Decision{RedirectTo: "/login?from=%2Fcheckout", From: "/checkout"}},
		{"trailing slash and case", "/Profile/", nil, Decision{RedirectTo: "/login?from=%2FProfile%2F", From: "/Profile/"}},
		{"query is remembered", "/checkout?step=2", nil, Decision{RedirectTo: "/login?from=%2Fcheckout%3Fstep%3D2", From: "/checkout?step=2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Decide(tt.path, tt.identity))
		})
	}
}

func TestRouteGuard_ReturnPath(t *testing.T) {
	g := NewRouteGuard(nil)

	assert.Equal(t, "/checkout", g.ReturnPath("/checkout"))
	assert.Equal(t, "/checkout?step=2", g.ReturnPath("/checkout?step=2"))
	assert.Equal(t, "/", g.ReturnPath(""))
	assert.Equal(t, "/", g.ReturnPath("https://evil.example/"))
	assert.Equal(t, "/", g.ReturnPath("//evil.example/"))
	assert.Equal(t, "/", g.ReturnPath("/login"))
}

func TestRouteGuard_ReadsButNeverChangesSession(t *testing.T) {
	ctx := context.Background()
	us := newSession(t, repository.NewMemoryPersistence())
	g := NewRouteGuard([]string{"/profile"})

	d := g.Decide("/profile", nil)
	require.False(t, d.Render)
	assert.False(t, us.IsAuthenticated())

	identity, err := us.Login(ctx, "test@example.com", "123456")
	require.NoError(t, err)

	assert.True(t, g.Decide("/profile", &identity).Render)
	assert.Equal(t, "/profile", g.ReturnPath(d.From))
	assert.True(t, us.IsAuthenticated())
}
