package services

import (
	"net/url"
	"strings"

	"storefront/entities"
)

const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Decision tells a view whether to render or where to send the user.
type Decision struct {
	Render     bool
	RedirectTo string
	From       string
}

// RouteGuard decides access to protected views from the current identity.
// It never changes the session.
type RouteGuard struct {
	protected map[string]struct{}
}

func NewRouteGuard(protectedPaths []string) RouteGuard {
	g := RouteGuard{protected: make(map[string]struct{}, len(protectedPaths))}
	for _, p := range protectedPaths {
		g.protected[normalizePath(p)] = struct{}{}
	}
	return g
}

func normalizePath(p string) string {
	if p != "/" {
		p = strings.TrimRight(p, "/")
	}
	return strings.ToLower(p)
}

func (g RouteGuard) RequiresAuth(path string) bool {
	_, ok := g.protected[normalizePath(path)]
	return ok
}

// Decide renders unprotected paths, and protected ones when identity is
// non-nil. Otherwise it redirects to the login view remembering requested.
// requested may carry a query string, which is kept in From.
func (g RouteGuard) Decide(requested string, identity *entities.Identity) Decision {
	path := requested
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if !g.RequiresAuth(path) || identity != nil {
		return Decision{Render: true}
	}
	return Decision{
		RedirectTo: LoginPath + "?" + url.Values{"from": {requested}}.Encode(),
		From:       requested,
	}
}

// ReturnPath is where a successful login lands: from when it is a local
// path other than the login view, the home view otherwise.
func (g RouteGuard) ReturnPath(from string) string {
	if !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") || strings.HasPrefix(from, "/\\") {
		return HomePath
	}
	u, err := url.Parse(from)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return HomePath
	}
	if normalizePath(u.Path) == LoginPath {
		return HomePath
	}
	return from
}
