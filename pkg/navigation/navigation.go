// Package navigation resolves dashboard paths against the static route
// registry: reachability for a user, redirect targets, visible menu entries
// and breadcrumb trails.
package navigation

import (
	"strings"
	"sync"
)

// UserContext is what the caller knows about the current user.
type UserContext struct {
	Authenticated bool `json:"authenticated"`
	Role          Role `json:"role,omitempty"`
}

// Decision is the outcome of a permission check.
type Decision struct {
	Path     string `json:"path"`
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Route    *Route `json:"route,omitempty"`
}

type Breadcrumb struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

const (
	ReasonUnknownRoute  = "unknown_route"
	ReasonPublic        = "public"
	ReasonUnauthorized  = "unauthenticated"
	ReasonForbiddenRole = "role_mismatch"
	ReasonGranted       = "granted"
)

// Manager evaluates paths against a fixed route table. It is safe for
// concurrent use since the table is never mutated after construction.
type Manager struct {
	routes []Route
}

var (
	defaultOnce    sync.Once
	defaultManager *Manager
)

// Default returns the process-wide manager over DefaultRoutes.
func Default() *Manager {
	defaultOnce.Do(func() {
		defaultManager = NewManager(DefaultRoutes())
	})
	return defaultManager
}

func NewManager(routes []Route) *Manager {
	cp := make([]Route, len(routes))
	copy(cp, routes)
	return &Manager{routes: cp}
}

// Routes returns a copy of the registry.
func (m *Manager) Routes() []Route {
	out := make([]Route, len(m.routes))
	copy(out, m.routes)
	return out
}

// LandingFor is where uc starts: the public home page when signed out,
// the role's home otherwise.
func LandingFor(uc UserContext) string {
	if !uc.Authenticated {
		return "/"
	}
	return HomeFor(effectiveRole(uc))
}

// HomeFor is the landing page of a role.
func HomeFor(role Role) string {
	switch role {
	case RoleSuperAdmin:
		return "/superadmin"
	case RoleAdmin:
		return "/admin"
	default:
		return "/dashboard"
	}
}

// Lookup finds the registry entry for path. Literal entries win over
// parameterised ones so "/bookings/new" is not captured by a ":id" pattern.
func (m *Manager) Lookup(path string) (Route, bool) {
	p := normalize(path)
	for _, r := range m.routes {
		if r.Path == p {
			return r, true
		}
	}
	segs := split(p)
	for _, r := range m.routes {
		if !strings.Contains(r.Path, ":") {
			continue
		}
		if matchSegments(split(r.Path), segs) {
			return r, true
		}
	}
	return Route{}, false
}

// CheckRoutePermission decides whether uc may open path.
func (m *Manager) CheckRoutePermission(path string, uc UserContext) Decision {
	p := normalize(path)
	route, ok := m.Lookup(p)
	if !ok {
		return Decision{Path: p, Allowed: false, Redirect: "/", Reason: ReasonUnknownRoute}
	}
	d := Decision{Path: p, Route: &route}
	if route.Public {
		d.Allowed = true
		d.Reason = ReasonPublic
		return d
	}
	if (route.RequiresAuth || route.RequiredRole != "") && !uc.Authenticated {
		d.Redirect = "/login"
		d.Reason = ReasonUnauthorized
		return d
	}
	role := effectiveRole(uc)
	if !role.Satisfies(route.RequiredRole) {
		d.Redirect = HomeFor(role)
		d.Reason = ReasonForbiddenRole
		return d
	}
	d.Allowed = true
	d.Reason = ReasonGranted
	return d
}

// NavigationRoutes returns the menu entries visible to uc, in registry order.
// Hidden and parameterised entries never appear in menus.
func (m *Manager) NavigationRoutes(uc UserContext) []Route {
	role := effectiveRole(uc)
	out := make([]Route, 0, len(m.routes))
	for _, r := range m.routes {
		if r.Hidden || strings.Contains(r.Path, ":") {
			continue
		}
		if r.Public {
			out = append(out, r)
			continue
		}
		if !uc.Authenticated {
			continue
		}
		if role.Satisfies(r.RequiredRole) {
			out = append(out, r)
		}
	}
	return out
}

// Breadcrumbs resolves every prefix of path against the registry. Prefixes
// without a registry entry are skipped.
func (m *Manager) Breadcrumbs(path string) []Breadcrumb {
	p := normalize(path)
	if p == "/" {
		if r, ok := m.Lookup("/"); ok {
			return []Breadcrumb{{Path: "/", Title: r.Title}}
		}
		return []Breadcrumb{}
	}
	segs := split(p)
	out := make([]Breadcrumb, 0, len(segs))
	for i := range segs {
		prefix := "/" + strings.Join(segs[:i+1], "/")
		if r, ok := m.Lookup(prefix); ok {
			out = append(out, Breadcrumb{Path: prefix, Title: r.Title})
		}
	}
	return out
}

func effectiveRole(uc UserContext) Role {
	if !uc.Authenticated {
		return ""
	}
	if uc.Role.Valid() {
		return uc.Role
	}
	return RoleUser
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

func split(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchSegments(pattern, segs []string) bool {
	if len(pattern) != len(segs) {
		return false
	}
	for i, ps := range pattern {
		if strings.HasPrefix(ps, ":") {
			if segs[i] == "" {
				return false
			}
			continue
		}
		if ps != segs[i] {
			return false
		}
	}
	return true
}
