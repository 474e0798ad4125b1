package navigation

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genUserContext() gopter.Gen {
	return gopter.CombineGens(
		gen.Bool(),
		gen.OneConstOf(RoleUser, RoleAdmin, RoleSuperAdmin, Role(""), Role("guest")),
	).Map(func(v []interface{}) UserContext {
		return UserContext{Authenticated: v[0].(bool), Role: v[1].(Role)}
	})
}

func TestRoutingProperties(t *testing.T) {
	m := Default()
	routes := m.Routes()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("public routes are always reachable", prop.ForAll(
		func(i int, uc UserContext) bool {
			r := routes[i]
			if !r.Public {
				return true
			}
			return m.CheckRoutePermission(r.Path, uc).Allowed
		},
		gen.IntRange(0, len(routes)-1),
		genUserContext(),
	))

	properties.Property("denials always carry a redirect", prop.ForAll(
		func(i int, uc UserContext) bool {
			d := m.CheckRoutePermission(routes[i].Path, uc)
			return d.Allowed || d.Redirect != ""
		},
		gen.IntRange(0, len(routes)-1),
		genUserContext(),
	))

	properties.Property("anonymous users are sent to login for protected routes", prop.ForAll(
		func(i int) bool {
			r := routes[i]
			d := m.CheckRoutePermission(r.Path, UserContext{})
			if r.Public {
				return d.Allowed
			}
			return !d.Allowed && d.Redirect == "/login"
		},
		gen.IntRange(0, len(routes)-1),
	))

	properties.Property("menu entries are reachable by the same user", prop.ForAll(
		func(uc UserContext) bool {
			for _, r := range m.NavigationRoutes(uc) {
				if !m.CheckRoutePermission(r.Path, uc).Allowed {
					return false
				}
			}
			return true
		},
		genUserContext(),
	))

	properties.Property("unknown paths redirect home", prop.ForAll(
		func(seg string) bool {
			d := m.CheckRoutePermission("/zz-"+strings.ToLower(seg)+"/nowhere/deeper", UserContext{Authenticated: true, Role: RoleSuperAdmin})
			return !d.Allowed && d.Redirect == "/" && d.Reason == ReasonUnknownRoute
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
