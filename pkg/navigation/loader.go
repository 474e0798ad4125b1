package navigation

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type routeFile struct {
	Routes []Route `yaml:"routes"`
}

// LoadRoutes reads a route table from YAML:
//
//	routes:
//	  - path: /admin
//	    title: Admin
//	    requires_auth: true
//	    required_role: admin
func LoadRoutes(r io.Reader) ([]Route, error) {
	var f routeFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode routes: %w", err)
	}
	if err := Validate(f.Routes); err != nil {
		return nil, err
	}
	return f.Routes, nil
}

// LoadRoutesFile is LoadRoutes over a file path.
func LoadRoutesFile(path string) ([]Route, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	return LoadRoutes(fh)
}

// Validate rejects tables a Manager cannot evaluate consistently.
func Validate(routes []Route) error {
	if len(routes) == 0 {
		return fmt.Errorf("route table is empty")
	}
	seen := make(map[string]struct{}, len(routes))
	for i, r := range routes {
		if !strings.HasPrefix(r.Path, "/") {
			return fmt.Errorf("route %d: path %q must start with /", i, r.Path)
		}
		if _, dup := seen[r.Path]; dup {
			return fmt.Errorf("route %d: duplicate path %q", i, r.Path)
		}
		seen[r.Path] = struct{}{}
		if r.RequiredRole != "" && !r.RequiredRole.Valid() {
			return fmt.Errorf("route %q: unknown role %q", r.Path, r.RequiredRole)
		}
		if r.Public && (r.RequiresAuth || r.RequiredRole != "") {
			return fmt.Errorf("route %q: public routes cannot require auth", r.Path)
		}
	}
	return nil
}
