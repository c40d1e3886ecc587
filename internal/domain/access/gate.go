// Package access decides whether a page request may reach its handler.
package access

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/sannyeinphyo/internlink-sub001/internal/domain/entities"
)

// Identity is the decoded session. A nil *Identity means no valid session.
type Identity struct {
	AccountID uuid.UUID
	Role      entities.Role
}

// Decision is the outcome for one request. Location is empty when the
// request is forwarded.
type Decision struct {
	Location string
}

// Forward reports whether the request continues to its handler
func (d Decision) Forward() bool {
	return d.Location == ""
}

var forward = Decision{}

func redirect(location string) Decision {
	return Decision{Location: location}
}

// Policy is the route table the gate evaluates. Paths are locale-relative
// and start with "/".
type Policy struct {
	Locales       []string
	DefaultLocale string
	PublicPaths   []string
	RolePrefixes  []entities.Role
	JobsPath      string
	JobsRoles     []entities.Role
	DashboardPath string
	DashboardRole entities.Role
	LoginPath     string
	Unauthorized  string
	SkipPrefixes  []string
}

// DefaultPolicy returns the route table used by the web app
func DefaultPolicy(locales []string, defaultLocale string) Policy {
	if len(locales) == 0 {
		locales = []string{"en", "my"}
	}
	if defaultLocale == "" {
		defaultLocale = locales[0]
	}
	return Policy{
		Locales:       locales,
		DefaultLocale: defaultLocale,
		PublicPaths: []string{
			"/",
			"/login",
			"/register",
			"/about",
			"/contact",
			"/forgot-password",
			"/reset-password",
			"/verify-email",
			"/verify-otp",
			"/unauthorized",
			"/dashboard",
		},
		RolePrefixes:  []entities.Role{entities.RoleAdmin, entities.RoleCompany, entities.RoleTeacher, entities.RoleUniversity},
		JobsPath:      "/jobs",
		JobsRoles:     []entities.Role{entities.RoleStudent, entities.RoleCompany, entities.RoleAdmin},
		DashboardPath: "/dashboard",
		DashboardRole: entities.RoleStudent,
		LoginPath:     "/login",
		Unauthorized:  "/unauthorized",
		SkipPrefixes:  []string{"/api", "/internal", "/static", "/health", "/metrics", "/favicon.ico"},
	}
}

// Skip reports whether path is outside the gated page namespace
func (p Policy) Skip(path string) bool {
	for _, prefix := range p.SkipPrefixes {
		if underPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// SplitLocale returns the locale and the locale-relative rest of path.
// A first segment shaped like a locale tag ("fr", "pt-BR") is taken as the
// locale even when it is not configured, so role prefixes behind it are
// still matched. Any other first segment falls back to DefaultLocale and
// the whole path is treated as locale-relative.
func (p Policy) SplitLocale(path string) (string, string) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	trimmed := strings.TrimPrefix(path, "/")
	first, rest, _ := strings.Cut(trimmed, "/")
	for _, l := range p.Locales {
		if first == l {
			return l, "/" + rest
		}
	}
	if localeTag.MatchString(first) {
		return first, "/" + rest
	}
	return p.DefaultLocale, path
}

var localeTag = regexp.MustCompile(`^[a-z]{2}(-[A-Za-z]{2})?$`)

// Decide evaluates the gate for path. It never fails: a missing or invalid
// session is passed as nil and only changes where the request is redirected.
func Decide(path string, id *Identity, p Policy) Decision {
	if p.Skip(path) {
		return forward
	}

	locale, rel := p.SplitLocale(path)
	to := func(suffix string) Decision {
		return redirect("/" + locale + suffix)
	}

	if id != nil {
		if underPrefix(rel, p.JobsPath) {
			if containsRole(p.JobsRoles, id.Role) {
				return forward
			}
			return to(p.Unauthorized)
		}
		if underPrefix(rel, p.DashboardPath) {
			if id.Role != p.DashboardRole {
				return to("/" + string(id.Role) + p.DashboardPath)
			}
			return forward
		}
		if r, ok := p.rolePrefix(rel); ok && r != id.Role {
			return to(p.Unauthorized)
		}
	}

	if id == nil && !p.isPublic(rel) {
		return to(p.LoginPath)
	}

	if r, ok := p.rolePrefix(rel); ok && (id == nil || id.Role != r) {
		return to(p.Unauthorized)
	}

	return forward
}

func (p Policy) rolePrefix(rel string) (entities.Role, bool) {
	for _, r := range p.RolePrefixes {
		if underPrefix(rel, "/"+string(r)) {
			return r, true
		}
	}
	return "", false
}

// isPublic matches the root exactly and every other entry as a prefix.
func (p Policy) isPublic(rel string) bool {
	for _, pub := range p.PublicPaths {
		if pub == "/" {
			if rel == "/" || rel == "" {
				return true
			}
			continue
		}
		if underPrefix(rel, pub) {
			return true
		}
	}
	return false
}

func containsRole(roles []entities.Role, r entities.Role) bool {
	for _, x := range roles {
		if x == r {
			return true
		}
	}
	return false
}

// underPrefix matches whole path segments so "/administer" is not under "/admin".
func underPrefix(path, prefix string) bool {
	if prefix == "" {
		return false
	}
	if path == prefix {
		return true
	}
	if strings.HasSuffix(prefix, "/") {
		return strings.HasPrefix(path, prefix)
	}
	return strings.HasPrefix(path, prefix+"/")
}
