// Package access implements the flat permission allow-list applied to
// elevated roles. Ordinary users are never restricted by it.
package access

import (
	"strings"

	"streamcart/auth-api/internal/model"
)

type Method string

const (
	Create Method = "create"
	Read   Method = "read"
	Update Method = "update"
	Delete Method = "delete"
)

type Resource string

const (
	Category   Resource = "Category"
	Product    Resource = "Product"
	Order      Resource = "Order"
	Room       Resource = "Room"
	Source     Resource = "Source"
	Collection Resource = "Collection"
	User       Resource = "User"
)

// Permission is one (method, resource) grant. Its storage form is the
// concatenated "<method><Resource>" string the permissions column holds.
type Permission struct {
	Method   Method
	Resource Resource
}

func (p Permission) String() string {
	return string(p.Method) + string(p.Resource)
}

// Parse splits a stored permission string back into its typed pair.
// Unknown strings come back as ok=false and grant nothing.
func Parse(s string) (Permission, bool) {
	for _, m := range []Method{Create, Read, Update, Delete} {
		rest, found := strings.CutPrefix(s, string(m))
		if !found || rest == "" {
			continue
		}

		return Permission{Method: m, Resource: Resource(rest)}, true
	}

	return Permission{}, false
}

// Checker answers permission questions for one user's role and grants.
type Checker struct {
	elevated bool
	grants   map[Permission]struct{}
}

// NewChecker builds a Checker from a user row. Malformed permission
// strings are dropped rather than matched loosely.
func NewChecker(user *model.User) *Checker {
	c := &Checker{
		elevated: user.Role == model.RoleModerator || user.Role == model.RoleAdmin,
		grants:   make(map[Permission]struct{}, len(user.Permissions)),
	}

	for _, raw := range user.Permissions {
		if p, ok := Parse(raw); ok {
			c.grants[p] = struct{}{}
		}
	}

	return c
}

// Allowed reports whether the user may perform method on resource.
// Non-elevated roles are allowed unconditionally; elevated roles need
// the exact grant.
func (c *Checker) Allowed(method Method, resource Resource) bool {
	if !c.elevated {
		return true
	}

	_, ok := c.grants[Permission{Method: method, Resource: resource}]
	return ok
}
