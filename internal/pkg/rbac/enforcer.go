// Package rbac decides whether a role may perform an action on an object.
// Policies come from the role table in the user domain and are held by a
// casbin enforcer with role inheritance.
package rbac

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

type Authorizer interface {
	Can(role user.Role, permission user.Permission) (bool, error)
}

type Enforcer struct {
	enforcer *casbin.SyncedEnforcer
}

// NewEnforcer builds an enforcer loaded with the given grants and
// child -> parent role edges.
func NewEnforcer(grants map[user.Role][]user.Permission, inheritance map[user.Role]user.Role) (*Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rbac model: %w", err)
	}

	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	rules := make([][]string, 0)
	for role, perms := range grants {
		for _, p := range perms {
			rules = append(rules, []string{string(role), p.Object, p.Action})
		}
	}
	if len(rules) > 0 {
		if _, err := e.AddPolicies(rules); err != nil {
			return nil, fmt.Errorf("failed to load policies: %w", err)
		}
	}

	for child, parent := range inheritance {
		if _, err := e.AddGroupingPolicy(string(child), string(parent)); err != nil {
			return nil, fmt.Errorf("failed to load role %s: %w", child, err)
		}
	}

	return &Enforcer{enforcer: e}, nil
}

// NewDefaultEnforcer loads the built-in ADMIN/EMPLOYEE policy.
func NewDefaultEnforcer() (*Enforcer, error) {
	return NewEnforcer(user.RolePermissions, user.RoleInheritance)
}

func (e *Enforcer) Can(role user.Role, permission user.Permission) (bool, error) {
	return e.enforcer.Enforce(string(role), permission.Object, permission.Action)
}
