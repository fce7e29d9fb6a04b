package services

import (
	"fmt"
	"sort"
	"strings"

	. "gamestore/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// RoleGuest is the role of a caller that has not logged in.
const RoleGuest UserRole = "Guest"

const (
	ObjectGames    = "games"
	ObjectLibrary  = "library"
	ObjectReviews  = "reviews"
	ObjectPosts    = "posts"
	ObjectReports  = "reports"
	ObjectUsers    = "users"
	ObjectCatalog  = "catalog"
	ObjectSales    = "sales"
	ActionRead     = "read"
	ActionWrite    = "write"
	ActionCreate   = "create"
	ActionPrice    = "price"
	policyWildcard = "*"
)

type Permission struct {
	Object string `json:"object"`
	Action string `json:"action"`
}

func (p Permission) String() string {
	return p.Object + ":" + p.Action
}

var (
	PermGamesRead    = Permission{Object: ObjectGames, Action: ActionRead}
	PermGamesCreate  = Permission{Object: ObjectGames, Action: ActionCreate}
	PermGamesPrice   = Permission{Object: ObjectGames, Action: ActionPrice}
	PermLibraryWrite = Permission{Object: ObjectLibrary, Action: ActionWrite}
	PermReviewsWrite = Permission{Object: ObjectReviews, Action: ActionWrite}
	PermPostsRead    = Permission{Object: ObjectPosts, Action: ActionRead}
	PermPostsWrite   = Permission{Object: ObjectPosts, Action: ActionWrite}
	PermReportsRead  = Permission{Object: ObjectReports, Action: ActionRead}
	PermUsersRead    = Permission{Object: ObjectUsers, Action: ActionRead}
	PermCatalogWrite = Permission{Object: ObjectCatalog, Action: ActionWrite}
	PermSalesWrite   = Permission{Object: ObjectSales, Action: ActionWrite}
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

// rolePolicies grants each role its own permissions; inherited roles add theirs.
var rolePolicies = map[UserRole][]Permission{
	RoleGuest:             {PermGamesRead, PermPostsRead},
	UserRoleCustomer:      {PermLibraryWrite, PermReviewsWrite, PermPostsWrite},
	UserRoleDeveloper:     {PermGamesCreate, PermGamesPrice},
	UserRoleManager:       {PermReportsRead, PermUsersRead},
	UserRoleAdministrator: {{Object: policyWildcard, Action: policyWildcard}},
}

var roleInheritance = [][2]UserRole{
	{UserRoleCustomer, RoleGuest},
	{UserRoleDeveloper, UserRoleCustomer},
	{UserRoleManager, UserRoleDeveloper},
}

// PolicyService answers role permission questions through a casbin enforcer.
type PolicyService struct {
	enforcer *casbin.Enforcer
	log      logger.Logger
}

func NewPolicyService() (*PolicyService, error) {
	log := logger.New("policyService").Function("NewPolicyService")

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, log.Err("failed to parse rbac model", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, log.Err("failed to create casbin enforcer", err)
	}

	for role, permissions := range rolePolicies {
		for _, permission := range permissions {
			if _, err := enforcer.AddPolicy(roleSubject(role), permission.Object, permission.Action); err != nil {
				return nil, log.Err("failed to add policy", err, "role", role, "permission", permission)
			}
		}
	}

	for _, pair := range roleInheritance {
		if _, err := enforcer.AddGroupingPolicy(roleSubject(pair[0]), roleSubject(pair[1])); err != nil {
			return nil, log.Err("failed to add role inheritance", err, "role", pair[0], "inherits", pair[1])
		}
	}

	return &PolicyService{
		enforcer: enforcer,
		log:      logger.New("policyService"),
	}, nil
}

// Can reports whether role may perform action on object. An empty role is a guest.
func (p *PolicyService) Can(role UserRole, object, action string) bool {
	allowed, err := p.enforcer.Enforce(roleSubject(role), object, action)
	if err != nil {
		p.log.Function("Can").Er("failed to enforce policy", err, "role", role)
		return false
	}
	return allowed
}

// Authorize is Can returning ErrPermissionDenied on refusal.
func (p *PolicyService) Authorize(role UserRole, permission Permission) error {
	if p.Can(role, permission.Object, permission.Action) {
		return nil
	}
	p.log.Function("Authorize").Debug("permission denied", "role", role, "permission", permission.String())
	return fmt.Errorf("%w: %s may not %s", ErrPermissionDenied, roleName(role), permission.String())
}

// AuthorizePrincipal is Authorize for a session. A guest refused a permission is asked to
// log in rather than denied outright.
func (p *PolicyService) AuthorizePrincipal(principal Principal, permission Permission) error {
	err := p.Authorize(principal.Role, permission)
	if err != nil && !principal.Authenticated() {
		return fmt.Errorf("%w: login required to %s", ErrUnauthenticated, permission.String())
	}
	return err
}

// AuthorizeUser additionally requires a storefront user account, for operations on the
// caller's own library, wishlist or reviews.
func (p *PolicyService) AuthorizeUser(principal Principal, permission Permission) error {
	if err := p.AuthorizePrincipal(principal, permission); err != nil {
		return err
	}
	if principal.Kind != PrincipalUser {
		return fmt.Errorf("%w: %s has no user account", ErrPermissionDenied, principal.Username)
	}
	return nil
}

// AuthorizeAdministrator requires an administrator session.
func (p *PolicyService) AuthorizeAdministrator(principal Principal, permission Permission) error {
	if !principal.Authenticated() {
		return fmt.Errorf("%w: administrator login required", ErrUnauthenticated)
	}
	if !principal.IsAdministrator() {
		return fmt.Errorf("%w: %s is not an administrator", ErrPermissionDenied, principal.Username)
	}
	return p.Authorize(principal.Role, permission)
}

// Permissions lists the role's direct and inherited permissions, sorted.
func (p *PolicyService) Permissions(role UserRole) []Permission {
	rules, err := p.enforcer.GetImplicitPermissionsForUser(roleSubject(role))
	if err != nil {
		p.log.Function("Permissions").Er("failed to list permissions", err, "role", role)
		return nil
	}

	seen := make(map[Permission]bool)
	permissions := make([]Permission, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		permission := Permission{Object: rule[1], Action: rule[2]}
		if seen[permission] {
			continue
		}
		seen[permission] = true
		permissions = append(permissions, permission)
	}

	sort.Slice(permissions, func(i, j int) bool {
		return permissions[i].String() < permissions[j].String()
	})
	return permissions
}

func roleName(role UserRole) string {
	if role == "" {
		return string(RoleGuest)
	}
	return string(role)
}

func roleSubject(role UserRole) string {
	return "role:" + strings.ToLower(roleName(role))
}
