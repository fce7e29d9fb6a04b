package authController

import (
	"context"
	"fmt"
	"strings"
	"time"

	. "gamestore/internal/models"
	"gamestore/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type AuthController struct {
	catalog  *services.CatalogService
	sessions *services.SessionService
	policy   *services.PolicyService
	log      logger.Logger
}

type AuthControllerInterface interface {
	Login(ctx context.Context, req LoginRequest) (*SessionResponse, error)
	AdminLogin(ctx context.Context, req LoginRequest) (*SessionResponse, error)
	Register(ctx context.Context, caller services.Principal, req RegisterRequest) (*User, error)
	RegisterAdministrator(
		ctx context.Context,
		caller services.Principal,
		req LoginRequest,
	) (*Administrator, error)
	Permissions(caller services.Principal) []services.Permission
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type SessionResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
	Principal services.Principal `json:"principal"`
}

func New(service services.Service) AuthControllerInterface {
	return &AuthController{
		catalog:  service.Catalog,
		sessions: service.Session,
		policy:   service.Policy,
		log:      logger.New("authController"),
	}
}

func (c *AuthController) Login(ctx context.Context, req LoginRequest) (*SessionResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("Login")

	if err := validateCredentials(req); err != nil {
		return nil, err
	}

	user, err := c.catalog.Authenticate(req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	response, err := c.issue(services.UserPrincipal(user))
	if err != nil {
		return nil, err
	}

	log.Info("User logged in", "userID", user.ID, "role", user.Role)
	return response, nil
}

func (c *AuthController) AdminLogin(ctx context.Context, req LoginRequest) (*SessionResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("AdminLogin")

	if err := validateCredentials(req); err != nil {
		return nil, err
	}

	admin, err := c.catalog.AuthenticateAdministrator(req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	response, err := c.issue(services.AdministratorPrincipal(admin))
	if err != nil {
		return nil, err
	}

	log.Info("Administrator logged in", "adminID", admin.ID)
	return response, nil
}

// Register creates a storefront account. Anyone may sign up as a customer, developer or
// manager; Administrator-role accounts can only be created from an administrator session.
func (c *AuthController) Register(
	ctx context.Context,
	caller services.Principal,
	req RegisterRequest,
) (*User, error) {
	log := c.log.TraceFromContext(ctx).Function("Register")

	if strings.TrimSpace(req.Username) == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidArgument)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidArgument)
	}

	role := UserRoleCustomer
	if req.Role != "" {
		parsed, err := ParseUserRole(req.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}

	if role == UserRoleAdministrator && !caller.IsAdministrator() {
		log.Warn("Administrator role requested without administrator session", "username", req.Username)
		return nil, fmt.Errorf("%w: only administrators may grant the Administrator role", ErrPermissionDenied)
	}

	return c.catalog.RegisterUser(strings.TrimSpace(req.Username), req.Email, req.Password, role)
}

func (c *AuthController) RegisterAdministrator(
	ctx context.Context,
	caller services.Principal,
	req LoginRequest,
) (*Administrator, error) {
	log := c.log.TraceFromContext(ctx).Function("RegisterAdministrator")

	if err := c.policy.AuthorizeAdministrator(caller, services.PermUsersRead); err != nil {
		return nil, err
	}
	if err := validateCredentials(req); err != nil {
		return nil, err
	}

	admin, err := c.catalog.RegisterAdministrator(strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		return nil, err
	}

	log.Info("Administrator registered", "adminID", admin.ID, "by", caller.Username)
	return admin, nil
}

func (c *AuthController) Permissions(caller services.Principal) []services.Permission {
	return c.policy.Permissions(caller.Role)
}

func (c *AuthController) issue(principal services.Principal) (*SessionResponse, error) {
	token, err := c.sessions.Issue(principal)
	if err != nil {
		return nil, err
	}

	return &SessionResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(c.sessions.TTL()),
		Principal: principal,
	}, nil
}

func validateCredentials(req LoginRequest) error {
	if strings.TrimSpace(req.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidArgument)
	}
	if req.Password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidArgument)
	}
	return nil
}
