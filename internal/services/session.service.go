package services

import (
	"fmt"
	"strconv"
	"time"

	"gamestore/config"
	. "gamestore/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
)

type PrincipalKind string

const (
	PrincipalUser  PrincipalKind = "user"
	PrincipalAdmin PrincipalKind = "admin"
)

const sessionIssuer = "gamestore"

// Principal is whoever is logged in: a storefront user or an administrator.
// The zero value is an anonymous guest.
type Principal struct {
	Kind     PrincipalKind `json:"kind"`
	ID       int           `json:"id"`
	Username string        `json:"username"`
	Role     UserRole      `json:"role"`
}

func UserPrincipal(user *User) Principal {
	return Principal{Kind: PrincipalUser, ID: user.ID, Username: user.Username, Role: user.Role}
}

// AdministratorPrincipal gives administrators the Administrator role.
func AdministratorPrincipal(admin *Administrator) Principal {
	return Principal{
		Kind:     PrincipalAdmin,
		ID:       admin.ID,
		Username: admin.Username,
		Role:     UserRoleAdministrator,
	}
}

func (p Principal) Authenticated() bool {
	return p.Kind != ""
}

func (p Principal) IsAdministrator() bool {
	return p.Kind == PrincipalAdmin
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Kind     PrincipalKind `json:"kind"`
	Username string        `json:"username"`
	Role     UserRole      `json:"role"`
}

// SessionService issues and verifies HS256 session tokens.
type SessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	log    logger.Logger
}

func NewSessionService(config config.Config) *SessionService {
	return &SessionService{
		secret: []byte(config.SessionSecret),
		ttl:    time.Duration(config.SessionTTLMinutes) * time.Minute,
		now:    time.Now,
		log:    logger.New("sessionService"),
	}
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

func (s *SessionService) Issue(principal Principal) (string, error) {
	log := s.log.Function("Issue")

	if !principal.Authenticated() {
		return "", fmt.Errorf("%w: cannot issue a session for a guest", ErrInvalidArgument)
	}

	now := s.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   strconv.Itoa(principal.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Kind:     principal.Kind,
		Username: principal.Username,
		Role:     principal.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", log.Err("failed to sign session token", err, "username", principal.Username)
	}

	return signed, nil
}

func (s *SessionService) Parse(tokenString string) (Principal, error) {
	log := s.log.Function("Parse")

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		log.Debug("session token rejected", "error", err)
		return Principal{}, fmt.Errorf("%w: invalid session token", ErrUnauthenticated)
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: invalid session subject", ErrUnauthenticated)
	}

	if claims.Kind != PrincipalUser && claims.Kind != PrincipalAdmin {
		return Principal{}, fmt.Errorf("%w: invalid session kind", ErrUnauthenticated)
	}

	return Principal{
		Kind:     claims.Kind,
		ID:       id,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}
