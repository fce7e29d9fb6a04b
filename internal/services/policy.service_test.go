package services

import (
	"testing"

	. "gamestore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyService_Can(t *testing.T) {
	policy, err := NewPolicyService()
	require.NoError(t, err)

	tests := []struct {
		name       string
		role       UserRole
		permission Permission
		expected   bool
	}{
		{name: "Guest browses games", role: "", permission: PermGamesRead, expected: true},
		{name: "Guest cannot buy", role: "", permission: PermLibraryWrite, expected: false},
		{name: "Customer buys", role: UserRoleCustomer, permission: PermLibraryWrite, expected: true},
		{name: "Customer inherits browsing", role: UserRoleCustomer, permission: PermPostsRead, expected: true},
		{name: "Customer cannot create games", role: UserRoleCustomer, permission: PermGamesCreate, expected: false},
		{name: "Developer creates games", role: UserRoleDeveloper, permission: PermGamesCreate, expected: true},
		{name: "Developer reviews", role: UserRoleDeveloper, permission: PermReviewsWrite, expected: true},
		{name: "Developer cannot read reports", role: UserRoleDeveloper, permission: PermReportsRead, expected: false},
		{name: "Manager reads reports", role: UserRoleManager, permission: PermReportsRead, expected: true},
		{name: "Manager sets prices", role: UserRoleManager, permission: PermGamesPrice, expected: true},
		{name: "Manager cannot run sales", role: UserRoleManager, permission: PermSalesWrite, expected: false},
		{name: "Administrator does everything", role: UserRoleAdministrator, permission: PermSalesWrite, expected: true},
		{name: "Administrator on unknown object", role: UserRoleAdministrator, permission: Permission{Object: "anything", Action: "delete"}, expected: true},
		{name: "Unknown role gets nothing", role: UserRole("Pirate"), permission: PermGamesRead, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, policy.Can(tt.role, tt.permission.Object, tt.permission.Action))
		})
	}
}

func TestPolicyService_Authorize(t *testing.T) {
	policy, err := NewPolicyService()
	require.NoError(t, err)

	assert.NoError(t, policy.Authorize(UserRoleDeveloper, PermGamesPrice))

	err = policy.Authorize(UserRoleCustomer, PermGamesCreate)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Contains(t, err.Error(), "games:create")
}

func TestPolicyService_Permissions(t *testing.T) {
	policy, err := NewPolicyService()
	require.NoError(t, err)

	customer := policy.Permissions(UserRoleCustomer)
	assert.Equal(t, []Permission{
		PermGamesRead,
		PermLibraryWrite,
		PermPostsRead,
		PermPostsWrite,
		PermReviewsWrite,
	}, customer)

	manager := policy.Permissions(UserRoleManager)
	assert.Contains(t, manager, PermUsersRead)
	assert.Contains(t, manager, PermGamesCreate)
	assert.Contains(t, manager, PermGamesRead)
	assert.NotContains(t, manager, PermCatalogWrite)
}

func TestPolicyService_AuthorizePrincipal(t *testing.T) {
	policy, err := NewPolicyService()
	require.NoError(t, err)

	customer := Principal{Kind: PrincipalUser, ID: 1, Username: "customer1", Role: UserRoleCustomer}
	admin := Principal{Kind: PrincipalAdmin, ID: 1, Username: "admin1", Role: UserRoleAdministrator}

	tests := []struct {
		name      string
		check     func() error
		expectErr error
	}{
		{name: "Guest reads games", check: func() error { return policy.AuthorizePrincipal(Principal{}, PermGamesRead) }},
		{name: "Guest must log in to post", check: func() error { return policy.AuthorizePrincipal(Principal{}, PermPostsWrite) }, expectErr: ErrUnauthenticated},
		{name: "Customer denied reports", check: func() error { return policy.AuthorizePrincipal(customer, PermReportsRead) }, expectErr: ErrPermissionDenied},
		{name: "Customer buys", check: func() error { return policy.AuthorizeUser(customer, PermLibraryWrite) }},
		{name: "Administrator has no library", check: func() error { return policy.AuthorizeUser(admin, PermLibraryWrite) }, expectErr: ErrPermissionDenied},
		{name: "Guest has no library", check: func() error { return policy.AuthorizeUser(Principal{}, PermLibraryWrite) }, expectErr: ErrUnauthenticated},
		{name: "Administrator runs sales", check: func() error { return policy.AuthorizeAdministrator(admin, PermSalesWrite) }},
		{name: "Customer cannot run sales", check: func() error { return policy.AuthorizeAdministrator(customer, PermSalesWrite) }, expectErr: ErrPermissionDenied},
		{name: "Guest cannot run sales", check: func() error { return policy.AuthorizeAdministrator(Principal{}, PermSalesWrite) }, expectErr: ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check()
			if tt.expectErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expectErr)
		})
	}
}
