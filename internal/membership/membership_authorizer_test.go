package membership_test

import (
	"context"
	"testing"

	"go-leave/internal/membership"
	membershiperrors "go-leave/internal/membership/errors"
	"go-leave/internal/rbac"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func setupAuthorizer(t *testing.T, members ...*membership.Membership) membership.Authorizer {
	t.Helper()

	enforcer, err := rbac.NewEnforcer()
	assert.NoError(t, err)

	repo := &fakeMembershipRepository{
		findByCompanyAndUserFn: func(ctx context.Context, companyID, userID string) (*membership.Membership, error) {
			for _, m := range members {
				if m.CompanyID.String() == companyID && m.UserID.String() == userID {
					return m, nil
				}
			}
			return (&fakeMembershipRepository{}).FindByCompanyAndUser(ctx, companyID, userID)
		},
		findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*membership.Membership, error) {
			for _, m := range members {
				if m.CompanyID.String() == companyID && m.ID.String() == id {
					return m, nil
				}
			}
			return (&fakeMembershipRepository{}).FindByIDAndCompany(ctx, companyID, id)
		},
	}
	return membership.NewAuthorizer(repo, rbac.NewService(enforcer))
}

func TestAuthorizer_RequireMember(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employee := newMembership(companyID, rbac.RoleEmployee)
	auth := setupAuthorizer(t, employee)

	t.Run("member", func(t *testing.T) {
		m, err := auth.RequireMember(ctx, companyID.String(), employee.UserID.String())
		assert.NoError(t, err)
		assert.Equal(t, employee.ID, m.ID)
	})

	t.Run("negative other company", func(t *testing.T) {
		_, err := auth.RequireMember(ctx, uuid.New().String(), employee.UserID.String())
		assert.ErrorIs(t, err, membershiperrors.ErrNotCompanyMember)
	})

	t.Run("negative malformed ids", func(t *testing.T) {
		_, err := auth.RequireMember(ctx, "acme", employee.UserID.String())
		assert.ErrorIs(t, err, membershiperrors.ErrInvalidCompanyID)

		_, err = auth.RequireMember(ctx, companyID.String(), "")
		assert.ErrorIs(t, err, membershiperrors.ErrInvalidActorID)
	})
}

func TestAuthorizer_RequirePermission(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employee := newMembership(companyID, rbac.RoleEmployee)
	manager := newMembership(companyID, rbac.RoleManager)
	auth := setupAuthorizer(t, employee, manager)

	_, err := auth.RequirePermission(ctx, companyID.String(), manager.UserID.String(), rbac.ResourceLeave, rbac.ActionReview)
	assert.NoError(t, err)

	_, err = auth.RequirePermission(ctx, companyID.String(), employee.UserID.String(), rbac.ResourceLeave, rbac.ActionReview)
	assert.ErrorIs(t, err, membershiperrors.ErrInsufficientRole)
}

func TestAuthorizer_RequireOwner(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employee := newMembership(companyID, rbac.RoleEmployee)
	manager := newMembership(companyID, rbac.RoleManager)
	auth := setupAuthorizer(t, employee, manager)

	t.Run("owner", func(t *testing.T) {
		m, err := auth.RequireOwner(ctx, companyID.String(), employee.ID.String(), employee.UserID.String())
		assert.NoError(t, err)
		assert.Equal(t, employee.ID, m.ID)
	})

	t.Run("negative manager is not owner", func(t *testing.T) {
		_, err := auth.RequireOwner(ctx, companyID.String(), employee.ID.String(), manager.UserID.String())
		assert.ErrorIs(t, err, membershiperrors.ErrNotMembershipOwner)
	})

	t.Run("negative unknown target", func(t *testing.T) {
		_, err := auth.RequireOwner(ctx, companyID.String(), uuid.New().String(), employee.UserID.String())
		assert.ErrorIs(t, err, membershiperrors.ErrMembershipNotFound)
	})
}

func TestAuthorizer_RequireOwnerOr(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	alice := newMembership(companyID, rbac.RoleEmployee)
	bob := newMembership(companyID, rbac.RoleEmployee)
	manager := newMembership(companyID, rbac.RoleManager)
	auth := setupAuthorizer(t, alice, bob, manager)

	t.Run("owner", func(t *testing.T) {
		m, err := auth.RequireOwnerOr(ctx, companyID.String(), alice.ID.String(), alice.UserID.String(), rbac.ResourceLeave, rbac.ActionReadAll)
		assert.NoError(t, err)
		assert.Equal(t, alice.ID, m.ID)
	})

	t.Run("manager reads another membership", func(t *testing.T) {
		m, err := auth.RequireOwnerOr(ctx, companyID.String(), alice.ID.String(), manager.UserID.String(), rbac.ResourceLeave, rbac.ActionReadAll)
		assert.NoError(t, err)
		assert.Equal(t, alice.ID, m.ID)
	})

	t.Run("negative employee reads colleague", func(t *testing.T) {
		_, err := auth.RequireOwnerOr(ctx, companyID.String(), alice.ID.String(), bob.UserID.String(), rbac.ResourceLeave, rbac.ActionReadAll)
		assert.ErrorIs(t, err, membershiperrors.ErrInsufficientRole)
	})

	t.Run("negative manager unknown target", func(t *testing.T) {
		_, err := auth.RequireOwnerOr(ctx, companyID.String(), uuid.New().String(), manager.UserID.String(), rbac.ResourceLeave, rbac.ActionReadAll)
		assert.ErrorIs(t, err, membershiperrors.ErrMembershipNotFound)
	})
}

func TestAuthorizer_RequirePermissionOn(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employee := newMembership(companyID, rbac.RoleEmployee)
	manager := newMembership(companyID, rbac.RoleManager)
	auth := setupAuthorizer(t, employee, manager)

	m, err := auth.RequirePermissionOn(ctx, companyID.String(), employee.ID.String(), manager.UserID.String(), rbac.ResourceBalance, rbac.ActionAdjust)
	assert.NoError(t, err)
	assert.Equal(t, employee.ID, m.ID)

	m, err = auth.RequirePermissionOn(ctx, companyID.String(), manager.ID.String(), manager.UserID.String(), rbac.ResourceBalance, rbac.ActionAdjust)
	assert.NoError(t, err)
	assert.Equal(t, manager.ID, m.ID)

	_, err = auth.RequirePermissionOn(ctx, companyID.String(), employee.ID.String(), employee.UserID.String(), rbac.ResourceBalance, rbac.ActionAdjust)
	assert.ErrorIs(t, err, membershiperrors.ErrInsufficientRole)

	_, err = auth.RequirePermissionOn(ctx, companyID.String(), uuid.New().String(), manager.UserID.String(), rbac.ResourceBalance, rbac.ActionAdjust)
	assert.ErrorIs(t, err, membershiperrors.ErrMembershipNotFound)
}
