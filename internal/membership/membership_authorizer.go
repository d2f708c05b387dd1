package membership

import (
	"context"
	"errors"

	membershiperrors "go-leave/internal/membership/errors"
	"go-leave/internal/rbac"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Authorizer answers "who may act on what" for a company. Every leave and
// balance operation goes through it before touching data.
//
//go:generate mockgen -source=membership_authorizer.go -destination=mock/membership_authorizer_mock.go -package=mock
type Authorizer interface {
	// RequireMember returns the actor's membership in the company.
	RequireMember(ctx context.Context, companyID, userID string) (*Membership, error)
	// RequirePermission returns the actor's membership if its role grants
	// resource:action.
	RequirePermission(ctx context.Context, companyID, userID, resource, action string) (*Membership, error)
	// RequireOwner returns the target membership if it belongs to the actor.
	RequireOwner(ctx context.Context, companyID, membershipID, userID string) (*Membership, error)
	// RequireOwnerOr returns the target membership if it belongs to the
	// actor or the actor's role grants resource:action.
	RequireOwnerOr(ctx context.Context, companyID, membershipID, userID, resource, action string) (*Membership, error)
	// RequirePermissionOn checks resource:action like RequirePermission and
	// then returns the target membership, even when it is the actor's own.
	RequirePermissionOn(ctx context.Context, companyID, membershipID, userID, resource, action string) (*Membership, error)
}

type authorizer struct {
	repo   Repository
	rbac   rbac.Service
	logger *zap.Logger
}

func NewAuthorizer(repo Repository, rbacService rbac.Service, logger ...*zap.Logger) Authorizer {
	l := zap.L().Named("membership.authorizer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("membership.authorizer")
	}
	return &authorizer{repo: repo, rbac: rbacService, logger: l}
}

func (a *authorizer) RequireMember(ctx context.Context, companyID, userID string) (*Membership, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, membershiperrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, membershiperrors.ErrInvalidActorID
	}

	m, err := a.repo.FindByCompanyAndUser(ctx, companyID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			a.logger.Warn("actor is not a company member",
				zap.String("company_id", companyID),
				zap.String("user_id", userID),
			)
			return nil, membershiperrors.ErrNotCompanyMember
		}
		return nil, err
	}
	return m, nil
}

func (a *authorizer) RequirePermission(ctx context.Context, companyID, userID, resource, action string) (*Membership, error) {
	actor, err := a.RequireMember(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if err := a.enforce(actor, resource, action); err != nil {
		return nil, err
	}
	return actor, nil
}

func (a *authorizer) RequireOwner(ctx context.Context, companyID, membershipID, userID string) (*Membership, error) {
	actor, err := a.RequireMember(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	targetID, err := uuid.Parse(membershipID)
	if err != nil {
		return nil, membershiperrors.ErrMembershipNotFound
	}
	if actor.ID == targetID {
		return actor, nil
	}

	if _, err := a.findTarget(ctx, companyID, membershipID); err != nil {
		return nil, err
	}
	return nil, membershiperrors.ErrNotMembershipOwner
}

func (a *authorizer) RequireOwnerOr(ctx context.Context, companyID, membershipID, userID, resource, action string) (*Membership, error) {
	actor, err := a.RequireMember(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	targetID, err := uuid.Parse(membershipID)
	if err != nil {
		return nil, membershiperrors.ErrMembershipNotFound
	}
	if actor.ID == targetID {
		return actor, nil
	}

	if err := a.enforce(actor, resource, action); err != nil {
		return nil, err
	}
	return a.findTarget(ctx, companyID, membershipID)
}

func (a *authorizer) RequirePermissionOn(ctx context.Context, companyID, membershipID, userID, resource, action string) (*Membership, error) {
	actor, err := a.RequirePermission(ctx, companyID, userID, resource, action)
	if err != nil {
		return nil, err
	}
	targetID, err := uuid.Parse(membershipID)
	if err != nil {
		return nil, membershiperrors.ErrMembershipNotFound
	}
	if actor.ID == targetID {
		return actor, nil
	}
	return a.findTarget(ctx, companyID, membershipID)
}

func (a *authorizer) enforce(actor *Membership, resource, action string) error {
	allowed, err := a.rbac.Enforce(rbac.EnforceRequest{
		Role:     actor.Role,
		Resource: resource,
		Action:   action,
	})
	if err != nil {
		return err
	}
	if !allowed {
		a.logger.Warn("actor role denied",
			zap.String("membership_id", actor.ID.String()),
			zap.String("role", actor.Role),
			zap.String("required", resource+":"+action),
		)
		return membershiperrors.ErrInsufficientRole
	}
	return nil
}

func (a *authorizer) findTarget(ctx context.Context, companyID, membershipID string) (*Membership, error) {
	m, err := a.repo.FindByIDAndCompany(ctx, companyID, membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, membershiperrors.ErrMembershipNotFound
		}
		return nil, err
	}
	return m, nil
}
