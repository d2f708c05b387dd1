package membership

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	membershiperrors "go-leave/internal/membership/errors"
	"go-leave/internal/rbac"
	"go-leave/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const listCacheTTL = 10 * time.Minute

func GetMembershipListKey(companyID string) string {
	return fmt.Sprintf("memberships:list:%s", companyID)
}

//go:generate mockgen -source=membership_service.go -destination=mock/membership_service_mock.go -package=mock
type Service interface {
	GetMe(ctx context.Context, companyID, actorID string) (MeResponse, error)
	List(ctx context.Context, companyID, actorID string) ([]MembershipResponse, error)
	UpdateRole(ctx context.Context, companyID, membershipID, actorID string, req UpdateRoleRequest) (MembershipResponse, error)
	Remove(ctx context.Context, companyID, membershipID, actorID string) error
	RefreshOnLeave(ctx context.Context, membershipID string, day time.Time) error
	SyncOnLeaveFlags(ctx context.Context, day time.Time) (int64, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	authorizer Authorizer
	rbac       rbac.Service
	rdb        *redis.Client
	sf         *singleflight.Group
	logger     *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, authorizer Authorizer, rbacService rbac.Service, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("membership.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("membership.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		authorizer: authorizer,
		rbac:       rbacService,
		rdb:        rdb,
		sf:         &singleflight.Group{},
		logger:     l,
	}
}

func (s *service) GetMe(ctx context.Context, companyID, actorID string) (MeResponse, error) {
	actor, err := s.authorizer.RequireMember(ctx, companyID, actorID)
	if err != nil {
		return MeResponse{}, err
	}

	perms, err := s.rbac.PermissionsForRole(actor.Role)
	if err != nil {
		s.logger.Error("load role permissions failed", zap.String("role", actor.Role), zap.Error(err))
		return MeResponse{}, err
	}

	return MeResponse{
		Membership:  mapToResponse(*actor),
		Permissions: perms,
	}, nil
}

func (s *service) List(ctx context.Context, companyID, actorID string) ([]MembershipResponse, error) {
	if _, err := s.authorizer.RequireMember(ctx, companyID, actorID); err != nil {
		return nil, err
	}

	cacheKey := GetMembershipListKey(companyID)
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp []MembershipResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		memberships, err := s.repo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(memberships)
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, listCacheTTL).Err(); err != nil {
					s.logger.Warn("cache membership list failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("list memberships failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	return v.([]MembershipResponse), nil
}

func (s *service) UpdateRole(ctx context.Context, companyID, membershipID, actorID string, req UpdateRoleRequest) (MembershipResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update membership role requested",
		zap.String("company_id", companyID),
		zap.String("membership_id", membershipID),
		zap.String("role", req.Role),
	)

	if !rbac.IsValidRole(req.Role) {
		return MembershipResponse{}, membershiperrors.ErrInvalidRole
	}
	if _, err := s.authorizer.RequirePermission(ctx, companyID, actorID, rbac.ResourceMembership, rbac.ActionManage); err != nil {
		return MembershipResponse{}, err
	}

	var updated *Membership
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		target, err := findInCompany(ctx, qtx, companyID, membershipID)
		if err != nil {
			return err
		}
		if target.Role == rbac.RoleManager && req.Role != rbac.RoleManager {
			if err := ensureAnotherManager(ctx, qtx, companyID); err != nil {
				return err
			}
		}

		if err := qtx.UpdateRole(ctx, membershipID, req.Role); err != nil {
			return err
		}
		target.Role = req.Role
		updated = target
		return nil
	})
	if err != nil {
		if errors.Is(err, membershiperrors.ErrMembershipNotFound) || errors.Is(err, membershiperrors.ErrLastManager) {
			log.Warn("update membership role rejected", zap.Error(err))
		} else {
			log.Error("update membership role failed", zap.Error(err))
		}
		return MembershipResponse{}, err
	}

	s.invalidateList(ctx, companyID)
	log.Info("update membership role success",
		zap.String("membership_id", membershipID),
		zap.String("role", req.Role),
	)
	return mapToResponse(*updated), nil
}

func (s *service) Remove(ctx context.Context, companyID, membershipID, actorID string) error {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("remove membership requested",
		zap.String("company_id", companyID),
		zap.String("membership_id", membershipID),
	)

	target, err := s.authorizer.RequireOwnerOr(ctx, companyID, membershipID, actorID, rbac.ResourceMembership, rbac.ActionManage)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		if target.Role == rbac.RoleManager {
			if err := ensureAnotherManager(ctx, qtx, companyID); err != nil {
				return err
			}
		}
		return qtx.Delete(ctx, companyID, membershipID)
	})
	if err != nil {
		if errors.Is(err, membershiperrors.ErrLastManager) {
			log.Warn("remove membership rejected", zap.Error(err))
		} else {
			log.Error("remove membership failed", zap.Error(err))
		}
		return err
	}

	s.invalidateList(ctx, companyID)
	log.Info("remove membership success", zap.String("membership_id", membershipID))
	return nil
}

// RefreshOnLeave recomputes the on-leave flag from approved leaves covering day.
func (s *service) RefreshOnLeave(ctx context.Context, membershipID string, day time.Time) error {
	m, err := s.repo.FindByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return membershiperrors.ErrMembershipNotFound
		}
		return err
	}

	onLeave, err := s.repo.HasApprovedLeaveOn(ctx, membershipID, day)
	if err != nil {
		s.logger.Error("on leave lookup failed", zap.String("membership_id", membershipID), zap.Error(err))
		return err
	}
	if onLeave == m.OnLeave {
		return nil
	}

	if err := s.repo.SetOnLeave(ctx, membershipID, onLeave); err != nil {
		s.logger.Error("on leave update failed", zap.String("membership_id", membershipID), zap.Error(err))
		return err
	}

	s.invalidateList(ctx, m.CompanyID.String())
	s.logger.Info("on leave refreshed",
		zap.String("membership_id", membershipID),
		zap.Bool("on_leave", onLeave),
	)
	return nil
}

// SyncOnLeaveFlags is the periodic sweep that catches leaves starting or
// ending without a review event.
func (s *service) SyncOnLeaveFlags(ctx context.Context, day time.Time) (int64, error) {
	changed, err := s.repo.SyncOnLeave(ctx, day)
	if err != nil {
		s.logger.Error("on leave sweep failed", zap.Error(err))
		return 0, err
	}
	if changed > 0 {
		s.logger.Info("on leave sweep updated memberships", zap.Int64("count", changed))
	}
	return changed, nil
}

func (s *service) invalidateList(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetMembershipListKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Warn("invalidate membership list failed", zap.String("key", cacheKey), zap.Error(err))
	}
}

func findInCompany(ctx context.Context, repo Repository, companyID, membershipID string) (*Membership, error) {
	m, err := repo.FindByIDAndCompany(ctx, companyID, membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, membershiperrors.ErrMembershipNotFound
		}
		return nil, err
	}
	return m, nil
}

func ensureAnotherManager(ctx context.Context, repo Repository, companyID string) error {
	managers, err := repo.CountByRoleForUpdate(ctx, companyID, rbac.RoleManager)
	if err != nil {
		return err
	}
	if managers <= 1 {
		return membershiperrors.ErrLastManager
	}
	return nil
}

func mapToResponse(m Membership) MembershipResponse {
	resp := MembershipResponse{
		ID:        m.ID.String(),
		CompanyID: m.CompanyID.String(),
		UserID:    m.UserID.String(),
		Role:      m.Role,
		OnLeave:   m.OnLeave,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
	if m.User != nil {
		resp.UserName = m.User.Name
		resp.UserEmail = m.User.Email
	}
	return resp
}

func mapToListResponse(memberships []Membership) []MembershipResponse {
	resp := make([]MembershipResponse, 0, len(memberships))
	for _, m := range memberships {
		resp = append(resp, mapToResponse(m))
	}
	return resp
}
