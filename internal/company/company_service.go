package company

import (
	"context"
	"errors"

	companyerrors "go-leave/internal/company/errors"
	"go-leave/internal/membership"
	"go-leave/internal/rbac"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/company_service_mock.go -package=mock . Service
type Service interface {
	GetByID(ctx context.Context, companyID, actorID string) (*CompanyResponse, error)
	Update(ctx context.Context, companyID, actorID string, req UpdateCompanyRequest) (*CompanyResponse, error)
}

type service struct {
	repo       Repository
	authorizer membership.Authorizer
	logger     *zap.Logger
}

func NewService(repo Repository, authorizer membership.Authorizer, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, authorizer: authorizer, logger: l}
}

func (s *service) GetByID(ctx context.Context, companyID, actorID string) (*CompanyResponse, error) {
	if _, err := s.authorizer.RequireMember(ctx, companyID, actorID); err != nil {
		return nil, err
	}

	comp, err := s.find(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return mapToResponse(comp), nil
}

func (s *service) Update(ctx context.Context, companyID, actorID string, req UpdateCompanyRequest) (*CompanyResponse, error) {
	if req.Name == nil && req.Logo == nil && req.AnnualLeaveDays == nil {
		return nil, companyerrors.ErrMissingRequiredFields
	}
	if _, err := s.authorizer.RequirePermission(ctx, companyID, actorID, rbac.ResourceMembership, rbac.ActionManage); err != nil {
		return nil, err
	}

	comp, err := s.find(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		comp.Name = *req.Name
	}
	if req.Logo != nil {
		comp.Logo = req.Logo
	}
	if req.AnnualLeaveDays != nil {
		comp.AnnualLeaveDays = *req.AnnualLeaveDays
	}

	if err := s.repo.Update(ctx, comp); err != nil {
		s.logger.Error("update company failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("update company success",
		zap.String("company_id", companyID),
		zap.Int("annual_leave_days", comp.AnnualLeaveDays),
	)
	return mapToResponse(comp), nil
}

func (s *service) find(ctx context.Context, companyID string) (*Company, error) {
	comp, err := s.repo.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		s.logger.Error("load company failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}
	return comp, nil
}

func mapToResponse(c *Company) *CompanyResponse {
	return &CompanyResponse{
		ID:              c.ID.String(),
		Name:            c.Name,
		Logo:            c.Logo,
		AnnualLeaveDays: c.AnnualLeaveDays,
	}
}
