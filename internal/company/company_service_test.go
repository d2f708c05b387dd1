package company_test

import (
	"context"
	"errors"
	"testing"

	"go-leave/internal/company"
	companyerrors "go-leave/internal/company/errors"
	companyMock "go-leave/internal/company/mock"
	"go-leave/internal/membership"
	membershiperrors "go-leave/internal/membership/errors"
	membershipMock "go-leave/internal/membership/mock"
	"go-leave/internal/rbac"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func TestService_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := companyMock.NewMockRepository(ctrl)
	mockAuth := membershipMock.NewMockAuthorizer(ctrl)
	service := company.NewService(mockRepo, mockAuth)
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("Success", func(t *testing.T) {
		id := uuid.New()
		mockComp := &company.Company{
			ID:              id,
			Name:            "Acme",
			AnnualLeaveDays: 25,
		}

		mockAuth.EXPECT().RequireMember(ctx, id.String(), actorID).Return(&membership.Membership{}, nil)
		mockRepo.EXPECT().GetByID(ctx, id.String()).Return(mockComp, nil)

		resp, err := service.GetByID(ctx, id.String(), actorID)

		assert.NoError(t, err)
		assert.Equal(t, "Acme", resp.Name)
		assert.Equal(t, 25, resp.AnnualLeaveDays)
		assert.Equal(t, id.String(), resp.ID)
	})

	t.Run("Not Found", func(t *testing.T) {
		id := uuid.New()
		mockAuth.EXPECT().RequireMember(ctx, id.String(), actorID).Return(&membership.Membership{}, nil)
		mockRepo.EXPECT().GetByID(ctx, id.String()).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.GetByID(ctx, id.String(), actorID)

		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})

	t.Run("Not A Member", func(t *testing.T) {
		id := uuid.New()
		mockAuth.EXPECT().RequireMember(ctx, id.String(), actorID).Return(nil, membershiperrors.ErrNotCompanyMember)

		_, err := service.GetByID(ctx, id.String(), actorID)

		assert.ErrorIs(t, err, membershiperrors.ErrNotCompanyMember)
	})
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := companyMock.NewMockRepository(ctrl)
	mockAuth := membershipMock.NewMockAuthorizer(ctrl)
	service := company.NewService(mockRepo, mockAuth)
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("Success Update Allotment", func(t *testing.T) {
		id := uuid.New()
		days := 30
		mockComp := &company.Company{ID: id, Name: "Acme", AnnualLeaveDays: 25}

		mockAuth.EXPECT().
			RequirePermission(ctx, id.String(), actorID, rbac.ResourceMembership, rbac.ActionManage).
			Return(&membership.Membership{}, nil)
		mockRepo.EXPECT().GetByID(ctx, id.String()).Return(mockComp, nil)
		mockRepo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, c *company.Company) error {
			assert.Equal(t, 30, c.AnnualLeaveDays)
			assert.Equal(t, "Acme", c.Name)
			return nil
		})

		resp, err := service.Update(ctx, id.String(), actorID, company.UpdateCompanyRequest{AnnualLeaveDays: &days})

		assert.NoError(t, err)
		assert.Equal(t, 30, resp.AnnualLeaveDays)
	})

	t.Run("Empty Patch", func(t *testing.T) {
		_, err := service.Update(ctx, uuid.New().String(), actorID, company.UpdateCompanyRequest{})

		assert.ErrorIs(t, err, companyerrors.ErrMissingRequiredFields)
	})

	t.Run("Repository Failure", func(t *testing.T) {
		id := uuid.New()
		name := "Acme SAS"

		mockAuth.EXPECT().
			RequirePermission(ctx, id.String(), actorID, rbac.ResourceMembership, rbac.ActionManage).
			Return(&membership.Membership{}, nil)
		mockRepo.EXPECT().GetByID(ctx, id.String()).Return(&company.Company{ID: id}, nil)
		mockRepo.EXPECT().Update(ctx, gomock.Any()).Return(errors.New("db down"))

		_, err := service.Update(ctx, id.String(), actorID, company.UpdateCompanyRequest{Name: &name})

		assert.Error(t, err)
	})
}
