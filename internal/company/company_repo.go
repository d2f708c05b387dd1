package company

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/company_repo_mock.go -package=mock . Repository
type Repository interface {
	GetByID(ctx context.Context, id string) (*Company, error)
	Update(ctx context.Context, company *Company) error
	WithTx(tx *gorm.DB) Repository
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *repository) Update(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).
		Model(company).
		Select("name", "logo", "annual_leave_days", "updated_at").
		Updates(company).Error
}
