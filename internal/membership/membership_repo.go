package membership

import (
	"context"
	"time"

	"go-leave/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=membership_repo.go -destination=mock/membership_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id string) (*Membership, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Membership, error)
	FindByCompanyAndUser(ctx context.Context, companyID, userID string) (*Membership, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]Membership, error)
	CountByRoleForUpdate(ctx context.Context, companyID, role string) (int64, error)
	UpdateRole(ctx context.Context, id, role string) error
	SetOnLeave(ctx context.Context, id string, onLeave bool) error
	Delete(ctx context.Context, companyID, id string) error
	HasApprovedLeaveOn(ctx context.Context, membershipID string, day time.Time) (bool, error)
	SyncOnLeave(ctx context.Context, day time.Time) (int64, error)
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

func (r *repository) FindByID(ctx context.Context, id string) (*Membership, error) {
	var m Membership
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Membership, error) {
	var m Membership
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) FindByCompanyAndUser(ctx context.Context, companyID, userID string) (*Membership, error) {
	var m Membership
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("user_id = ?", userID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Membership, error) {
	var memberships []Membership
	err := r.db.WithContext(ctx).
		Preload("User").
		Scopes(tenant.Scope(companyID)).
		Order("created_at ASC").
		Find(&memberships).Error
	return memberships, err
}

// CountByRoleForUpdate locks the company's members holding role until the
// surrounding transaction ends, so concurrent demotions serialize.
func (r *repository) CountByRoleForUpdate(ctx context.Context, companyID, role string) (int64, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&Membership{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		Where("role = ?", role).
		Pluck("id", &ids).Error
	return int64(len(ids)), err
}

func (r *repository) UpdateRole(ctx context.Context, id, role string) error {
	return r.db.WithContext(ctx).
		Model(&Membership{}).
		Where("id = ?", id).
		Update("role", role).Error
}

func (r *repository) SetOnLeave(ctx context.Context, id string, onLeave bool) error {
	return r.db.WithContext(ctx).
		Model(&Membership{}).
		Where("id = ?", id).
		Update("on_leave", onLeave).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Membership{}, "id = ?", id).Error
}

func (r *repository) HasApprovedLeaveOn(ctx context.Context, membershipID string, day time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("leaves").
		Where("membership_id = ?", membershipID).
		Where("status = ?", "APPROVED").
		Where("deleted_at IS NULL").
		Where("start_date <= ? AND end_date >= ?", day, day).
		Count(&count).Error
	return count > 0, err
}

// SyncOnLeave flips every on_leave flag that disagrees with the approved
// leaves covering day.
func (r *repository) SyncOnLeave(ctx context.Context, day time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
UPDATE memberships
SET on_leave = NOT on_leave, updated_at = NOW()
WHERE on_leave <> EXISTS (
	SELECT 1 FROM leaves l
	WHERE l.membership_id = memberships.id
		AND l.status = 'APPROVED'
		AND l.deleted_at IS NULL
		AND l.start_date <= ? AND l.end_date >= ?
)`, day, day)
	return res.RowsAffected, res.Error
}
