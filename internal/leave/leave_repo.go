package leave

import (
	"context"
	"time"

	"go-leave/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListFilter narrows a company-wide listing. From/To select leaves that
// overlap the range.
type ListFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, companyID, id string) (*Leave, error)
	FindByMembershipAndID(ctx context.Context, companyID, membershipID, id string) (*Leave, error)
	FindByMembership(ctx context.Context, companyID, membershipID string) ([]Leave, error)
	FindByCompany(ctx context.Context, companyID string, filter ListFilter) ([]Leave, error)
	HasOverlappingPeriod(ctx context.Context, membershipID string, startDate, endDate time.Time, excludeID *string) (bool, error)
	// The write methods below only touch PENDING rows and report how many
	// rows they changed.
	UpdatePending(ctx context.Context, l *Leave) (int64, error)
	DeletePending(ctx context.Context, companyID, membershipID, id string) (int64, error)
	Review(ctx context.Context, companyID, id, status string, managerID uuid.UUID, note *string, reviewedAt time.Time) (int64, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByMembershipAndID(ctx context.Context, companyID, membershipID, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("membership_id = ?", membershipID).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByMembership(ctx context.Context, companyID, membershipID string) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("membership_id = ?", membershipID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByCompany(ctx context.Context, companyID string, filter ListFilter) ([]Leave, error) {
	db := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		db = db.Where("end_date >= ?", *filter.From)
	}
	if filter.To != nil {
		db = db.Where("start_date <= ?", *filter.To)
	}

	var leaves []Leave
	err := db.Order("start_date ASC").Order("created_at ASC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, membershipID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("membership_id = ?", membershipID).
		Where("status <> ?", StatusRejected).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdatePending(ctx context.Context, l *Leave) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("id = ? AND company_id = ? AND status = ?", l.ID, l.CompanyID, StatusPending).
		Updates(map[string]interface{}{
			"type":            l.Type,
			"start_date":      l.StartDate,
			"end_date":        l.EndDate,
			"half_day_period": l.HalfDayPeriod,
			"total_days":      l.TotalDays,
			"reason":          l.Reason,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) DeletePending(ctx context.Context, companyID, membershipID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("membership_id = ? AND status = ?", membershipID, StatusPending).
		Delete(&Leave{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) Review(ctx context.Context, companyID, id, status string, managerID uuid.UUID, note *string, reviewedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Leave{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]interface{}{
			"status":       status,
			"manager_id":   managerID,
			"manager_note": note,
			"reviewed_at":  reviewedAt,
		})
	return res.RowsAffected, res.Error
}
