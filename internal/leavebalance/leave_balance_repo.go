package leavebalance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_balance_repo.go -destination=mock/leave_balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// FindOrCreateForUpdate returns the balance row locked for the rest of
	// the transaction, inserting a zero balance first if none exists.
	FindOrCreateForUpdate(ctx context.Context, membershipID uuid.UUID, leaveType string) (*LeaveBalance, error)
	UpdateRemaining(ctx context.Context, id uuid.UUID, remaining decimal.Decimal) error
	CreateHistory(ctx context.Context, h *LeaveBalanceHistory) error
	FindByMembership(ctx context.Context, membershipID string) ([]LeaveBalance, error)
	FindHistoryByMembership(ctx context.Context, membershipID string) ([]LeaveBalanceHistory, error)
	SumTakenSince(ctx context.Context, membershipID string, since time.Time) (map[string]decimal.Decimal, error)
	ListMembershipIDs(ctx context.Context, companyID string) ([]uuid.UUID, error)
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

func (r *repository) FindOrCreateForUpdate(ctx context.Context, membershipID uuid.UUID, leaveType string) (*LeaveBalance, error) {
	seed := LeaveBalance{
		ID:            uuid.New(),
		MembershipID:  membershipID,
		LeaveType:     leaveType,
		RemainingDays: decimal.Zero,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "membership_id"}, {Name: "leave_type"}},
			DoNothing: true,
		}).
		Create(&seed).Error
	if err != nil {
		return nil, err
	}

	var b LeaveBalance
	err = r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("membership_id = ? AND leave_type = ?", membershipID, leaveType).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) UpdateRemaining(ctx context.Context, id uuid.UUID, remaining decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"remaining_days": remaining,
			"updated_at":     gorm.Expr("NOW()"),
		}).Error
}

func (r *repository) CreateHistory(ctx context.Context, h *LeaveBalanceHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindByMembership(ctx context.Context, membershipID string) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Where("membership_id = ?", membershipID).
		Order("leave_type ASC").
		Find(&balances).Error
	return balances, err
}

func (r *repository) FindHistoryByMembership(ctx context.Context, membershipID string) ([]LeaveBalanceHistory, error) {
	var history []LeaveBalanceHistory
	err := r.db.WithContext(ctx).
		Where("membership_id = ?", membershipID).
		Order("created_at DESC, id DESC").
		Find(&history).Error
	return history, err
}

// SumTakenSince returns days debited by approved leaves per leave type.
func (r *repository) SumTakenSince(ctx context.Context, membershipID string, since time.Time) (map[string]decimal.Decimal, error) {
	var rows []struct {
		LeaveType string
		Taken     decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&LeaveBalanceHistory{}).
		Select("leave_type, COALESCE(SUM(-change), 0) AS taken").
		Where("membership_id = ? AND history_type = ? AND created_at >= ?", membershipID, HistoryLeaveTaken, since).
		Group("leave_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	taken := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		taken[row.LeaveType] = row.Taken
	}
	return taken, nil
}

func (r *repository) ListMembershipIDs(ctx context.Context, companyID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("memberships").
		Where("company_id = ?", companyID).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}
