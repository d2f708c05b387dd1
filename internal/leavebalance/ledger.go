package leavebalance

import (
	"context"

	leavebalanceerrors "go-leave/internal/leavebalance/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var two = decimal.NewFromInt(2)

// Entry is one signed change to a balance.
type Entry struct {
	MembershipID uuid.UUID
	LeaveType    string
	Change       decimal.Decimal
	Reason       string
	HistoryType  string
	ActorID      uuid.UUID
	LeaveID      *uuid.UUID
}

type Result struct {
	Balance LeaveBalance
	History LeaveBalanceHistory
}

// Ledger is the only writer of leave balances. Every Apply moves the
// balance and appends the matching history row in one transaction, so the
// sum of a balance's history always equals its remaining days.
//
//go:generate mockgen -source=ledger.go -destination=mock/ledger_mock.go -package=mock
type Ledger interface {
	// WithTx binds the ledger to a transaction owned by the caller.
	WithTx(tx *gorm.DB) Ledger
	Apply(ctx context.Context, entry Entry) (*Result, error)
}

type ledger struct {
	db        *gorm.DB
	repo      Repository
	maxChange decimal.Decimal
	inTx      bool
	logger    *zap.Logger
}

func NewLedger(db *gorm.DB, repo Repository, maxChange float64, logger ...*zap.Logger) Ledger {
	l := zap.L().Named("leavebalance.ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.ledger")
	}
	return &ledger{
		db:        db,
		repo:      repo,
		maxChange: decimal.NewFromFloat(maxChange),
		logger:    l,
	}
}

func (l *ledger) WithTx(tx *gorm.DB) Ledger {
	return &ledger{
		db:        tx,
		repo:      l.repo.WithTx(tx),
		maxChange: l.maxChange,
		inTx:      true,
		logger:    l.logger,
	}
}

// ValidateChange enforces the shape every ledger change must have.
func ValidateChange(change, maxChange decimal.Decimal) error {
	if change.IsZero() {
		return leavebalanceerrors.ErrZeroChange
	}
	if !change.Mul(two).IsInteger() {
		return leavebalanceerrors.ErrInvalidChangeStep
	}
	if change.Abs().GreaterThan(maxChange) {
		return leavebalanceerrors.ErrChangeOutOfRange
	}
	return nil
}

func (l *ledger) Apply(ctx context.Context, entry Entry) (*Result, error) {
	if !IsValidLeaveType(entry.LeaveType) {
		return nil, leavebalanceerrors.ErrInvalidLeaveType
	}
	if !isValidHistoryType(entry.HistoryType) {
		return nil, leavebalanceerrors.ErrInvalidHistoryType
	}
	if err := ValidateChange(entry.Change, l.maxChange); err != nil {
		return nil, err
	}

	if l.inTx {
		return l.apply(ctx, l.repo, entry)
	}

	var res *Result
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = l.apply(ctx, l.repo.WithTx(tx), entry)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (l *ledger) apply(ctx context.Context, repo Repository, entry Entry) (*Result, error) {
	balance, err := repo.FindOrCreateForUpdate(ctx, entry.MembershipID, entry.LeaveType)
	if err != nil {
		l.logger.Error("lock balance failed",
			zap.String("membership_id", entry.MembershipID.String()),
			zap.String("leave_type", entry.LeaveType),
			zap.Error(err),
		)
		return nil, err
	}

	previous := balance.RemainingDays
	next := previous.Add(entry.Change)

	if err := repo.UpdateRemaining(ctx, balance.ID, next); err != nil {
		l.logger.Error("update balance failed", zap.String("balance_id", balance.ID.String()), zap.Error(err))
		return nil, err
	}

	history := LeaveBalanceHistory{
		ID:              uuid.New(),
		LeaveBalanceID:  balance.ID,
		MembershipID:    entry.MembershipID,
		LeaveType:       entry.LeaveType,
		Change:          entry.Change,
		PreviousBalance: previous,
		NewBalance:      next,
		Reason:          entry.Reason,
		HistoryType:     entry.HistoryType,
		ActorID:         entry.ActorID,
		LeaveID:         entry.LeaveID,
	}
	if err := repo.CreateHistory(ctx, &history); err != nil {
		l.logger.Error("append balance history failed", zap.String("balance_id", balance.ID.String()), zap.Error(err))
		return nil, err
	}

	balance.RemainingDays = next
	l.logger.Debug("ledger entry applied",
		zap.String("membership_id", entry.MembershipID.String()),
		zap.String("leave_type", entry.LeaveType),
		zap.String("history_type", entry.HistoryType),
		zap.String("change", entry.Change.String()),
		zap.String("new_balance", next.String()),
	)
	return &Result{Balance: *balance, History: history}, nil
}
