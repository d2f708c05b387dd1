package leavebalance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-leave/internal/company"
	companyerrors "go-leave/internal/company/errors"
	"go-leave/internal/events"
	leavebalanceerrors "go-leave/internal/leavebalance/errors"
	"go-leave/internal/membership"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/rbac"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/shared/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_balance_service.go -destination=mock/leave_balance_service_mock.go -package=mock
type Service interface {
	GetBalances(ctx context.Context, companyID, membershipID, actorID string) ([]BalanceResponse, error)
	GetHistory(ctx context.Context, companyID, membershipID, actorID string) ([]HistoryResponse, error)
	UpdateLeaveBalances(ctx context.Context, companyID, membershipID, actorID string, req UpdateBalanceRequest) (BalanceResponse, error)
	AllocateAnnualLeave(ctx context.Context, companyID, actorID string, req AllocateAnnualLeaveRequest) (AllocationResponse, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	ledger     Ledger
	authorizer membership.Authorizer
	companies  company.Repository
	outbox     kafka.OutboxRepository
	metrics    *metrics.Metrics
	maxChange  decimal.Decimal
	now        func() time.Time
	logger     *zap.Logger
}

type ServiceDeps struct {
	DB         *gorm.DB
	Repo       Repository
	Ledger     Ledger
	Authorizer membership.Authorizer
	Companies  company.Repository
	Outbox     kafka.OutboxRepository
	Metrics    *metrics.Metrics
	MaxChange  float64
	Now        func() time.Time
}

func NewService(deps ServiceDeps, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		db:         deps.DB,
		repo:       deps.Repo,
		ledger:     deps.Ledger,
		authorizer: deps.Authorizer,
		companies:  deps.Companies,
		outbox:     deps.Outbox,
		metrics:    deps.Metrics,
		maxChange:  decimal.NewFromFloat(deps.MaxChange),
		now:        now,
		logger:     l,
	}
}

func (s *service) GetBalances(ctx context.Context, companyID, membershipID, actorID string) ([]BalanceResponse, error) {
	target, err := s.authorizer.RequireOwnerOr(ctx, companyID, membershipID, actorID, rbac.ResourceBalance, rbac.ActionReadAll)
	if err != nil {
		return nil, err
	}

	balances, err := s.repo.FindByMembership(ctx, target.ID.String())
	if err != nil {
		s.logger.Error("load balances failed", zap.String("membership_id", membershipID), zap.Error(err))
		return nil, err
	}

	year := s.now().UTC().Year()
	taken, err := s.repo.SumTakenSince(ctx, target.ID.String(), startOfYear(year))
	if err != nil {
		s.logger.Error("load taken days failed", zap.String("membership_id", membershipID), zap.Error(err))
		return nil, err
	}

	resp := make([]BalanceResponse, 0, len(balances))
	for _, b := range balances {
		resp = append(resp, mapToBalanceResponse(b, taken[b.LeaveType], year))
	}
	return resp, nil
}

func (s *service) GetHistory(ctx context.Context, companyID, membershipID, actorID string) ([]HistoryResponse, error) {
	target, err := s.authorizer.RequireOwnerOr(ctx, companyID, membershipID, actorID, rbac.ResourceBalance, rbac.ActionReadAll)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.FindHistoryByMembership(ctx, target.ID.String())
	if err != nil {
		s.logger.Error("load balance history failed", zap.String("membership_id", membershipID), zap.Error(err))
		return nil, err
	}

	resp := make([]HistoryResponse, 0, len(history))
	for _, h := range history {
		resp = append(resp, mapToHistoryResponse(h))
	}
	return resp, nil
}

func (s *service) UpdateLeaveBalances(ctx context.Context, companyID, membershipID, actorID string, req UpdateBalanceRequest) (BalanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update leave balance requested",
		zap.String("company_id", companyID),
		zap.String("membership_id", membershipID),
		zap.String("leave_type", req.Type),
		zap.String("change", req.Change.String()),
	)

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return BalanceResponse{}, leavebalanceerrors.ErrReasonRequired
	}
	if !IsValidLeaveType(req.Type) {
		return BalanceResponse{}, leavebalanceerrors.ErrInvalidLeaveType
	}
	if err := ValidateChange(req.Change, s.maxChange); err != nil {
		log.Warn("update leave balance validation failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	target, err := s.authorizer.RequirePermissionOn(ctx, companyID, membershipID, actorID, rbac.ResourceBalance, rbac.ActionAdjust)
	if err != nil {
		return BalanceResponse{}, err
	}

	// The authorizer has already rejected malformed actor ids.
	actorUUID, _ := uuid.Parse(actorID)

	historyType := HistoryManualCredit
	if req.Change.IsNegative() {
		historyType = HistoryManualDebit
	}
	entry := Entry{
		MembershipID: target.ID,
		LeaveType:    req.Type,
		Change:       req.Change,
		Reason:       reason,
		HistoryType:  historyType,
		ActorID:      actorUUID,
	}

	var res *Result
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = s.ledger.WithTx(tx).Apply(ctx, entry)
		if err != nil {
			return err
		}
		return s.enqueueBalanceChanged(ctx, tx, companyID, res)
	})
	if err != nil {
		log.Error("update leave balance failed",
			zap.String("membership_id", membershipID),
			zap.Error(err),
		)
		return BalanceResponse{}, err
	}
	s.metrics.ObserveBalanceChange(historyType)

	year := s.now().UTC().Year()
	taken, err := s.repo.SumTakenSince(ctx, target.ID.String(), startOfYear(year))
	if err != nil {
		return BalanceResponse{}, err
	}

	log.Info("update leave balance success",
		zap.String("membership_id", membershipID),
		zap.String("leave_type", req.Type),
		zap.String("history_type", historyType),
		zap.String("new_balance", res.Balance.RemainingDays.String()),
	)
	return mapToBalanceResponse(res.Balance, taken[req.Type], year), nil
}

// AllocateAnnualLeave credits every membership's PAID balance with the
// company allotment in a single transaction.
func (s *service) AllocateAnnualLeave(ctx context.Context, companyID, actorID string, req AllocateAnnualLeaveRequest) (AllocationResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	actor, err := s.authorizer.RequirePermission(ctx, companyID, actorID, rbac.ResourceBalance, rbac.ActionAdjust)
	if err != nil {
		return AllocationResponse{}, err
	}

	comp, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AllocationResponse{}, companyerrors.ErrCompanyNotFound
		}
		return AllocationResponse{}, err
	}
	if comp.AnnualLeaveDays <= 0 {
		return AllocationResponse{}, leavebalanceerrors.ErrNoAnnualAllotment
	}

	ids, err := s.repo.ListMembershipIDs(ctx, companyID)
	if err != nil {
		return AllocationResponse{}, err
	}
	if len(ids) == 0 {
		return AllocationResponse{}, leavebalanceerrors.ErrNoMemberships
	}

	days := decimal.NewFromInt(int64(comp.AnnualLeaveDays))
	reason := fmt.Sprintf("Annual allocation %d", req.Year)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ledger := s.ledger.WithTx(tx)
		for _, id := range ids {
			res, err := ledger.Apply(ctx, Entry{
				MembershipID: id,
				LeaveType:    TypePaid,
				Change:       days,
				Reason:       reason,
				HistoryType:  HistoryAnnualAllocation,
				ActorID:      actor.UserID,
			})
			if err != nil {
				return err
			}
			if err := s.enqueueBalanceChanged(ctx, tx, companyID, res); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("annual allocation failed",
			zap.String("company_id", companyID),
			zap.Int("year", req.Year),
			zap.Error(err),
		)
		return AllocationResponse{}, err
	}

	for range ids {
		s.metrics.ObserveBalanceChange(HistoryAnnualAllocation)
	}
	log.Info("annual allocation success",
		zap.String("company_id", companyID),
		zap.Int("year", req.Year),
		zap.Int("memberships", len(ids)),
		zap.Int("days", comp.AnnualLeaveDays),
	)

	return AllocationResponse{
		Year:          req.Year,
		LeaveType:     TypePaid,
		DaysPerMember: days.InexactFloat64(),
		Memberships:   len(ids),
	}, nil
}

func (s *service) enqueueBalanceChanged(ctx context.Context, tx *gorm.DB, companyID string, res *Result) error {
	if s.outbox == nil {
		return nil
	}

	event := events.LeaveBalanceChangedEvent{
		EventType:    events.LeaveBalanceChangedType,
		RequestID:    contextutil.GetRequestID(ctx),
		CompanyID:    companyID,
		MembershipID: res.History.MembershipID.String(),
		LeaveType:    res.History.LeaveType,
		HistoryType:  res.History.HistoryType,
		Change:       res.History.Change.String(),
		NewBalance:   res.History.NewBalance.String(),
		ActorID:      res.History.ActorID.String(),
		OccurredAt:   s.now().UTC(),
	}
	outboxEvent, err := kafka.NewOutboxEvent(ctx, "leave_balance", res.Balance.ID.String(), event.EventType, events.LeaveBalanceChangedTopic, event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, outboxEvent)
}

func startOfYear(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func mapToBalanceResponse(b LeaveBalance, taken decimal.Decimal, year int) BalanceResponse {
	return BalanceResponse{
		ID:           b.ID.String(),
		MembershipID: b.MembershipID.String(),
		LeaveType:    b.LeaveType,
		Balance:      b.RemainingDays.Add(taken).InexactFloat64(),
		Used:         taken.InexactFloat64(),
		Remaining:    b.RemainingDays.InexactFloat64(),
		Year:         year,
	}
}

func mapToHistoryResponse(h LeaveBalanceHistory) HistoryResponse {
	resp := HistoryResponse{
		ID:              h.ID.String(),
		MembershipID:    h.MembershipID.String(),
		LeaveType:       h.LeaveType,
		PreviousBalance: h.PreviousBalance.InexactFloat64(),
		NewBalance:      h.NewBalance.InexactFloat64(),
		ChangeAmount:    h.Change.InexactFloat64(),
		Reason:          h.Reason,
		HistoryType:     h.HistoryType,
		CreatedAt:       h.CreatedAt.UTC().Format(time.RFC3339),
		CreatedBy:       h.ActorID.String(),
	}
	if h.LeaveID != nil {
		id := h.LeaveID.String()
		resp.LeaveID = &id
	}
	return resp
}
