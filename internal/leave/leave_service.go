package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-leave/internal/events"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/leavebalance"
	"go-leave/internal/membership"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/rbac"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/shared/dberr"
	"go-leave/internal/shared/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	GetLeavesForMembership(ctx context.Context, companyID, membershipID, actorID string) ([]LeaveResponse, error)
	GetLeave(ctx context.Context, companyID, membershipID, leaveID, actorID string) (LeaveResponse, error)
	CreateLeave(ctx context.Context, companyID, membershipID, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	UpdateLeave(ctx context.Context, companyID, membershipID, leaveID, actorID string, req UpdateLeaveRequest) (LeaveResponse, error)
	DeleteLeave(ctx context.Context, companyID, membershipID, leaveID, actorID string) error
	ReviewLeave(ctx context.Context, companyID, leaveID, actorID string, req ReviewLeaveRequest) (LeaveResponse, error)
	GetCompanyLeaves(ctx context.Context, companyID, actorID string, filter CompanyLeavesFilter) ([]LeaveResponse, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	ledger     leavebalance.Ledger
	authorizer membership.Authorizer
	outbox     kafka.OutboxRepository
	metrics    *metrics.Metrics
	now        func() time.Time
	logger     *zap.Logger
}

type ServiceDeps struct {
	DB         *gorm.DB
	Repo       Repository
	Ledger     leavebalance.Ledger
	Authorizer membership.Authorizer
	Outbox     kafka.OutboxRepository
	Metrics    *metrics.Metrics
	Now        func() time.Time
}

func NewService(deps ServiceDeps, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
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
		outbox:     deps.Outbox,
		metrics:    deps.Metrics,
		now:        now,
		logger:     l,
	}
}

func (s *service) GetLeavesForMembership(ctx context.Context, companyID, membershipID, actorID string) ([]LeaveResponse, error) {
	target, err := s.authorizer.RequireOwnerOr(ctx, companyID, membershipID, actorID, rbac.ResourceLeave, rbac.ActionReadAll)
	if err != nil {
		return nil, err
	}

	leaves, err := s.repo.FindByMembership(ctx, companyID, target.ID.String())
	if err != nil {
		s.logger.Error("list membership leaves failed", zap.String("membership_id", membershipID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetLeave(ctx context.Context, companyID, membershipID, leaveID, actorID string) (LeaveResponse, error) {
	target, err := s.authorizer.RequireOwnerOr(ctx, companyID, membershipID, actorID, rbac.ResourceLeave, rbac.ActionReadAll)
	if err != nil {
		return LeaveResponse{}, err
	}

	l, err := findLeave(ctx, s.repo, companyID, target.ID.String(), leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) CreateLeave(ctx context.Context, companyID, membershipID, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create leave requested",
		zap.String("company_id", companyID),
		zap.String("membership_id", membershipID),
		zap.String("type", req.Type),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	valid, err := ValidateLeaveInput(LeaveInput{
		Type:          req.Type,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		HalfDayPeriod: req.HalfDayPeriod,
		Reason:        req.Reason,
	})
	if err != nil {
		log.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	owner, err := s.authorizer.RequireOwner(ctx, companyID, membershipID, actorID)
	if err != nil {
		return LeaveResponse{}, err
	}

	l := &Leave{
		ID:            uuid.New(),
		CompanyID:     owner.CompanyID,
		MembershipID:  owner.ID,
		Type:          valid.Type,
		StartDate:     valid.StartDate,
		EndDate:       valid.EndDate,
		HalfDayPeriod: valid.HalfDayPeriod,
		TotalDays:     valid.TotalDays,
		Reason:        valid.Reason,
		Status:        StatusPending,
		CreatedBy:     owner.UserID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		if err := ensureNoOverlap(ctx, qtx, owner.ID.String(), valid, nil); err != nil {
			return err
		}
		if err := qtx.Create(ctx, l); err != nil {
			if isOverlapViolation(err) {
				return leaveerrors.ErrLeaveOverlap
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, leaveerrors.ErrLeaveOverlap) {
			log.Warn("create leave overlap detected",
				zap.String("membership_id", membershipID),
				zap.String("start_date", req.StartDate),
				zap.String("end_date", req.EndDate),
			)
		} else {
			log.Error("create leave persist failed", zap.Error(err))
		}
		return LeaveResponse{}, err
	}

	log.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("membership_id", membershipID),
		zap.String("days", l.TotalDays.String()),
	)
	return mapToResponse(*l), nil
}

func (s *service) UpdateLeave(ctx context.Context, companyID, membershipID, leaveID, actorID string, req UpdateLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update leave requested",
		zap.String("company_id", companyID),
		zap.String("membership_id", membershipID),
		zap.String("leave_id", leaveID),
	)

	if req.Type == nil && req.StartDate == nil && req.EndDate == nil && req.HalfDayPeriod == nil && req.Reason == nil {
		return LeaveResponse{}, leaveerrors.ErrMissingRequiredFields
	}

	owner, err := s.authorizer.RequireOwner(ctx, companyID, membershipID, actorID)
	if err != nil {
		return LeaveResponse{}, err
	}

	var updated *Leave
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		l, err := findLeave(ctx, qtx, companyID, owner.ID.String(), leaveID)
		if err != nil {
			return err
		}
		if l.Status != StatusPending {
			return leaveerrors.ErrLeaveNotPending
		}

		valid, err := ValidateLeaveInput(mergePatch(*l, req))
		if err != nil {
			return err
		}
		if err := ensureNoOverlap(ctx, qtx, owner.ID.String(), valid, &leaveID); err != nil {
			return err
		}

		l.Type = valid.Type
		l.StartDate = valid.StartDate
		l.EndDate = valid.EndDate
		l.HalfDayPeriod = valid.HalfDayPeriod
		l.TotalDays = valid.TotalDays
		l.Reason = valid.Reason

		rows, err := qtx.UpdatePending(ctx, l)
		if err != nil {
			if isOverlapViolation(err) {
				return leaveerrors.ErrLeaveOverlap
			}
			return err
		}
		if rows == 0 {
			return leaveerrors.ErrLeaveNotPending
		}
		l.UpdatedAt = s.now().UTC()
		updated = l
		return nil
	})
	if err != nil {
		log.Warn("update leave failed", zap.String("leave_id", leaveID), zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("update leave success", zap.String("leave_id", leaveID))
	return mapToResponse(*updated), nil
}

func (s *service) DeleteLeave(ctx context.Context, companyID, membershipID, leaveID, actorID string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	owner, err := s.authorizer.RequireOwner(ctx, companyID, membershipID, actorID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		l, err := findLeave(ctx, qtx, companyID, owner.ID.String(), leaveID)
		if err != nil {
			return err
		}
		if l.Status != StatusPending {
			return leaveerrors.ErrLeaveNotPending
		}

		rows, err := qtx.DeletePending(ctx, companyID, owner.ID.String(), leaveID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return leaveerrors.ErrLeaveNotPending
		}
		return nil
	})
	if err != nil {
		log.Warn("delete leave failed", zap.String("leave_id", leaveID), zap.Error(err))
		return err
	}

	log.Info("delete leave success", zap.String("leave_id", leaveID))
	return nil
}

// ReviewLeave moves a PENDING leave to APPROVED or REJECTED. Approval debits
// the leave's days from the membership's balance in the same transaction.
func (s *service) ReviewLeave(ctx context.Context, companyID, leaveID, actorID string, req ReviewLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("review leave requested",
		zap.String("company_id", companyID),
		zap.String("leave_id", leaveID),
		zap.String("status", req.Status),
	)

	if req.Status != StatusApproved && req.Status != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidReviewStatus
	}

	manager, err := s.authorizer.RequirePermission(ctx, companyID, actorID, rbac.ResourceLeave, rbac.ActionReview)
	if err != nil {
		return LeaveResponse{}, err
	}

	var reviewed *Leave
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		l, err := qtx.FindByID(ctx, companyID, leaveID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveNotFound
			}
			return err
		}
		if l.Status != StatusPending {
			return leaveerrors.ErrLeaveNotPending
		}

		reviewedAt := s.now().UTC()
		rows, err := qtx.Review(ctx, companyID, leaveID, req.Status, manager.UserID, req.ManagerNote, reviewedAt)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Another review committed first.
			return leaveerrors.ErrLeaveNotPending
		}

		l.Status = req.Status
		l.ManagerID = &manager.UserID
		l.ManagerNote = req.ManagerNote
		l.ReviewedAt = &reviewedAt

		if l.Status == StatusApproved {
			if _, err := s.ledger.WithTx(tx).Apply(ctx, leavebalance.Entry{
				MembershipID: l.MembershipID,
				LeaveType:    l.Type,
				Change:       l.TotalDays.Neg(),
				Reason:       fmt.Sprintf("Leave taken %s to %s", formatDate(l.StartDate), formatDate(l.EndDate)),
				HistoryType:  leavebalance.HistoryLeaveTaken,
				ActorID:      manager.UserID,
				LeaveID:      &l.ID,
			}); err != nil {
				return err
			}
		}

		if err := s.enqueueReviewed(ctx, tx, l); err != nil {
			return err
		}
		reviewed = l
		return nil
	})
	if err != nil {
		if errors.Is(err, leaveerrors.ErrLeaveNotFound) || errors.Is(err, leaveerrors.ErrLeaveNotPending) {
			log.Warn("review leave rejected", zap.String("leave_id", leaveID), zap.Error(err))
		} else {
			log.Error("review leave failed", zap.String("leave_id", leaveID), zap.Error(err))
		}
		return LeaveResponse{}, err
	}

	s.metrics.ObserveReview(reviewed.Status)
	log.Info("review leave success",
		zap.String("leave_id", leaveID),
		zap.String("status", reviewed.Status),
		zap.String("days", reviewed.TotalDays.String()),
	)
	return mapToResponse(*reviewed), nil
}

func (s *service) GetCompanyLeaves(ctx context.Context, companyID, actorID string, filter CompanyLeavesFilter) ([]LeaveResponse, error) {
	if _, err := s.authorizer.RequirePermission(ctx, companyID, actorID, rbac.ResourceLeave, rbac.ActionReadAll); err != nil {
		return nil, err
	}

	listFilter, err := parseFilter(filter)
	if err != nil {
		return nil, err
	}

	leaves, err := s.repo.FindByCompany(ctx, companyID, listFilter)
	if err != nil {
		s.logger.Error("list company leaves failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) enqueueReviewed(ctx context.Context, tx *gorm.DB, l *Leave) error {
	if s.outbox == nil {
		return nil
	}

	event := events.LeaveReviewedEvent{
		EventType:    events.LeaveReviewedType,
		RequestID:    contextutil.GetRequestID(ctx),
		LeaveID:      l.ID.String(),
		CompanyID:    l.CompanyID.String(),
		MembershipID: l.MembershipID.String(),
		LeaveType:    l.Type,
		Status:       l.Status,
		StartDate:    formatDate(l.StartDate),
		EndDate:      formatDate(l.EndDate),
		TotalDays:    l.TotalDays.String(),
		ReviewedBy:   l.ManagerID.String(),
		OccurredAt:   *l.ReviewedAt,
	}
	outboxEvent, err := kafka.NewOutboxEvent(ctx, "leave", l.ID.String(), event.EventType, events.LeaveReviewedTopic, event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, outboxEvent)
}

func findLeave(ctx context.Context, repo Repository, companyID, membershipID, leaveID string) (*Leave, error) {
	if _, err := uuid.Parse(leaveID); err != nil {
		return nil, leaveerrors.ErrLeaveNotFound
	}
	l, err := repo.FindByMembershipAndID(ctx, companyID, membershipID, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	return l, nil
}

func ensureNoOverlap(ctx context.Context, repo Repository, membershipID string, valid ValidLeave, excludeID *string) error {
	overlap, err := repo.HasOverlappingPeriod(ctx, membershipID, valid.StartDate, valid.EndDate, excludeID)
	if err != nil {
		return err
	}
	if overlap {
		return leaveerrors.ErrLeaveOverlap
	}
	return nil
}

func mergePatch(l Leave, req UpdateLeaveRequest) LeaveInput {
	in := LeaveInput{
		Type:      l.Type,
		StartDate: formatDate(l.StartDate),
		EndDate:   formatDate(l.EndDate),
		Reason:    l.Reason,
	}
	if l.HalfDayPeriod != nil {
		in.HalfDayPeriod = *l.HalfDayPeriod
	}

	if req.Type != nil {
		in.Type = *req.Type
	}
	if req.StartDate != nil {
		in.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		in.EndDate = *req.EndDate
	}
	if req.HalfDayPeriod != nil {
		in.HalfDayPeriod = *req.HalfDayPeriod
	}
	if req.Reason != nil {
		in.Reason = *req.Reason
	}
	return in
}

func parseFilter(f CompanyLeavesFilter) (ListFilter, error) {
	var out ListFilter
	switch f.Status {
	case "", StatusPending, StatusApproved, StatusRejected:
		out.Status = f.Status
	default:
		return ListFilter{}, leaveerrors.ErrInvalidStatusFilter
	}
	if f.From != "" {
		from, err := parseDate(f.From)
		if err != nil {
			return ListFilter{}, err
		}
		out.From = &from
	}
	if f.To != "" {
		to, err := parseDate(f.To)
		if err != nil {
			return ListFilter{}, err
		}
		out.To = &to
	}
	if out.From != nil && out.To != nil && out.From.After(*out.To) {
		return ListFilter{}, leaveerrors.ErrInvalidDateRange
	}
	return out, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:            l.ID.String(),
		CompanyID:     l.CompanyID.String(),
		MembershipID:  l.MembershipID.String(),
		Type:          l.Type,
		StartDate:     formatDate(l.StartDate),
		EndDate:       formatDate(l.EndDate),
		HalfDayPeriod: l.HalfDayPeriod,
		Days:          l.TotalDays.InexactFloat64(),
		Status:        l.Status,
		Reason:        l.Reason,
		ManagerNote:   l.ManagerNote,
		CreatedBy:     l.CreatedBy.String(),
		CreatedAt:     l.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     l.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if l.ManagerID != nil {
		v := l.ManagerID.String()
		resp.ManagerID = &v
	}
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.UTC().Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}

func isOverlapViolation(err error) bool {
	return dberr.IsExclusionViolation(err) && dberr.ConstraintName(err) == OverlapConstraint
}
