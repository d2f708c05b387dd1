package leave_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-leave/internal/events"
	"go-leave/internal/leave"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/leavebalance"
	leavebalanceMock "go-leave/internal/leavebalance/mock"
	"go-leave/internal/membership"
	membershiperrors "go-leave/internal/membership/errors"
	membershipMock "go-leave/internal/membership/mock"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/rbac"
	"go-leave/internal/shared/dbtest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	createFn                func(ctx context.Context, l *leave.Leave) error
	findByIDFn              func(ctx context.Context, companyID, id string) (*leave.Leave, error)
	findByMembershipAndIDFn func(ctx context.Context, companyID, membershipID, id string) (*leave.Leave, error)
	findByMembershipFn      func(ctx context.Context, companyID, membershipID string) ([]leave.Leave, error)
	findByCompanyFn         func(ctx context.Context, companyID string, filter leave.ListFilter) ([]leave.Leave, error)
	hasOverlappingPeriodFn  func(ctx context.Context, membershipID string, startDate, endDate time.Time, excludeID *string) (bool, error)
	updatePendingFn         func(ctx context.Context, l *leave.Leave) (int64, error)
	deletePendingFn         func(ctx context.Context, companyID, membershipID, id string) (int64, error)
	reviewFn                func(ctx context.Context, companyID, id, status string, managerID uuid.UUID, note *string, reviewedAt time.Time) (int64, error)
}

func (f *fakeLeaveRepository) WithTx(tx *gorm.DB) leave.Repository {
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, companyID, id string) (*leave.Leave, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindByMembershipAndID(ctx context.Context, companyID, membershipID, id string) (*leave.Leave, error) {
	if f.findByMembershipAndIDFn != nil {
		return f.findByMembershipAndIDFn(ctx, companyID, membershipID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindByMembership(ctx context.Context, companyID, membershipID string) ([]leave.Leave, error) {
	if f.findByMembershipFn != nil {
		return f.findByMembershipFn(ctx, companyID, membershipID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByCompany(ctx context.Context, companyID string, filter leave.ListFilter) ([]leave.Leave, error) {
	if f.findByCompanyFn != nil {
		return f.findByCompanyFn(ctx, companyID, filter)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, membershipID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, membershipID, startDate, endDate, excludeID)
	}
	return false, nil
}

func (f *fakeLeaveRepository) UpdatePending(ctx context.Context, l *leave.Leave) (int64, error) {
	if f.updatePendingFn != nil {
		return f.updatePendingFn(ctx, l)
	}
	return 1, nil
}

func (f *fakeLeaveRepository) DeletePending(ctx context.Context, companyID, membershipID, id string) (int64, error) {
	if f.deletePendingFn != nil {
		return f.deletePendingFn(ctx, companyID, membershipID, id)
	}
	return 1, nil
}

func (f *fakeLeaveRepository) Review(ctx context.Context, companyID, id, status string, managerID uuid.UUID, note *string, reviewedAt time.Time) (int64, error) {
	if f.reviewFn != nil {
		return f.reviewFn(ctx, companyID, id, status, managerID, note, reviewedAt)
	}
	return 1, nil
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error                 { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

type leaveServiceDeps struct {
	service    leave.Service
	repo       *fakeLeaveRepository
	ledger     *leavebalanceMock.MockLedger
	authorizer *membershipMock.MockAuthorizer
	outbox     *fakeOutbox
	sqlMock    sqlmock.Sqlmock
}

var reviewTime = time.Date(2024, time.March, 12, 8, 30, 0, 0, time.UTC)

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	ctrl := gomock.NewController(t)
	db, sqlDB, sqlMock := dbtest.New(t)
	t.Cleanup(func() { sqlDB.Close() })

	repo := &fakeLeaveRepository{}
	ledger := leavebalanceMock.NewMockLedger(ctrl)
	authorizer := membershipMock.NewMockAuthorizer(ctrl)
	outbox := &fakeOutbox{}

	svc := leave.NewService(leave.ServiceDeps{
		DB:         db,
		Repo:       repo,
		Ledger:     ledger,
		Authorizer: authorizer,
		Outbox:     outbox,
		Now:        func() time.Time { return reviewTime },
	})

	return &leaveServiceDeps{
		service:    svc,
		repo:       repo,
		ledger:     ledger,
		authorizer: authorizer,
		outbox:     outbox,
		sqlMock:    sqlMock,
	}
}

func newMember(companyID uuid.UUID, role string) *membership.Membership {
	return &membership.Membership{ID: uuid.New(), CompanyID: companyID, UserID: uuid.New(), Role: role}
}

func pendingLeave(owner *membership.Membership) *leave.Leave {
	return &leave.Leave{
		ID:           uuid.New(),
		CompanyID:    owner.CompanyID,
		MembershipID: owner.ID,
		Type:         leavebalance.TypePaid,
		StartDate:    time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, time.March, 17, 0, 0, 0, 0, time.UTC),
		TotalDays:    decimal.NewFromInt(3),
		Reason:       "Personal time",
		Status:       leave.StatusPending,
		CreatedBy:    owner.UserID,
	}
}

func TestLeaveService_CreateLeave(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("creates a pending leave", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		owner := newMember(companyID, rbac.RoleEmployee)

		deps.authorizer.EXPECT().
			RequireOwner(ctx, companyID.String(), owner.ID.String(), owner.UserID.String()).
			Return(owner, nil)
		dbtest.ExpectTx(deps.sqlMock, true)

		var stored *leave.Leave
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			stored = l
			return nil
		}

		resp, err := deps.service.CreateLeave(ctx, companyID.String(), owner.ID.String(), owner.UserID.String(), leave.CreateLeaveRequest{
			Type:      leavebalance.TypePaid,
			StartDate: "2024-03-15",
			EndDate:   "2024-03-17",
			Reason:    "Personal time",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, float64(3), resp.Days)
		assert.Equal(t, "2024-03-15", resp.StartDate)
		assert.Equal(t, owner.UserID.String(), resp.CreatedBy)
		if assert.NotNil(t, stored) {
			assert.Equal(t, owner.ID, stored.MembershipID)
			assert.Equal(t, companyID, stored.CompanyID)
		}
		assert.Empty(t, deps.outbox.created)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("half day spanning days is rejected before authorization", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.CreateLeave(ctx, companyID.String(), uuid.New().String(), uuid.New().String(), leave.CreateLeaveRequest{
			Type:          leavebalance.TypePaid,
			StartDate:     "2024-03-15",
			EndDate:       "2024-03-16",
			HalfDayPeriod: leave.HalfDayMorning,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrHalfDaySpansDays)
	})

	t.Run("someone else's membership is forbidden", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		targetID := uuid.New().String()
		actorID := uuid.New().String()

		deps.authorizer.EXPECT().
			RequireOwner(ctx, companyID.String(), targetID, actorID).
			Return(nil, membershiperrors.ErrNotMembershipOwner)

		_, err := deps.service.CreateLeave(ctx, companyID.String(), targetID, actorID, leave.CreateLeaveRequest{
			Type: leavebalance.TypePaid, StartDate: "2024-03-15", EndDate: "2024-03-17",
		})

		assert.ErrorIs(t, err, membershiperrors.ErrNotMembershipOwner)
	})

	t.Run("overlap is a conflict", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		owner := newMember(companyID, rbac.RoleEmployee)

		deps.authorizer.EXPECT().RequireOwner(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(owner, nil)
		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, membershipID string, start, end time.Time, excludeID *string) (bool, error) {
			assert.Equal(t, owner.ID.String(), membershipID)
			assert.Nil(t, excludeID)
			return true, nil
		}

		_, err := deps.service.CreateLeave(ctx, companyID.String(), owner.ID.String(), owner.UserID.String(), leave.CreateLeaveRequest{
			Type: leavebalance.TypePaid, StartDate: "2024-03-15", EndDate: "2024-03-17",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("exclusion constraint race is a conflict", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		owner := newMember(companyID, rbac.RoleEmployee)

		deps.authorizer.EXPECT().RequireOwner(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(owner, nil)
		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			return &pgconn.PgError{Code: "23P01", ConstraintName: "ex_leaves_membership_period"}
		}

		_, err := deps.service.CreateLeave(ctx, companyID.String(), owner.ID.String(), owner.UserID.String(), leave.CreateLeaveRequest{
			Type: leavebalance.TypeSick, StartDate: "2024-03-15", EndDate: "2024-03-15",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	})

	t.Run("other exclusion constraints are not reported as overlap", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		owner := newMember(companyID, rbac.RoleEmployee)

		deps.authorizer.EXPECT().RequireOwner(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(owner, nil)
		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			return &pgconn.PgError{Code: "23P01", ConstraintName: "ex_some_other_rule"}
		}

		_, err := deps.service.CreateLeave(ctx, companyID.String(), owner.ID.String(), owner.UserID.String(), leave.CreateLeaveRequest{
			Type: leavebalance.TypeSick, StartDate: "2024-03-15", EndDate: "2024-03-15",
		})

		assert.Error(t, err)
		assert.NotErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	})
}

func TestLeaveService_GetLeavesForMembership(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("owner sees leaves", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		owner := newMember(companyID, rbac.RoleEmployee)
		newer := pendingLeave(owner)
		older := pendingLeave(owner)
		older.StartDate = older.StartDate.AddDate(0, -1, 0)

		deps.authorizer.EXPECT().
			RequireOwnerOr(ctx, companyID.String(), owner.ID.String(), owner.UserID.String(), rbac.ResourceLeave, rbac.ActionReadAll).
			Return(owner, nil)
		deps.repo.findByMembershipFn = func(ctx context.Context, cid, mid string) ([]leave.Leave, error) {
			assert.Equal(t, owner.ID.String(), mid)
			return []leave.Leave{*newer, *older}, nil
		}

		resp, err := deps.service.GetLeavesForMembership(ctx, companyID.String(), owner.ID.String(), owner.UserID.String())

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, newer.ID.String(), resp[0].ID)
	})

	t.Run("other employee is forbidden", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		targetID := uuid.New().String()
		actorID := uuid.New().String()

		deps.authorizer.EXPECT().
			RequireOwnerOr(ctx, companyID.String(), targetID, actorID, rbac.ResourceLeave, rbac.ActionReadAll).
			Return(nil, membershiperrors.ErrInsufficientRole)

		_, err := deps.service.GetLeavesForMembership(ctx, companyID.String(), targetID, actorID)

		assert.ErrorIs(t, err, membershiperrors.ErrInsufficientRole)
	})
}

func TestLeaveService_GetLeave(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	deps := setupLeaveServiceTest(t)
	owner := newMember(companyID, rbac.RoleEmployee)

	deps.authorizer.EXPECT().RequireOwnerOr(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(owner, nil).Times(2)

	_, err := deps.service.GetLeave(ctx, companyID.String(), owner.ID.String(), "not-a-uuid", owner.UserID.String())
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)

	_, err = deps.service.GetLeave(ctx, companyID.String(), owner.ID.String(), uuid.New().String(), owner.UserID.String())
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
}

func TestLeaveService_UpdateLeave(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("merges the patch and recomputes days", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		owner := newMember(companyID, rbac.RoleEmployee)
		existing := pendingLeave(owner)

		deps.authorizer.EXPECT().RequireOwner(ctx, companyID.String(), owner.ID.String(), owner.UserID.String()).Return(owner, nil)
		dbtest.ExpectTx(deps.sqlMock, true)
		deps.repo.findByMembershipAndIDFn = func(ctx context.Context, cid, mid, id string) (*leave.Leave, error) {
			cp := *existing
			return &cp, nil
		}
		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, mid string, start, end time.Time, excludeID *string) (bool, error) {
			if assert.NotNil(t, excludeID) {
				assert.Equal(t, existing.ID.String(), *excludeID)
			}
			return false, nil
		}
		var written *leave.Leave
		deps.repo.updatePendingFn = func(ctx context.Context, l *leave.Leave) (int64, error) {
			written = l
			return 1, nil
		}

		end := "2024-03-15"
		period := leave.HalfDayAfternoon
		resp, err := deps.service.UpdateLeave(ctx, companyID.String(), owner.ID.String(), existing.ID.String(), owner.UserID.String(), leave.UpdateLeaveRequest{
			EndDate:       &end,
			HalfDayPeriod: &period,
		})

		assert.NoError(t, err)
		assert.Equal(t, 0.5, resp.Days)
		assert.Equal(t, "Personal time", resp.Reason)
		if assert.NotNil(t, written) {
			assert.True(t, decimal.NewFromFloat(0.5).Equal(written.TotalDays))
			assert.Equal(t, leave.HalfDayAfternoon, *written.HalfDayPeriod)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("empty patch", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.UpdateLeave(ctx, companyID.String(), uuid.New().String(), uuid.New().String(), uuid.New().String(), leave.UpdateLeaveRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrMissingRequiredFields)
	})

	t.Run("merged leave must still be valid", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		owner := newMember(companyID, rbac.RoleEmployee)
		existing := pendingLeave(owner)

		deps.authorizer.EXPECT().RequireOwner(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(owner, nil)
		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.findByMembershipAndIDFn = func(ctx context.Context, cid, mid, id string) (*leave.Leave, error) {
			cp := *existing
			return &cp, nil
		}

		period := leave.HalfDayMorning
		_, err := deps.service.UpdateLeave(ctx, companyID.String(), owner.ID.String(), existing.ID.String(), owner.UserID.String(), leave.UpdateLeaveRequest{
			HalfDayPeriod: &period,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrHalfDaySpansDays)
	})

	t.Run("reviewed leave is a conflict", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		owner := newMember(companyID, rbac.RoleEmployee)
		existing := pendingLeave(owner)
		existing.Status = leave.StatusApproved

		deps.authorizer.EXPECT().RequireOwner(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(owner, nil)
		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.findByMembershipAndIDFn = func(ctx context.Context, cid, mid, id string) (*leave.Leave, error) {
			return existing, nil
		}

		reason := "changed my mind"
		_, err := deps.service.UpdateLeave(ctx, companyID.String(), owner.ID.String(), existing.ID.String(), owner.UserID.String(), leave.UpdateLeaveRequest{Reason: &reason})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotPending)
	})

	t.Run("reviewed between read and write is a conflict", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		owner := newMember(companyID, rbac.RoleEmployee)
		existing := pendingLeave(owner)

		deps.authorizer.EXPECT().RequireOwner(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(owner, nil)
		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.findByMembershipAndIDFn = func(ctx context.Context, cid, mid, id string) (*leave.Leave, error) {
			cp := *existing
			return &cp, nil
		}
		deps.repo.updatePendingFn = func(ctx context.Context, l *leave.Leave) (int64, error) {
			return 0, nil
		}

		reason := "family"
		_, err := deps.service.UpdateLeave(ctx, companyID.String(), owner.ID.String(), existing.ID.String(), owner.UserID.String(), leave.UpdateLeaveRequest{Reason: &reason})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotPending)
	})
}

func TestLeaveService_DeleteLeave(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("deletes a pending leave", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		owner := newMember(companyID, rbac.RoleEmployee)
		existing := pendingLeave(owner)

		deps.authorizer.EXPECT().RequireOwner(ctx, companyID.String(), owner.ID.String(), owner.UserID.String()).Return(owner, nil)
		dbtest.ExpectTx(deps.sqlMock, true)
		deps.repo.findByMembershipAndIDFn = func(ctx context.Context, cid, mid, id string) (*leave.Leave, error) {
			return existing, nil
		}

		err := deps.service.DeleteLeave(ctx, companyID.String(), owner.ID.String(), existing.ID.String(), owner.UserID.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		owner := newMember(companyID, rbac.RoleEmployee)

		deps.authorizer.EXPECT().RequireOwner(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(owner, nil)
		dbtest.ExpectTx(deps.sqlMock, false)

		err := deps.service.DeleteLeave(ctx, companyID.String(), owner.ID.String(), uuid.New().String(), owner.UserID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("approved leave cannot be deleted", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		owner := newMember(companyID, rbac.RoleEmployee)
		existing := pendingLeave(owner)
		existing.Status = leave.StatusApproved

		deps.authorizer.EXPECT().RequireOwner(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(owner, nil)
		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.findByMembershipAndIDFn = func(ctx context.Context, cid, mid, id string) (*leave.Leave, error) {
			return existing, nil
		}
		deps.repo.deletePendingFn = func(ctx context.Context, cid, mid, id string) (int64, error) {
			t.Fatal("delete must not run for a reviewed leave")
			return 0, nil
		}

		err := deps.service.DeleteLeave(ctx, companyID.String(), owner.ID.String(), existing.ID.String(), owner.UserID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotPending)
	})

	t.Run("manager cannot delete someone else's leave", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		deps.authorizer.EXPECT().RequireOwner(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, membershiperrors.ErrNotMembershipOwner)

		err := deps.service.DeleteLeave(ctx, companyID.String(), uuid.New().String(), uuid.New().String(), uuid.New().String())

		assert.ErrorIs(t, err, membershiperrors.ErrNotMembershipOwner)
	})
}

// statefulReviewRepo keeps one leave and applies the PENDING guard the way
// the SQL update does.
func statefulReviewRepo(repo *fakeLeaveRepository, stored *leave.Leave) {
	repo.findByIDFn = func(ctx context.Context, companyID, id string) (*leave.Leave, error) {
		if id != stored.ID.String() {
			return nil, gorm.ErrRecordNotFound
		}
		cp := *stored
		return &cp, nil
	}
	repo.reviewFn = func(ctx context.Context, companyID, id, status string, managerID uuid.UUID, note *string, reviewedAt time.Time) (int64, error) {
		if stored.Status != leave.StatusPending {
			return 0, nil
		}
		stored.Status = status
		stored.ManagerID = &managerID
		stored.ManagerNote = note
		stored.ReviewedAt = &reviewedAt
		return 1, nil
	}
}

func TestLeaveService_ReviewLeave(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("approval debits the balance once", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		owner := newMember(companyID, rbac.RoleEmployee)
		manager := newMember(companyID, rbac.RoleManager)
		stored := pendingLeave(owner)
		statefulReviewRepo(deps.repo, stored)

		deps.authorizer.EXPECT().
			RequirePermission(ctx, companyID.String(), manager.UserID.String(), rbac.ResourceLeave, rbac.ActionReview).
			Return(manager, nil).Times(2)
		deps.ledger.EXPECT().WithTx(gomock.Any()).Return(deps.ledger).Times(1)
		deps.ledger.EXPECT().
			Apply(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e leavebalance.Entry) (*leavebalance.Result, error) {
				assert.Equal(t, owner.ID, e.MembershipID)
				assert.Equal(t, leavebalance.TypePaid, e.LeaveType)
				assert.True(t, decimal.NewFromInt(-3).Equal(e.Change))
				assert.Equal(t, leavebalance.HistoryLeaveTaken, e.HistoryType)
				assert.Equal(t, manager.UserID, e.ActorID)
				if assert.NotNil(t, e.LeaveID) {
					assert.Equal(t, stored.ID, *e.LeaveID)
				}
				return &leavebalance.Result{}, nil
			}).Times(1)
		dbtest.ExpectTx(deps.sqlMock, true)
		dbtest.ExpectTx(deps.sqlMock, false)

		note := "Enjoy"
		req := leave.ReviewLeaveRequest{Status: leave.StatusApproved, ManagerNote: &note}
		resp, err := deps.service.ReviewLeave(ctx, companyID.String(), stored.ID.String(), manager.UserID.String(), req)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.Equal(t, manager.UserID.String(), *resp.ManagerID)
		assert.Equal(t, "Enjoy", *resp.ManagerNote)
		assert.Equal(t, reviewTime.Format(time.RFC3339), *resp.ReviewedAt)

		if assert.Len(t, deps.outbox.created, 1) {
			assert.Equal(t, events.LeaveReviewedTopic, deps.outbox.created[0].Topic)
			var payload events.LeaveReviewedEvent
			assert.NoError(t, json.Unmarshal(deps.outbox.created[0].Payload, &payload))
			assert.Equal(t, leave.StatusApproved, payload.Status)
			assert.Equal(t, "3", payload.TotalDays)
		}

		_, err = deps.service.ReviewLeave(ctx, companyID.String(), stored.ID.String(), manager.UserID.String(), req)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotPending)
		assert.Len(t, deps.outbox.created, 1)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rejection leaves the balance alone", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		owner := newMember(companyID, rbac.RoleEmployee)
		manager := newMember(companyID, rbac.RoleManager)
		stored := pendingLeave(owner)
		statefulReviewRepo(deps.repo, stored)

		deps.authorizer.EXPECT().RequirePermission(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(manager, nil)
		dbtest.ExpectTx(deps.sqlMock, true)

		resp, err := deps.service.ReviewLeave(ctx, companyID.String(), stored.ID.String(), manager.UserID.String(), leave.ReviewLeaveRequest{Status: leave.StatusRejected})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.Len(t, deps.outbox.created, 1)
	})

	t.Run("losing a concurrent review is a conflict", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		owner := newMember(companyID, rbac.RoleEmployee)
		manager := newMember(companyID, rbac.RoleManager)
		stored := pendingLeave(owner)

		deps.authorizer.EXPECT().RequirePermission(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(manager, nil)
		dbtest.ExpectTx(deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) {
			return stored, nil
		}
		deps.repo.reviewFn = func(ctx context.Context, cid, id, status string, managerID uuid.UUID, note *string, reviewedAt time.Time) (int64, error) {
			return 0, nil
		}

		_, err := deps.service.ReviewLeave(ctx, companyID.String(), stored.ID.String(), manager.UserID.String(), leave.ReviewLeaveRequest{Status: leave.StatusApproved})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotPending)
		assert.Empty(t, deps.outbox.created)
	})

	t.Run("ledger failure rolls back", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		owner := newMember(companyID, rbac.RoleEmployee)
		manager := newMember(companyID, rbac.RoleManager)
		stored := pendingLeave(owner)
		statefulReviewRepo(deps.repo, stored)

		deps.authorizer.EXPECT().RequirePermission(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(manager, nil)
		deps.ledger.EXPECT().WithTx(gomock.Any()).Return(deps.ledger)
		deps.ledger.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(nil, errors.New("lock timeout"))
		dbtest.ExpectTx(deps.sqlMock, false)

		_, err := deps.service.ReviewLeave(ctx, companyID.String(), stored.ID.String(), manager.UserID.String(), leave.ReviewLeaveRequest{Status: leave.StatusApproved})

		assert.EqualError(t, err, "lock timeout")
		assert.Empty(t, deps.outbox.created)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("employee cannot review", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		deps.authorizer.EXPECT().RequirePermission(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, membershiperrors.ErrInsufficientRole)

		_, err := deps.service.ReviewLeave(ctx, companyID.String(), uuid.New().String(), uuid.New().String(), leave.ReviewLeaveRequest{Status: leave.StatusApproved})

		assert.ErrorIs(t, err, membershiperrors.ErrInsufficientRole)
	})

	t.Run("unknown leave", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		manager := newMember(companyID, rbac.RoleManager)
		deps.authorizer.EXPECT().RequirePermission(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(manager, nil)
		dbtest.ExpectTx(deps.sqlMock, false)

		_, err := deps.service.ReviewLeave(ctx, companyID.String(), uuid.New().String(), manager.UserID.String(), leave.ReviewLeaveRequest{Status: leave.StatusRejected})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("invalid status", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.ReviewLeave(ctx, companyID.String(), uuid.New().String(), uuid.New().String(), leave.ReviewLeaveRequest{Status: leave.StatusPending})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidReviewStatus)
	})
}

func TestLeaveService_GetCompanyLeaves(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("parses the filter", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		manager := newMember(companyID, rbac.RoleManager)

		deps.authorizer.EXPECT().
			RequirePermission(ctx, companyID.String(), manager.UserID.String(), rbac.ResourceLeave, rbac.ActionReadAll).
			Return(manager, nil)
		deps.repo.findByCompanyFn = func(ctx context.Context, cid string, filter leave.ListFilter) ([]leave.Leave, error) {
			assert.Equal(t, leave.StatusPending, filter.Status)
			if assert.NotNil(t, filter.From) && assert.NotNil(t, filter.To) {
				assert.Equal(t, "2024-03-01", filter.From.Format("2006-01-02"))
				assert.Equal(t, "2024-03-31", filter.To.Format("2006-01-02"))
			}
			return []leave.Leave{*pendingLeave(manager)}, nil
		}

		resp, err := deps.service.GetCompanyLeaves(ctx, companyID.String(), manager.UserID.String(), leave.CompanyLeavesFilter{
			Status: leave.StatusPending, From: "2024-03-01", To: "2024-03-31",
		})

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("bad status filter", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		deps.authorizer.EXPECT().RequirePermission(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(newMember(companyID, rbac.RoleManager), nil)

		_, err := deps.service.GetCompanyLeaves(ctx, companyID.String(), uuid.New().String(), leave.CompanyLeavesFilter{Status: "CANCELLED"})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusFilter)
	})

	t.Run("employee is forbidden", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		deps.authorizer.EXPECT().RequirePermission(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, membershiperrors.ErrInsufficientRole)

		_, err := deps.service.GetCompanyLeaves(ctx, companyID.String(), uuid.New().String(), leave.CompanyLeavesFilter{})

		assert.ErrorIs(t, err, membershiperrors.ErrInsufficientRole)
	})
}
