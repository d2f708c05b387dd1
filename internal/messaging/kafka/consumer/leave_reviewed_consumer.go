package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-leave/internal/events"
	membershiperrors "go-leave/internal/membership/errors"
	"go-leave/internal/shared/metrics"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafka.Reader the consumers need.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// OnLeaveRefresher recomputes a membership's on-leave flag for a day.
type OnLeaveRefresher interface {
	RefreshOnLeave(ctx context.Context, membershipID string, day time.Time) error
}

// errSkip marks messages that are committed without being applied.
var errSkip = errors.New("skip message")

const maxApplyAttempts = 5

var (
	applyRetryDelay = 500 * time.Millisecond
	fetchRetryDelay = time.Second
)

func ConsumeLeaveReviewed(
	ctx context.Context,
	reader MessageReader,
	refresher OnLeaveRefresher,
	m *metrics.Metrics,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_reviewed")
	log.Info("leave reviewed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave reviewed consumer stopped")
				return
			}
			log.Error("fetch leave reviewed message failed", zap.Error(err))
			if !wait(ctx, fetchRetryDelay) {
				log.Info("leave reviewed consumer stopped")
				return
			}
			continue
		}

		err = applyWithRetry(ctx, msg, refresher, log)
		switch {
		case errors.Is(err, errSkip):
			log.Warn("leave reviewed message skipped",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			m.ObserveConsumed(events.LeaveReviewedTopic, "skipped")
		case ctx.Err() != nil:
			// Uncommitted, so the group redelivers it after a restart.
			log.Info("leave reviewed consumer stopped")
			return
		case err != nil:
			// The on-leave sweep in the worker repairs the flag.
			log.Error("apply leave reviewed message failed, giving up",
				zap.Int64("offset", msg.Offset),
				zap.Int("attempts", maxApplyAttempts),
				zap.Error(err),
			)
			m.ObserveConsumed(events.LeaveReviewedTopic, "failed")
		default:
			m.ObserveConsumed(events.LeaveReviewedTopic, "applied")
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave reviewed message failed", zap.Error(err))
		}
	}
}

// applyWithRetry retries transient failures with exponential backoff.
func applyWithRetry(ctx context.Context, msg kafkago.Message, refresher OnLeaveRefresher, log *zap.Logger) error {
	delay := applyRetryDelay
	var err error
	for attempt := 1; attempt <= maxApplyAttempts; attempt++ {
		err = HandleLeaveReviewed(ctx, msg, refresher, time.Now().UTC())
		if err == nil || errors.Is(err, errSkip) {
			return err
		}
		if attempt == maxApplyAttempts {
			break
		}
		log.Warn("apply leave reviewed message failed, retrying",
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)
		if !wait(ctx, delay) {
			return ctx.Err()
		}
		delay *= 2
	}
	return err
}

// wait sleeps for d and reports false if ctx ended first.
func wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// HandleLeaveReviewed refreshes the on-leave flag of the reviewed
// membership as of now. Undecodable or stale messages return errSkip.
func HandleLeaveReviewed(ctx context.Context, msg kafkago.Message, refresher OnLeaveRefresher, now time.Time) error {
	var event events.LeaveReviewedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return errors.Join(errSkip, err)
	}
	if event.EventType != events.LeaveReviewedType || event.MembershipID == "" {
		return errSkip
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if err := refresher.RefreshOnLeave(ctx, event.MembershipID, day); err != nil {
		if errors.Is(err, membershiperrors.ErrMembershipNotFound) {
			return errors.Join(errSkip, err)
		}
		return err
	}
	return nil
}
