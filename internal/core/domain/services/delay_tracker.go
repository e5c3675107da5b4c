package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tracker/internal/core/domain/model/catalog"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/pkg/errs"
)

// DelayRequirement says whether a completion at a given moment needs a delay reason.
type DelayRequirement struct {
	Exceeding      bool
	ElapsedMinutes int
}

// DelaySubmission is what the caller supplies when completing an order.
// Reason is the loaded taxonomy entry for ReasonID, or nil if it was not found.
type DelaySubmission struct {
	ReasonID *kernel.UUID
	Reason   *catalog.DelayReason
	Comments string
	Actor    string
	At       time.Time
}

// DelayTracker applies the overdue threshold to completions and records
// delay and overrun justifications.
type DelayTracker struct {
	logger *slog.Logger
}

func NewDelayTracker(logger *slog.Logger) DelayTracker {
	if logger == nil {
		logger = slog.Default()
	}
	return DelayTracker{logger: logger.With("component", "DelayTracker")}
}

// Evaluate reports whether completing o at now needs a delay reason.
func (t DelayTracker) Evaluate(o *order.Order, now time.Time) DelayRequirement {
	return DelayRequirement{
		Exceeding:      o.ExceedsThreshold(now),
		ElapsedMinutes: o.ElapsedMinutes(now),
	}
}

// Apply records the submission on the order ahead of the completion.
//
// When the order exceeds the threshold an active reason is mandatory. Otherwise
// a supplied reason is recorded if it is valid and ignored if it is not.
// Comments always go to the overrun note.
func (t DelayTracker) Apply(ctx context.Context, o *order.Order, req DelayRequirement, s DelaySubmission) error {
	if err := t.applyReason(ctx, o, req, s); err != nil {
		return err
	}

	if comments := strings.TrimSpace(s.Comments); comments != "" {
		if err := o.RecordOverrunReason(comments, s.Actor, s.At); err != nil {
			return err
		}
	}
	return nil
}

func (t DelayTracker) applyReason(ctx context.Context, o *order.Order, req DelayRequirement, s DelaySubmission) error {
	if s.ReasonID == nil {
		if req.Exceeding {
			return errs.NewDelayReasonRequiredError(req.ElapsedMinutes)
		}
		return nil
	}

	if s.Reason == nil || !s.Reason.IsActive() || !s.Reason.ID().IsEqual(*s.ReasonID) {
		if req.Exceeding {
			return errs.NewValueIsInvalidErrorWithCause(
				"delay_reason", errors.New("unknown or inactive delay reason"),
			)
		}
		t.logger.WarnContext(ctx, "ignoring unknown optional delay reason",
			"order_number", o.Number().String(), "delay_reason_id", s.ReasonID.String())
		return nil
	}

	return o.AttachDelayReason(*s.ReasonID, req.Exceeding, s.Actor, s.At)
}
