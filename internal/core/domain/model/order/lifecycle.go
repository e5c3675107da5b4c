package order

import (
	"strings"
	"time"

	"tracker/internal/pkg/errs"
)

const (
	// OverdueThreshold is the elapsed time after which a completion needs a delay reason.
	OverdueThreshold = 2 * time.Hour

	// StartGracePeriod is how long a created order waits before it is treated as started.
	StartGracePeriod = 10 * time.Minute
)

// Transition moves the order to target following the transition table.
// Re-issuing the current terminal status is a no-op.
func (o *Order) Transition(target Status, actor string, at time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if o.status == target && target.IsTerminal() {
		return nil
	}
	if !o.status.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError(o.status.String(), target.String())
	}

	//nolint:exhaustive // unknown and created are never transition targets
	switch target {
	case InProgress:
		o.markStarted(at)
	case Completed:
		if o.ExceedsThreshold(at) && o.delay.ReasonID == nil {
			return errs.NewDelayReasonRequiredError(o.ElapsedMinutes(at))
		}
		o.markCompleted(actor, at)
	case Cancelled:
		o.markCancelled("", actor, at)
	}

	from := o.status
	o.status = target
	o.raise(EventStatusChanged, from, actor, at)
	return nil
}

// Cancel moves the order to Cancelled with the given reason. Cancelling an
// already cancelled order keeps the first reason.
func (o *Order) Cancel(reason, actor string, at time.Time) error {
	if o.status == Cancelled {
		return nil
	}
	if !o.status.CanTransitionTo(Cancelled) {
		return errs.NewInvalidTransitionError(o.status.String(), Cancelled.String())
	}

	o.markCancelled(reason, actor, at)
	from := o.status
	o.status = Cancelled
	o.raise(EventStatusChanged, from, actor, at)
	return nil
}

// QuickStop completes the order without signature capture and without the
// delay reason guard. Completed orders are left untouched.
func (o *Order) QuickStop(actor string, at time.Time) error {
	if o.status == Completed {
		return nil
	}
	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionError(o.status.String(), Completed.String())
	}

	o.markCompleted(actor, at)
	if o.startedAt == nil {
		o.startedAt = o.actualStart()
	}

	from := o.status
	o.status = Completed
	o.raise(EventStatusChanged, from, actor, at)
	return nil
}

// ElapsedMinutes is the measured duration if the order is finished, otherwise
// the minutes since it started (or was created, if never started).
func (o *Order) ElapsedMinutes(now time.Time) int {
	if o.actualDuration != nil {
		return *o.actualDuration
	}
	return minutesBetween(*o.actualStart(), now)
}

// ExceedsThreshold reports whether a completion at now needs a delay reason.
func (o *Order) ExceedsThreshold(now time.Time) bool {
	if o.actualDuration != nil {
		return *o.actualDuration >= int(OverdueThreshold/time.Minute)
	}
	if !o.status.IsOpen() {
		return false
	}
	return now.Sub(*o.actualStart()) >= OverdueThreshold
}

// IsStale reports whether the background sweep should advance the order.
func (o *Order) IsStale(now time.Time) (Status, bool) {
	//nolint:exhaustive // only created and in-progress orders age
	switch o.status {
	case Created:
		return InProgress, now.Sub(o.createdAt) >= StartGracePeriod
	case InProgress:
		return Overdue, now.Sub(*o.actualStart()) >= OverdueThreshold
	}
	return Unknown, false
}

func (o *Order) actualStart() *time.Time {
	if o.startedAt != nil {
		return o.startedAt
	}
	created := o.createdAt
	return &created
}

func (o *Order) markStarted(at time.Time) {
	if o.startedAt != nil {
		return
	}
	started := at
	o.startedAt = &started
}

func (o *Order) markCompleted(actor string, at time.Time) {
	completed := at
	minutes := minutesBetween(*o.actualStart(), at)
	o.completedAt = &completed
	o.completedBy = strings.TrimSpace(actor)
	o.actualDuration = &minutes
}

func (o *Order) markCancelled(reason, actor string, at time.Time) {
	cancelled := at
	o.cancelledAt = &cancelled
	o.cancelledBy = strings.TrimSpace(actor)
	if reason = strings.TrimSpace(reason); reason != "" {
		o.cancellationReason = reason
	}
}

func minutesBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from) / time.Minute)
}
