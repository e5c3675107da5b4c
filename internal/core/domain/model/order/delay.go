package order

import (
	"strings"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

// AttachDelayReason records the structured delay justification. It is an audit
// field and may be written on terminal orders.
func (o *Order) AttachDelayReason(reasonID kernel.UUID, exceeded bool, actor string, at time.Time) error {
	if err := reasonID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("delay_reason", err)
	}
	reported := at
	id := reasonID
	o.delay = DelayRecord{
		ReasonID:          &id,
		ReportedAt:        &reported,
		ReportedBy:        strings.TrimSpace(actor),
		ExceededThreshold: exceeded,
	}
	return nil
}

// RecordOverrunReason stores the free-text overrun comment. The first write
// fixes who reported it and when; later writes only replace the text.
func (o *Order) RecordOverrunReason(reason, actor string, at time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("overrun_reason")
	}
	o.overrun.Reason = reason
	if o.overrun.ReportedAt == nil {
		reported := at
		o.overrun.ReportedAt = &reported
		o.overrun.ReportedBy = strings.TrimSpace(actor)
	}
	return nil
}
