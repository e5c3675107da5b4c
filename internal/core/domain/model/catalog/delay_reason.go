package catalog

import (
	"errors"
	"strings"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

// DelayReasonCategory groups delay reasons, e.g. "Parts" or "Customer".
type DelayReasonCategory struct {
	id       kernel.UUID
	name     string
	isActive bool
}

func NewDelayReasonCategory(id kernel.UUID, name string, isActive bool) (*DelayReasonCategory, error) {
	name = strings.TrimSpace(name)

	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("category")
	}
	if err := errors.Join(id.Validate(), nameErr); err != nil {
		return nil, err
	}
	return &DelayReasonCategory{id: id, name: name, isActive: isActive}, nil
}

func (c *DelayReasonCategory) ID() kernel.UUID { return c.id }

func (c *DelayReasonCategory) Name() string { return c.name }

func (c *DelayReasonCategory) IsActive() bool { return c.isActive }

// DelayReason justifies an order that ran past the overdue threshold.
// It belongs to exactly one category.
type DelayReason struct {
	id         kernel.UUID
	categoryID kernel.UUID
	text       string
	isActive   bool
}

func NewDelayReason(id, categoryID kernel.UUID, text string, isActive bool) (*DelayReason, error) {
	text = strings.TrimSpace(text)

	var textErr, categoryErr error
	if text == "" {
		textErr = errs.NewValueIsRequiredError("reason_text")
	}
	if err := categoryID.Validate(); err != nil {
		categoryErr = errs.NewValueIsRequiredErrorWithCause("category", err)
	}
	if err := errors.Join(id.Validate(), categoryErr, textErr); err != nil {
		return nil, err
	}
	return &DelayReason{id: id, categoryID: categoryID, text: text, isActive: isActive}, nil
}

func (r *DelayReason) ID() kernel.UUID { return r.id }

func (r *DelayReason) CategoryID() kernel.UUID { return r.categoryID }

func (r *DelayReason) Text() string { return r.text }

func (r *DelayReason) IsActive() bool { return r.isActive }
