package order

import (
	"fmt"
	"strings"

	"tracker/internal/pkg/errs"
)

// LineItemKind says what a line item refers to.
type LineItemKind string

const (
	ServiceLine    LineItemKind = "service"
	AddonLine      LineItemKind = "addon"
	LabourCodeLine LineItemKind = "labour_code"
	ItemLine       LineItemKind = "item"
	ComponentLine  LineItemKind = "component"
)

// LineItem is one entry of the structured work list on an order.
// Reference is the catalog name, labour code or component type; Note is free text.
type LineItem struct {
	kind      LineItemKind
	reference string
	note      string
}

func NewLineItem(kind LineItemKind, reference, note string) (LineItem, error) {
	reference = strings.TrimSpace(reference)
	switch kind {
	case ServiceLine, AddonLine, LabourCodeLine, ItemLine, ComponentLine:
	default:
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("line_item_kind", fmt.Errorf("%q is not a line item kind", kind))
	}
	if reference == "" {
		return LineItem{}, errs.NewValueIsRequiredError("line_item_reference")
	}
	return LineItem{kind: kind, reference: reference, note: strings.TrimSpace(note)}, nil
}

func (l LineItem) Kind() LineItemKind { return l.kind }

func (l LineItem) Reference() string { return l.reference }

func (l LineItem) Note() string { return l.note }
