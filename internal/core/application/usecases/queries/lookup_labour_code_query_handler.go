package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// LookupLabourCodeQueryHandler resolves active labour codes in three steps:
//  1. exact code, case-insensitive
//  2. exact item name, case-insensitive, narrowed by category when given
//  3. description substring, at most MaxLabourCodeSuggestions rows
//
// Step 3 only runs for item name lookups that found nothing in step 2.
type LookupLabourCodeQueryHandler struct {
	db *gorm.DB
}

func NewLookupLabourCodeQueryHandler(db *gorm.DB) LookupLabourCodeQueryHandler {
	return LookupLabourCodeQueryHandler{db: db}
}

func (h LookupLabourCodeQueryHandler) Handle(ctx context.Context, query LookupLabourCodeQuery) ([]LabourCodeView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	if query.Code() != "" {
		return queryLabourCodes(db, "is_active AND LOWER(code) = LOWER(?) ORDER BY code LIMIT 1", query.Code())
	}

	categorySQL, categoryArgs := categoryFilter(query.Category())

	args := append([]any{query.ItemName()}, categoryArgs...)
	exact, err := queryLabourCodes(db,
		"is_active AND LOWER(item_name) = LOWER(?) AND "+categorySQL+" ORDER BY code LIMIT 1", args...)
	if err != nil || len(exact) > 0 {
		return exact, err
	}

	args = append([]any{"%" + escapeLike(query.ItemName()) + "%"}, categoryArgs...)
	args = append(args, MaxLabourCodeSuggestions)
	return queryLabourCodes(db,
		"is_active AND description ILIKE ? AND "+categorySQL+" ORDER BY code LIMIT ?", args...)
}

func categoryFilter(category string) (string, []any) {
	if category == "" {
		return "TRUE", nil
	}
	return "LOWER(category) = LOWER(?)", []any{category}
}

// escapeLike quotes the LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
