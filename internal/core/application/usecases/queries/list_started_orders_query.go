package queries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tracker/internal/core/domain/model/branch"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

var ErrListStartedOrdersQueryIsNotConstructed = errors.New(
	"ListStartedOrdersQuery must be created via NewListStartedOrdersQuery constructor",
)

// StartedOrdersSort is the ordering of the started orders board.
type StartedOrdersSort string

const (
	SortNewestStarted StartedOrdersSort = "-started_at"
	SortOldestStarted StartedOrdersSort = "started_at"
	SortPlateNumber   StartedOrdersSort = "plate_number"
	SortType          StartedOrdersSort = "type"
)

func getSortClauses() map[StartedOrdersSort]string {
	return map[StartedOrdersSort]string{
		SortNewestStarted: "o.started_at DESC NULLS LAST, o.created_at DESC",
		SortOldestStarted: "o.started_at ASC NULLS LAST, o.created_at ASC",
		SortPlateNumber:   "v.plate_number ASC NULLS LAST, o.created_at DESC",
		SortType:          "o.type ASC, o.created_at DESC",
	}
}

// ListStartedOrdersQuery lists the orders on the started orders board.
// Without a status filter the board shows open orders plus those completed
// today. Search matches the plate or the customer name.
type ListStartedOrdersQuery struct {
	scope  branch.Scope
	status order.Status
	search string
	sort   StartedOrdersSort

	guard guard.ConstructorGuard
}

func NewListStartedOrdersQuery(scope branch.Scope, status, search, sort string) (ListStartedOrdersQuery, error) {
	q := ListStartedOrdersQuery{
		scope:  scope,
		search: strings.TrimSpace(search),
		sort:   SortNewestStarted,
		guard:  guard.NewConstructorGuard(),
	}

	if status = strings.TrimSpace(status); status != "" {
		parsed, err := order.ParseStatus(status)
		if err != nil {
			return ListStartedOrdersQuery{}, err
		}
		q.status = parsed
	}

	if sort = strings.TrimSpace(sort); sort != "" {
		if _, ok := getSortClauses()[StartedOrdersSort(sort)]; !ok {
			return ListStartedOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause(
				"sort_by", fmt.Errorf("%q is not a sort order", sort),
			)
		}
		q.sort = StartedOrdersSort(sort)
	}

	return q, nil
}

func (q ListStartedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListStartedOrdersQueryIsNotConstructed)
}

func (q ListStartedOrdersQuery) Scope() branch.Scope { return q.scope }

// Status is order.Unknown when no filter was given.
func (q ListStartedOrdersQuery) Status() order.Status { return q.status }

func (q ListStartedOrdersQuery) Search() string { return q.search }

func (q ListStartedOrdersQuery) Sort() StartedOrdersSort { return q.sort }

type StartedOrderRow struct {
	ID                kernel.UUID
	Number            string
	Type              order.Type
	Status            order.Status
	Priority          order.Priority
	PlateNumber       string
	CustomerName      string
	EstimatedDuration *int
	CreatedAt         time.Time
	StartedAt         *time.Time
	CompletedAt       *time.Time
}

// PlateGroup gathers the rows of one plate, in board order.
type PlateGroup struct {
	PlateNumber string
	Orders      []StartedOrderRow
}

type ListStartedOrdersQueryResponse struct {
	Orders  []StartedOrderRow
	ByPlate []PlateGroup
}

// UnknownPlate labels orders without a vehicle in ByPlate.
const UnknownPlate = "Unknown"

func groupByPlate(rows []StartedOrderRow) []PlateGroup {
	groups := make([]PlateGroup, 0)
	index := make(map[string]int)
	for _, row := range rows {
		plate := row.PlateNumber
		if plate == "" {
			plate = UnknownPlate
		}
		i, ok := index[plate]
		if !ok {
			i = len(groups)
			index[plate] = i
			groups = append(groups, PlateGroup{PlateNumber: plate})
		}
		groups[i].Orders = append(groups[i].Orders, row)
	}
	return groups
}
