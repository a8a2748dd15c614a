package queries

import (
	"errors"
	"strings"
	"time"

	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/errs"
	"maintenance/internal/pkg/guard"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersFilter narrows the listing. Zero fields do not filter.
type ListOrdersFilter struct {
	Statuses      []order.Status
	ClientID      *kernel.UUID
	ServiceType   order.ServiceType
	ScheduledFrom *time.Time
	ScheduledTo   *time.Time
	// Search matches a fragment of the order number or of the client name.
	Search string
}

func (f ListOrdersFilter) validate() error {
	var statusErr error
	for _, s := range f.Statuses {
		if err := s.Validate(); err != nil {
			statusErr = err
			break
		}
	}
	var typeErr error
	if f.ServiceType != "" {
		typeErr = f.ServiceType.Validate()
	}
	var rangeErr error
	if f.ScheduledFrom != nil && f.ScheduledTo != nil && f.ScheduledTo.Before(*f.ScheduledFrom) {
		rangeErr = errs.NewValueIsInvalidErrorWithCause("scheduledTo", errors.New("is before scheduledFrom"))
	}
	return errors.Join(statusErr, typeErr, rangeErr)
}

// ListOrdersQuery pages through the orders the actor may see, newest first.
//
//	query, err := NewListOrdersQuery(actor, ListOrdersFilter{Search: "2501"}, 1, 20)
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	actor    personnel.Actor
	filter   ListOrdersFilter
	page     int
	pageSize int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery defaults page to 1 and pageSize to DefaultPageSize.
func NewListOrdersQuery(actor personnel.Actor, filter ListOrdersFilter, page, pageSize int) (ListOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if err := filter.validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("pageSize", pageSize, 1, MaxPageSize)
	}
	filter.Search = strings.TrimSpace(filter.Search)

	return ListOrdersQuery{
		actor:    actor,
		filter:   filter,
		page:     page,
		pageSize: pageSize,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() personnel.Actor {
	return q.actor
}

func (q ListOrdersQuery) Filter() ListOrdersFilter {
	return q.filter
}

func (q ListOrdersQuery) Page() int {
	return q.page
}

func (q ListOrdersQuery) PageSize() int {
	return q.pageSize
}

// OrderSummary is one row of the listing.
type OrderSummary struct {
	ID             kernel.UUID       `json:"id"`
	Number         string            `json:"number"`
	Status         order.Status      `json:"status"`
	ServiceType    order.ServiceType `json:"serviceType"`
	ClientID       kernel.UUID       `json:"clientId"`
	ClientName     string            `json:"clientName"`
	EngineerID     personnel.ID      `json:"engineerId"`
	SupervisorID   *personnel.ID     `json:"supervisorId,omitempty"`
	ScheduledStart *time.Time        `json:"scheduledStart,omitempty"`
	ScheduledEnd   *time.Time        `json:"scheduledEnd,omitempty"`
	BudgetNumber   string            `json:"budgetNumber,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

type ListOrdersQueryResponse struct {
	Items      []OrderSummary `json:"items"`
	TotalCount int64          `json:"totalCount"`
}
