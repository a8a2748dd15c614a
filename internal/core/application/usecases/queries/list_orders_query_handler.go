package queries

import (
	"context"
	"strings"
	"time"

	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads the orders table directly. The access scope and
// the caller's filters are both part of the WHERE clause, so the total count
// and every page only ever see rows the actor may read.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

type orderSummaryRow struct {
	ID             uuid.UUID
	Number         string
	Status         string
	ServiceType    string
	ClientID       uuid.UUID
	ClientName     string
	EngineerID     int64
	SupervisorID   *int64
	ScheduledStart *time.Time
	ScheduledEnd   *time.Time
	BudgetNumber   *string
	CreatedAt      time.Time
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	tx := h.db.WithContext(ctx).
		Table("orders").
		Joins("JOIN clients ON clients.id = orders.client_id")
	tx = withAccessScope(tx, services.NewAccessScope(query.Actor()))
	tx = withFilter(tx, query.Filter())
	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ListOrdersQueryResponse{}, err
	}

	var rows []orderSummaryRow
	if err := tx.Select(`orders.id, orders.number, orders.status, orders.service_type,
			orders.client_id, clients.name AS client_name, orders.engineer_id, orders.supervisor_id,
			orders.scheduled_start, orders.scheduled_end, orders.budget_number, orders.created_at`).
		Order("orders.created_at DESC, orders.number DESC").
		Limit(query.PageSize()).
		Offset((query.Page() - 1) * query.PageSize()).
		Scan(&rows).Error; err != nil {
		return ListOrdersQueryResponse{}, err
	}

	items := make([]OrderSummary, 0, len(rows))
	for _, row := range rows {
		item, err := row.toSummary()
		if err != nil {
			return ListOrdersQueryResponse{}, err
		}
		items = append(items, item)
	}

	return ListOrdersQueryResponse{Items: items, TotalCount: total}, nil
}

func withAccessScope(tx *gorm.DB, scope services.AccessScope) *gorm.DB {
	const staffed = "EXISTS (SELECT 1 FROM order_technicians ot WHERE ot.order_id = orders.id AND ot.personnel_id = ?)"

	id := scope.PersonnelID().Int64()
	switch scope.Kind() {
	case services.ScopeSupervisedOrStaffed:
		return tx.Where("(orders.supervisor_id = ? OR "+staffed+")", id, id)
	case services.ScopeStaffed:
		return tx.Where(staffed, id)
	default:
		return tx
	}
}

func withFilter(tx *gorm.DB, f ListOrdersFilter) *gorm.DB {
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, s.String())
		}
		tx = tx.Where("orders.status IN ?", statuses)
	}
	if f.ClientID != nil {
		tx = tx.Where("orders.client_id = ?", f.ClientID.Bytes())
	}
	if f.ServiceType != "" {
		tx = tx.Where("orders.service_type = ?", string(f.ServiceType))
	}
	if f.ScheduledFrom != nil {
		tx = tx.Where("orders.scheduled_start >= ?", *f.ScheduledFrom)
	}
	if f.ScheduledTo != nil {
		tx = tx.Where("orders.scheduled_start <= ?", *f.ScheduledTo)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		tx = tx.Where("(LOWER(orders.number) LIKE ? OR LOWER(clients.name) LIKE ?)", pattern, pattern)
	}
	return tx
}

func (r orderSummaryRow) toSummary() (OrderSummary, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderSummary{}, err
	}
	clientID, err := kernel.UUIDFromBytes(r.ClientID[:])
	if err != nil {
		return OrderSummary{}, err
	}
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return OrderSummary{}, err
	}

	summary := OrderSummary{
		ID:             id,
		Number:         r.Number,
		Status:         status,
		ServiceType:    order.ServiceType(r.ServiceType),
		ClientID:       clientID,
		ClientName:     r.ClientName,
		EngineerID:     personnel.ID(r.EngineerID),
		ScheduledStart: r.ScheduledStart,
		ScheduledEnd:   r.ScheduledEnd,
		CreatedAt:      r.CreatedAt,
	}
	if r.SupervisorID != nil {
		supervisor := personnel.ID(*r.SupervisorID)
		summary.SupervisorID = &supervisor
	}
	if r.BudgetNumber != nil {
		summary.BudgetNumber = *r.BudgetNumber
	}
	return summary, nil
}
