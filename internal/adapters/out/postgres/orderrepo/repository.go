package orderrepo

import (
	"context"
	"errors"

	"maintenance/internal/adapters/out/postgres/fieldtestrepo"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM. The
// connection must be opened with TranslateError so unique violations surface
// as gorm.ErrDuplicatedKey.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order with its links. Any unique violation is reported as
// a taken number: budget numbers are checked before the insert, and the
// caller's retry re-runs that check.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	dto, l := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("order", dto.Number, order.ErrNumberTaken)
		}
		return err
	}
	return r.insertLinks(db, l)
}

// Update writes the order only if nobody else did since it was read.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	dto, l := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").Omit("id", "number", "created_at").
		Updates(&dto)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("order", dto.Number, result.Error)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError("order", dto.Number)
	}

	if err := r.deleteLinks(db, dto.ID); err != nil {
		return err
	}
	return r.insertLinks(db, l)
}

// Delete purges the order with its links and field tests. The hierarchy it
// pointed at is left alone.
func (r *GormOrderRepository) Delete(ctx context.Context, aggregate *order.Order) error {
	id := aggregate.ID().Bytes()
	db := r.db.WithContext(ctx)

	result := db.Where("id = ? AND version = ?", id, aggregate.Version()).Delete(&OrderDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError("order", aggregate.Number().String())
	}

	if err := db.Where("order_id = ?", id).Delete(&fieldtestrepo.FieldTestDTO{}).Error; err != nil {
		return err
	}
	return r.deleteLinks(db, id)
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, id.String(), "id = ?", id.Bytes())
}

func (r *GormOrderRepository) GetByNumber(ctx context.Context, number order.Number) (*order.Order, error) {
	return r.first(ctx, number.String(), "number = ?", number.String())
}

// LastNumberWithPrefix orders by length first so that 25011000 ranks above 2501999.
func (r *GormOrderRepository) LastNumberWithPrefix(ctx context.Context, prefix string) (*order.Number, error) {
	var numbers []string
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("number LIKE ?", prefix+"%").
		Order("LENGTH(number) DESC, number DESC").
		Limit(1).
		Pluck("number", &numbers).Error; err != nil {
		return nil, err
	}
	if len(numbers) == 0 {
		return nil, nil
	}

	last, err := order.ParseNumber(numbers[0])
	if err != nil {
		return nil, err
	}
	return &last, nil
}

func (r *GormOrderRepository) BudgetNumberTaken(ctx context.Context, budgetNumber string, except *kernel.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("budget_number = ?", budgetNumber)
	if except != nil {
		query = query.Where("id <> ?", except.Bytes())
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormOrderRepository) CountByClient(ctx context.Context, clientID kernel.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("client_id = ?", clientID.Bytes()).Count(&count).Error
	return count, err
}

func (r *GormOrderRepository) first(ctx context.Context, key string, query string, args ...any) (*order.Order, error) {
	db := r.db.WithContext(ctx)

	var dto OrderDTO
	if err := db.Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", key)
		}
		return nil, err
	}

	var l links
	if err := db.Where("order_id = ?", dto.ID).Order("position").Find(&l.technicians).Error; err != nil {
		return nil, err
	}
	if err := db.Where("order_id = ?", dto.ID).Order("position").Find(&l.substations).Error; err != nil {
		return nil, err
	}
	if err := db.Where("order_id = ?", dto.ID).Order("position").Find(&l.components).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, l)
}

func (r *GormOrderRepository) insertLinks(db *gorm.DB, l links) error {
	if len(l.technicians) > 0 {
		if err := db.Create(&l.technicians).Error; err != nil {
			return err
		}
	}
	if len(l.substations) > 0 {
		if err := db.Create(&l.substations).Error; err != nil {
			return err
		}
	}
	if len(l.components) > 0 {
		if err := db.Create(&l.components).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormOrderRepository) deleteLinks(db *gorm.DB, orderID uuid.UUID) error {
	if err := db.Where("order_id = ?", orderID).Delete(&OrderTechnicianDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", orderID).Delete(&OrderSubstationDTO{}).Error; err != nil {
		return err
	}
	return db.Where("order_id = ?", orderID).Delete(&OrderComponentDTO{}).Error
}
