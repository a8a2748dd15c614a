package fieldtestrepo

import (
	"context"
	"errors"

	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/fieldtest"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormFieldTestRepository implements ports.FieldTestRepository using GORM.
type GormFieldTestRepository struct {
	db *gorm.DB
}

func NewGormFieldTestRepository(db *gorm.DB) *GormFieldTestRepository {
	return &GormFieldTestRepository{db: db}
}

// Add reports a lost race on the (order, component, kind) index the same way
// the pre-insert check does.
func (r *GormFieldTestRepository) Add(ctx context.Context, test *fieldtest.FieldTest) error {
	dto := fromDomain(test)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("kind", fieldtest.ErrDuplicateFieldTest)
		}
		return err
	}
	return nil
}

// Update rewrites the measured content. Identity columns never change.
func (r *GormFieldTestRepository) Update(ctx context.Context, test *fieldtest.FieldTest) error {
	dto := fromDomain(test)
	result := r.db.WithContext(ctx).Model(&FieldTestDTO{}).
		Where("id = ?", dto.ID).
		Select("data", "performed_at", "responsible_id", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("field test", test.ID().String())
	}
	return nil
}

func (r *GormFieldTestRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&FieldTestDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("field test", id.String())
	}
	return nil
}

func (r *GormFieldTestRepository) Get(ctx context.Context, id kernel.UUID) (*fieldtest.FieldTest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto FieldTestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("field test", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormFieldTestRepository) Exists(ctx context.Context, orderID, componentID kernel.UUID, kind client.Kind) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&FieldTestDTO{}).
		Where("order_id = ? AND component_id = ? AND kind = ?", orderID.Bytes(), componentID.Bytes(), kind.String()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
