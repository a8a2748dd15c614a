// Package personnelrepo reads the employee registry. The table is owned by
// the HR system; this service only checks references against it.
package personnelrepo

import (
	"context"

	"maintenance/internal/core/domain/model/personnel"

	"gorm.io/gorm"
)

type EmployeeDTO struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false"`
	Name string `gorm:"size:255;not null"`
	Role string `gorm:"size:32;not null"`
}

func (EmployeeDTO) TableName() string {
	return "employees"
}

func FromDomain(e personnel.Employee) EmployeeDTO {
	return EmployeeDTO{ID: e.ID.Int64(), Name: e.Name, Role: e.Role.String()}
}

type GormPersonnelRepository struct {
	db *gorm.DB
}

func NewGormPersonnelRepository(db *gorm.DB) *GormPersonnelRepository {
	return &GormPersonnelRepository{db: db}
}

func (r *GormPersonnelRepository) Existing(ctx context.Context, ids []personnel.ID) ([]personnel.ID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw := make([]int64, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Int64())
	}

	var found []int64
	if err := r.db.WithContext(ctx).Model(&EmployeeDTO{}).Where("id IN ?", raw).Pluck("id", &found).Error; err != nil {
		return nil, err
	}

	existing := make([]personnel.ID, 0, len(found))
	for _, id := range found {
		existing = append(existing, personnel.ID(id))
	}
	return existing, nil
}
