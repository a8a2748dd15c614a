package clientrepo

import (
	"context"
	"errors"

	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/services"
	"maintenance/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClientRepository implements ports.ClientRepository using GORM.
type GormClientRepository struct {
	db *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// Add stores the client row only; substations and components are added one by one.
func (r *GormClientRepository) Add(ctx context.Context, aggregate *client.Client) error {
	dto := clientFromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormClientRepository) Update(ctx context.Context, aggregate *client.Client) error {
	dto := clientFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ClientDTO{ID: dto.ID}).Select(clientColumns).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("client", aggregate.ID().String())
	}
	return nil
}

// Get loads the client with its substations and components.
func (r *GormClientRepository) Get(ctx context.Context, id kernel.UUID) (*client.Client, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	var dto ClientDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("client", id.String())
		}
		return nil, err
	}

	var substations []SubstationDTO
	if err := db.Where("client_id = ?", dto.ID).Order("name, id").Find(&substations).Error; err != nil {
		return nil, err
	}

	components := make(map[uuid.UUID][]ComponentDTO, len(substations))
	if len(substations) > 0 {
		ids := make([]uuid.UUID, 0, len(substations))
		for _, s := range substations {
			ids = append(ids, s.ID)
		}
		var rows []ComponentDTO
		if err := db.Where("substation_id IN ?", ids).Order("name, id").Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			components[row.SubstationID] = append(components[row.SubstationID], row)
		}
	}

	return toDomain(dto, substations, components)
}

func (r *GormClientRepository) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ClientDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes the client and everything under it.
func (r *GormClientRepository) Delete(ctx context.Context, id kernel.UUID) error {
	db := r.db.WithContext(ctx)
	owned := db.Model(&SubstationDTO{}).Select("id").Where("client_id = ?", id.Bytes())
	if err := db.Where("substation_id IN (?)", owned).Delete(&ComponentDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("client_id = ?", id.Bytes()).Delete(&SubstationDTO{}).Error; err != nil {
		return err
	}
	result := db.Where("id = ?", id.Bytes()).Delete(&ClientDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("client", id.String())
	}
	return nil
}

func (r *GormClientRepository) Hierarchy(ctx context.Context, clientID kernel.UUID) ([]services.PersistedSubstation, error) {
	db := r.db.WithContext(ctx)

	var substationIDs []uuid.UUID
	if err := db.Model(&SubstationDTO{}).Where("client_id = ?", clientID.Bytes()).Order("name, id").
		Pluck("id", &substationIDs).Error; err != nil {
		return nil, err
	}
	if len(substationIDs) == 0 {
		return nil, nil
	}

	var rows []ComponentDTO
	if err := db.Select("id", "substation_id").Where("substation_id IN ?", substationIDs).
		Order("name, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	byParent := make(map[uuid.UUID][]uuid.UUID, len(substationIDs))
	for _, row := range rows {
		byParent[row.SubstationID] = append(byParent[row.SubstationID], row.ID)
	}

	persisted := make([]services.PersistedSubstation, 0, len(substationIDs))
	for _, raw := range substationIDs {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		componentIDs, err := kernel.UUIDsFromBytes(byParent[raw])
		if err != nil {
			return nil, err
		}
		persisted = append(persisted, services.PersistedSubstation{ID: id, ComponentIDs: componentIDs})
	}
	return persisted, nil
}

func (r *GormClientRepository) AddSubstation(ctx context.Context, substation *client.Substation) error {
	dto := substationFromDomain(substation)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// UpdateSubstation is scoped by the owning client.
func (r *GormClientRepository) UpdateSubstation(ctx context.Context, substation *client.Substation) error {
	dto := substationFromDomain(substation)
	result := r.db.WithContext(ctx).Model(&SubstationDTO{}).
		Where("id = ? AND client_id = ?", dto.ID, dto.ClientID).
		Select(substationColumns).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("substation", substation.ID().String())
	}
	return nil
}

func (r *GormClientRepository) DeleteSubstations(ctx context.Context, clientID kernel.UUID, ids []kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	db := r.db.WithContext(ctx)
	owned := db.Model(&SubstationDTO{}).Select("id").Where("client_id = ? AND id IN ?", clientID.Bytes(), rawIDs(ids))
	if err := db.Where("substation_id IN (?)", owned).Delete(&ComponentDTO{}).Error; err != nil {
		return err
	}
	return db.Where("client_id = ? AND id IN ?", clientID.Bytes(), rawIDs(ids)).Delete(&SubstationDTO{}).Error
}

func (r *GormClientRepository) AddComponent(ctx context.Context, component *client.Component) error {
	dto := componentFromDomain(component)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// UpdateComponent rewrites every column, so attributes the new variant does
// not own are cleared.
func (r *GormClientRepository) UpdateComponent(ctx context.Context, component *client.Component) error {
	dto := componentFromDomain(component)
	result := r.db.WithContext(ctx).Model(&ComponentDTO{}).
		Where("id = ? AND substation_id = ?", dto.ID, dto.SubstationID).
		Select("*").Omit("id", "substation_id").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("component", component.ID().String())
	}
	return nil
}

func (r *GormClientRepository) DeleteComponents(ctx context.Context, substationID kernel.UUID, ids []kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("substation_id = ? AND id IN ?", substationID.Bytes(), rawIDs(ids)).
		Delete(&ComponentDTO{}).Error
}

func (r *GormClientRepository) OwnedSubstations(ctx context.Context, clientID kernel.UUID, ids []kernel.UUID) ([]kernel.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var owned []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&SubstationDTO{}).
		Where("client_id = ? AND id IN ?", clientID.Bytes(), rawIDs(ids)).
		Pluck("id", &owned).Error; err != nil {
		return nil, err
	}
	return kernel.UUIDsFromBytes(owned)
}

func (r *GormClientRepository) OwnedComponents(ctx context.Context, clientID kernel.UUID, ids []kernel.UUID) ([]kernel.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var owned []uuid.UUID
	if err := r.db.WithContext(ctx).Table("components").
		Joins("JOIN substations ON substations.id = components.substation_id").
		Where("substations.client_id = ? AND components.id IN ?", clientID.Bytes(), rawIDs(ids)).
		Pluck("components.id", &owned).Error; err != nil {
		return nil, err
	}
	return kernel.UUIDsFromBytes(owned)
}
