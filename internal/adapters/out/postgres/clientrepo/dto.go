// Package clientrepo persists the Client → Substation → Component hierarchy.
// Components of every kind share one wide table; the kind-specific variant is
// flattened into columns on write and rebuilt from them on read.
package clientrepo

import (
	"time"

	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type ClientDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:255;not null;index"`
	Document  string    `gorm:"size:32"`
	Address   string
	Contact   string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ClientDTO) TableName() string {
	return "clients"
}

type SubstationDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"size:255;not null"`
	Location string
	Notes    string
}

func (SubstationDTO) TableName() string {
	return "substations"
}

// ComponentDTO is one row of the wide components table.
type ComponentDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubstationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"size:255;not null"`
	Kind         string    `gorm:"size:64;not null"`
	client.Attributes
}

func (ComponentDTO) TableName() string {
	return "components"
}

// Columns written by updates. Listed explicitly so that empty strings and nil
// quantities overwrite what was stored.
var (
	clientColumns     = []string{"name", "document", "address", "contact", "email", "phone", "updated_at"}
	substationColumns = []string{"name", "location", "notes"}
)

func clientFromDomain(c *client.Client) ClientDTO {
	p := c.Profile()
	return ClientDTO{
		ID:       c.ID().Bytes(),
		Name:     p.Name,
		Document: p.Document,
		Address:  p.Address,
		Contact:  p.Contact,
		Email:    p.Email,
		Phone:    p.Phone,
	}
}

func substationFromDomain(s *client.Substation) SubstationDTO {
	p := s.Profile()
	return SubstationDTO{
		ID:       s.ID().Bytes(),
		ClientID: s.ClientID().Bytes(),
		Name:     p.Name,
		Location: p.Location,
		Notes:    p.Notes,
	}
}

func componentFromDomain(c *client.Component) ComponentDTO {
	return ComponentDTO{
		ID:           c.ID().Bytes(),
		SubstationID: c.SubstationID().Bytes(),
		Name:         c.Name(),
		Kind:         c.Kind().String(),
		Attributes:   c.Attributes(),
	}
}

func componentToDomain(dto ComponentDTO) (*client.Component, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	substationID, err := kernel.UUIDFromBytes(dto.SubstationID[:])
	if err != nil {
		return nil, err
	}
	kind := client.Kind(dto.Kind)
	info, err := client.ExtractInfo(kind, dto.Attributes)
	if err != nil {
		return nil, err
	}
	return client.RestoreComponent(id, substationID, dto.Name, kind, info), nil
}

// toDomain assembles the tree from its three row sets. components is keyed by
// substation id.
func toDomain(dto ClientDTO, substations []SubstationDTO, components map[uuid.UUID][]ComponentDTO) (*client.Client, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restored := make([]*client.Substation, 0, len(substations))
	for _, s := range substations {
		substationID, subErr := kernel.UUIDFromBytes(s.ID[:])
		if subErr != nil {
			return nil, subErr
		}
		comps := make([]*client.Component, 0, len(components[s.ID]))
		for _, c := range components[s.ID] {
			comp, compErr := componentToDomain(c)
			if compErr != nil {
				return nil, compErr
			}
			comps = append(comps, comp)
		}
		restored = append(restored, client.RestoreSubstation(substationID, id, client.SubstationProfile{
			Name:     s.Name,
			Location: s.Location,
			Notes:    s.Notes,
		}, comps))
	}

	return client.RestoreClient(id, client.Profile{
		Name:     dto.Name,
		Document: dto.Document,
		Address:  dto.Address,
		Contact:  dto.Contact,
		Email:    dto.Email,
		Phone:    dto.Phone,
	}, restored), nil
}

func rawIDs(ids []kernel.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Bytes())
	}
	return out
}
