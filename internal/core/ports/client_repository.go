// Package ports defines the contracts between the core and its adapters.
package ports

import (
	"context"

	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/services"
)

// ClientRepository persists the Client → Substation → Component hierarchy.
// Child writes are always scoped by their parent id, so a row of another
// parent is never touched.
type ClientRepository interface {
	// Add stores the client row only.
	Add(ctx context.Context, aggregate *client.Client) error

	// Update stores the client's scalar fields.
	Update(ctx context.Context, aggregate *client.Client) error

	// Get loads the client with its full tree.
	Get(ctx context.Context, id kernel.UUID) (*client.Client, error)

	Exists(ctx context.Context, id kernel.UUID) (bool, error)

	// Delete removes the client, its substations and their components.
	Delete(ctx context.Context, id kernel.UUID) error

	// Hierarchy lists the persisted identities under the client.
	Hierarchy(ctx context.Context, clientID kernel.UUID) ([]services.PersistedSubstation, error)

	AddSubstation(ctx context.Context, substation *client.Substation) error
	UpdateSubstation(ctx context.Context, substation *client.Substation) error

	// DeleteSubstations removes the given substations of the client together with their components.
	DeleteSubstations(ctx context.Context, clientID kernel.UUID, ids []kernel.UUID) error

	AddComponent(ctx context.Context, component *client.Component) error
	UpdateComponent(ctx context.Context, component *client.Component) error
	DeleteComponents(ctx context.Context, substationID kernel.UUID, ids []kernel.UUID) error

	// OwnedSubstations returns the subset of ids that belong to the client.
	OwnedSubstations(ctx context.Context, clientID kernel.UUID, ids []kernel.UUID) ([]kernel.UUID, error)

	// OwnedComponents returns the subset of ids that sit under one of the client's substations.
	OwnedComponents(ctx context.Context, clientID kernel.UUID, ids []kernel.UUID) ([]kernel.UUID, error)
}
