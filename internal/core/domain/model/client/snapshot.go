package client

import (
	"slices"

	"maintenance/internal/core/domain/model/kernel"
)

// TreeSnapshot is the serializable view of a Client and everything it owns.
type TreeSnapshot struct {
	ID kernel.UUID `json:"id"`
	Profile
	Substations []SubstationSnapshot `json:"substations"`
}

type SubstationSnapshot struct {
	ID kernel.UUID `json:"id"`
	SubstationProfile
	Components []ComponentSnapshot `json:"components"`
}

type ComponentSnapshot struct {
	ID   kernel.UUID `json:"id"`
	Name string      `json:"name"`
	Kind Kind        `json:"kind"`
	Info Info        `json:"info"`
}

// Snapshot lists components in inspection order.
func (c *Client) Snapshot() TreeSnapshot {
	tree := TreeSnapshot{ID: c.id, Profile: c.profile, Substations: make([]SubstationSnapshot, 0, len(c.substations))}
	for _, s := range c.substations {
		sub := SubstationSnapshot{ID: s.id, SubstationProfile: s.profile, Components: make([]ComponentSnapshot, 0, len(s.components))}
		for _, comp := range s.components {
			sub.Components = append(sub.Components, ComponentSnapshot{ID: comp.id, Name: comp.name, Kind: comp.kind, Info: comp.info})
		}
		slices.SortStableFunc(sub.Components, func(a, b ComponentSnapshot) int {
			return compareFieldOrder(a.Kind, b.Kind)
		})
		tree.Substations = append(tree.Substations, sub)
	}
	return tree
}
