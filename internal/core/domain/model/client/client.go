package client

import (
	"slices"
	"strings"

	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/pkg/errs"
)

// Profile holds the scalar fields of a Client.
type Profile struct {
	Name     string `json:"name"`
	Document string `json:"document,omitempty"`
	Address  string `json:"address,omitempty"`
	Contact  string `json:"contact,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

func (p Profile) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errs.NewValueIsRequiredError("client name")
	}
	return nil
}

// Client is the root of the equipment hierarchy.
type Client struct {
	id          kernel.UUID
	profile     Profile
	substations []*Substation
}

func NewClient(profile Profile) (*Client, error) {
	if err := profile.validate(); err != nil {
		return nil, err
	}
	return &Client{id: kernel.NewUUID(), profile: profile}, nil
}

func RestoreClient(id kernel.UUID, profile Profile, substations []*Substation) *Client {
	return &Client{id: id, profile: profile, substations: substations}
}

func (c *Client) ID() kernel.UUID {
	return c.id
}

func (c *Client) Profile() Profile {
	return c.profile
}

func (c *Client) Substations() []*Substation {
	return slices.Clone(c.substations)
}

func (c *Client) UpdateProfile(profile Profile) error {
	if err := profile.validate(); err != nil {
		return err
	}
	c.profile = profile
	return nil
}

// SubstationProfile holds the scalar fields of a Substation.
type SubstationProfile struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

func (p SubstationProfile) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errs.NewValueIsRequiredError("substation name")
	}
	return nil
}

type Substation struct {
	id         kernel.UUID
	clientID   kernel.UUID
	profile    SubstationProfile
	components []*Component
}

func NewSubstation(clientID kernel.UUID, profile SubstationProfile) (*Substation, error) {
	if err := profile.validate(); err != nil {
		return nil, err
	}
	return &Substation{id: kernel.NewUUID(), clientID: clientID, profile: profile}, nil
}

func RestoreSubstation(id, clientID kernel.UUID, profile SubstationProfile, components []*Component) *Substation {
	return &Substation{id: id, clientID: clientID, profile: profile, components: components}
}

// ReviseSubstation rebuilds a persisted substation with new scalar fields.
func ReviseSubstation(id, clientID kernel.UUID, profile SubstationProfile) (*Substation, error) {
	if err := profile.validate(); err != nil {
		return nil, err
	}
	return &Substation{id: id, clientID: clientID, profile: profile}, nil
}

func (s *Substation) ID() kernel.UUID {
	return s.id
}

func (s *Substation) ClientID() kernel.UUID {
	return s.clientID
}

func (s *Substation) Profile() SubstationProfile {
	return s.profile
}

func (s *Substation) Components() []*Component {
	return slices.Clone(s.components)
}

type Component struct {
	id           kernel.UUID
	substationID kernel.UUID
	name         string
	kind         Kind
	info         Info
}

func NewComponent(substationID kernel.UUID, name string, kind Kind, info Info) (*Component, error) {
	return buildComponent(kernel.NewUUID(), substationID, name, kind, info)
}

// ReviseComponent rebuilds a persisted component with new fields.
func ReviseComponent(id, substationID kernel.UUID, name string, kind Kind, info Info) (*Component, error) {
	return buildComponent(id, substationID, name, kind, info)
}

func RestoreComponent(id, substationID kernel.UUID, name string, kind Kind, info Info) *Component {
	return &Component{id: id, substationID: substationID, name: name, kind: kind, info: info}
}

func buildComponent(id, substationID kernel.UUID, name string, kind Kind, info Info) (*Component, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValueIsRequiredError("component name")
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if info == nil {
		info = emptyInfo(kind)
	}
	if !infoFits(kind, info) {
		return nil, errs.NewValueIsInvalidError("info does not match kind " + kind.String())
	}
	return &Component{id: id, substationID: substationID, name: name, kind: kind, info: info}, nil
}

func (c *Component) ID() kernel.UUID {
	return c.id
}

func (c *Component) SubstationID() kernel.UUID {
	return c.substationID
}

func (c *Component) Name() string {
	return c.name
}

func (c *Component) Kind() Kind {
	return c.kind
}

func (c *Component) Info() Info {
	return c.info
}

// Attributes flattens the component's variant into the stored bag.
func (c *Component) Attributes() Attributes {
	return Flatten(c.info)
}
