package client

import (
	"encoding/json"
	"fmt"

	"maintenance/internal/pkg/errs"
)

// Attributes is the flat attribute bag every Component is stored as. Each
// Info variant owns a subset of it.
type Attributes struct {
	Tag              string
	Identification   string
	Location         string
	Model            string
	Manufacturer     string
	SerialNumber     string
	Quantity         *int
	InsulatingMedium string
	ManufactureYear  string
	TotalMass        string
	Power            string
	Voltage          string
	RatedCurrent     string
	PrimaryCurrent   string
	SecondaryCurrent string
	RatedVoltage     string
	PrimaryVoltage   string
	SecondaryVoltage string
	OilVolume        string
	TestTemperature  string
	Impedance        string
	Frequency        string
	RelativeHumidity string
	Accuracy         string
	ShortCircuit     string
	Circuit          string
	Pressure         string
	CableSection     string
	HVConnection     string
	LVConnection     string
	PressureMedium   string
	EquipmentType    string
}

// Info is the kind-specific attribute set of a Component.
type Info interface {
	flatten(a *Attributes)
	extract(a Attributes)
}

type GroundingGridInfo struct {
	Location       string `json:"location,omitempty"`
	Identification string `json:"identification,omitempty"`
}

type ResistorInfo struct {
	Location        string `json:"location,omitempty"`
	Tag             string `json:"tag,omitempty"`
	EquipmentType   string `json:"equipmentType,omitempty"`
	ManufactureYear string `json:"manufactureYear,omitempty"`
	SerialNumber    string `json:"serialNumber,omitempty"`
	Manufacturer    string `json:"manufacturer,omitempty"`
	Voltage         string `json:"voltage,omitempty"`
	RatedCurrent    string `json:"ratedCurrent,omitempty"`
}

type SurgeArresterInfo struct {
	Location     string `json:"location,omitempty"`
	Tag          string `json:"tag,omitempty"`
	SerialNumber string `json:"serialNumber,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	RatedVoltage string `json:"ratedVoltage,omitempty"`
	ShortCircuit string `json:"shortCircuit,omitempty"`
}

type CableTerminationInfo struct {
	Location       string `json:"location,omitempty"`
	Identification string `json:"identification,omitempty"`
	Circuit        string `json:"circuit,omitempty"`
	Model          string `json:"model,omitempty"`
	Manufacturer   string `json:"manufacturer,omitempty"`
	Voltage        string `json:"voltage,omitempty"`
	CableSection   string `json:"cableSection,omitempty"`
}

type DisconnectSwitchInfo struct {
	Location       string `json:"location,omitempty"`
	Identification string `json:"identification,omitempty"`
	Model          string `json:"model,omitempty"`
	Manufacturer   string `json:"manufacturer,omitempty"`
	SerialNumber   string `json:"serialNumber,omitempty"`
	RatedVoltage   string `json:"ratedVoltage,omitempty"`
	RatedCurrent   string `json:"ratedCurrent,omitempty"`
}

type HighVoltageBreakerInfo struct {
	DisconnectSwitchInfo
	InsulatingMedium string `json:"insulatingMedium,omitempty"`
	Pressure         string `json:"pressure,omitempty"`
	PressureMedium   string `json:"pressureMedium,omitempty"`
}

type MediumVoltageBreakerInfo struct {
	DisconnectSwitchInfo
	Tag              string `json:"tag,omitempty"`
	InsulatingMedium string `json:"insulatingMedium,omitempty"`
}

type PowerTransformerInfo struct {
	Location         string `json:"location,omitempty"`
	Model            string `json:"model,omitempty"`
	SerialNumber     string `json:"serialNumber,omitempty"`
	Manufacturer     string `json:"manufacturer,omitempty"`
	InsulatingMedium string `json:"insulatingMedium,omitempty"`
	Power            string `json:"power,omitempty"`
	HVConnection     string `json:"hvConnection,omitempty"`
	PrimaryVoltage   string `json:"primaryVoltage,omitempty"`
	SecondaryVoltage string `json:"secondaryVoltage,omitempty"`
	LVConnection     string `json:"lvConnection,omitempty"`
	OilVolume        string `json:"oilVolume,omitempty"`
}

// instrumentTransformerInfo is shared by potential and current transformers.
type instrumentTransformerInfo struct {
	Location         string `json:"location,omitempty"`
	Model            string `json:"model,omitempty"`
	SerialNumber     string `json:"serialNumber,omitempty"`
	Manufacturer     string `json:"manufacturer,omitempty"`
	ManufactureYear  string `json:"manufactureYear,omitempty"`
	InsulatingMedium string `json:"insulatingMedium,omitempty"`
}

type PotentialTransformerInfo struct {
	instrumentTransformerInfo
	PrimaryVoltage   string `json:"primaryVoltage,omitempty"`
	SecondaryVoltage string `json:"secondaryVoltage,omitempty"`
}

type CurrentTransformerInfo struct {
	instrumentTransformerInfo
	PrimaryCurrent   string `json:"primaryCurrent,omitempty"`
	SecondaryCurrent string `json:"secondaryCurrent,omitempty"`
}

type BatteryInfo struct {
	Location     string `json:"location,omitempty"`
	RatedVoltage string `json:"ratedVoltage,omitempty"`
	Model        string `json:"model,omitempty"`
	RatedCurrent string `json:"ratedCurrent,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	SerialNumber string `json:"serialNumber,omitempty"`
	Quantity     int    `json:"quantity"`
}

// GenericInfo covers kinds without a dedicated inspection sheet.
type GenericInfo struct {
	Location       string `json:"location,omitempty"`
	Tag            string `json:"tag,omitempty"`
	Identification string `json:"identification,omitempty"`
	Model          string `json:"model,omitempty"`
	Manufacturer   string `json:"manufacturer,omitempty"`
	SerialNumber   string `json:"serialNumber,omitempty"`
}

func (i *GroundingGridInfo) flatten(a *Attributes) {
	a.Location, a.Identification = i.Location, i.Identification
}

func (i *GroundingGridInfo) extract(a Attributes) {
	i.Location, i.Identification = a.Location, a.Identification
}

func (i *ResistorInfo) flatten(a *Attributes) {
	a.Location, a.Tag, a.EquipmentType = i.Location, i.Tag, i.EquipmentType
	a.ManufactureYear, a.SerialNumber, a.Manufacturer = i.ManufactureYear, i.SerialNumber, i.Manufacturer
	a.Voltage, a.RatedCurrent = i.Voltage, i.RatedCurrent
}

func (i *ResistorInfo) extract(a Attributes) {
	i.Location, i.Tag, i.EquipmentType = a.Location, a.Tag, a.EquipmentType
	i.ManufactureYear, i.SerialNumber, i.Manufacturer = a.ManufactureYear, a.SerialNumber, a.Manufacturer
	i.Voltage, i.RatedCurrent = a.Voltage, a.RatedCurrent
}

func (i *SurgeArresterInfo) flatten(a *Attributes) {
	a.Location, a.Tag, a.SerialNumber = i.Location, i.Tag, i.SerialNumber
	a.Manufacturer, a.RatedVoltage, a.ShortCircuit = i.Manufacturer, i.RatedVoltage, i.ShortCircuit
}

func (i *SurgeArresterInfo) extract(a Attributes) {
	i.Location, i.Tag, i.SerialNumber = a.Location, a.Tag, a.SerialNumber
	i.Manufacturer, i.RatedVoltage, i.ShortCircuit = a.Manufacturer, a.RatedVoltage, a.ShortCircuit
}

func (i *CableTerminationInfo) flatten(a *Attributes) {
	a.Location, a.Identification, a.Circuit = i.Location, i.Identification, i.Circuit
	a.Model, a.Manufacturer = i.Model, i.Manufacturer
	a.Voltage, a.CableSection = i.Voltage, i.CableSection
}

func (i *CableTerminationInfo) extract(a Attributes) {
	i.Location, i.Identification, i.Circuit = a.Location, a.Identification, a.Circuit
	i.Model, i.Manufacturer = a.Model, a.Manufacturer
	i.Voltage, i.CableSection = a.Voltage, a.CableSection
}

func (i *DisconnectSwitchInfo) flatten(a *Attributes) {
	a.Location, a.Identification = i.Location, i.Identification
	a.Model, a.Manufacturer, a.SerialNumber = i.Model, i.Manufacturer, i.SerialNumber
	a.RatedVoltage, a.RatedCurrent = i.RatedVoltage, i.RatedCurrent
}

func (i *DisconnectSwitchInfo) extract(a Attributes) {
	i.Location, i.Identification = a.Location, a.Identification
	i.Model, i.Manufacturer, i.SerialNumber = a.Model, a.Manufacturer, a.SerialNumber
	i.RatedVoltage, i.RatedCurrent = a.RatedVoltage, a.RatedCurrent
}

func (i *HighVoltageBreakerInfo) flatten(a *Attributes) {
	i.DisconnectSwitchInfo.flatten(a)
	a.InsulatingMedium, a.Pressure, a.PressureMedium = i.InsulatingMedium, i.Pressure, i.PressureMedium
}

func (i *HighVoltageBreakerInfo) extract(a Attributes) {
	i.DisconnectSwitchInfo.extract(a)
	i.InsulatingMedium, i.Pressure, i.PressureMedium = a.InsulatingMedium, a.Pressure, a.PressureMedium
}

func (i *MediumVoltageBreakerInfo) flatten(a *Attributes) {
	i.DisconnectSwitchInfo.flatten(a)
	a.Tag, a.InsulatingMedium = i.Tag, i.InsulatingMedium
}

func (i *MediumVoltageBreakerInfo) extract(a Attributes) {
	i.DisconnectSwitchInfo.extract(a)
	i.Tag, i.InsulatingMedium = a.Tag, a.InsulatingMedium
}

func (i *PowerTransformerInfo) flatten(a *Attributes) {
	a.Location, a.Model, a.SerialNumber, a.Manufacturer = i.Location, i.Model, i.SerialNumber, i.Manufacturer
	a.InsulatingMedium, a.Power, a.OilVolume = i.InsulatingMedium, i.Power, i.OilVolume
	a.HVConnection, a.PrimaryVoltage = i.HVConnection, i.PrimaryVoltage
	a.LVConnection, a.SecondaryVoltage = i.LVConnection, i.SecondaryVoltage
}

func (i *PowerTransformerInfo) extract(a Attributes) {
	i.Location, i.Model, i.SerialNumber, i.Manufacturer = a.Location, a.Model, a.SerialNumber, a.Manufacturer
	i.InsulatingMedium, i.Power, i.OilVolume = a.InsulatingMedium, a.Power, a.OilVolume
	i.HVConnection, i.PrimaryVoltage = a.HVConnection, a.PrimaryVoltage
	i.LVConnection, i.SecondaryVoltage = a.LVConnection, a.SecondaryVoltage
}

func (i *instrumentTransformerInfo) flatten(a *Attributes) {
	a.Location, a.Model, a.SerialNumber, a.Manufacturer = i.Location, i.Model, i.SerialNumber, i.Manufacturer
	a.ManufactureYear, a.InsulatingMedium = i.ManufactureYear, i.InsulatingMedium
}

func (i *instrumentTransformerInfo) extract(a Attributes) {
	i.Location, i.Model, i.SerialNumber, i.Manufacturer = a.Location, a.Model, a.SerialNumber, a.Manufacturer
	i.ManufactureYear, i.InsulatingMedium = a.ManufactureYear, a.InsulatingMedium
}

func (i *PotentialTransformerInfo) flatten(a *Attributes) {
	i.instrumentTransformerInfo.flatten(a)
	a.PrimaryVoltage, a.SecondaryVoltage = i.PrimaryVoltage, i.SecondaryVoltage
}

func (i *PotentialTransformerInfo) extract(a Attributes) {
	i.instrumentTransformerInfo.extract(a)
	i.PrimaryVoltage, i.SecondaryVoltage = a.PrimaryVoltage, a.SecondaryVoltage
}

func (i *CurrentTransformerInfo) flatten(a *Attributes) {
	i.instrumentTransformerInfo.flatten(a)
	a.PrimaryCurrent, a.SecondaryCurrent = i.PrimaryCurrent, i.SecondaryCurrent
}

func (i *CurrentTransformerInfo) extract(a Attributes) {
	i.instrumentTransformerInfo.extract(a)
	i.PrimaryCurrent, i.SecondaryCurrent = a.PrimaryCurrent, a.SecondaryCurrent
}

func (i *BatteryInfo) flatten(a *Attributes) {
	a.Location, a.Model, a.Manufacturer, a.SerialNumber = i.Location, i.Model, i.Manufacturer, i.SerialNumber
	a.RatedVoltage, a.RatedCurrent = i.RatedVoltage, i.RatedCurrent
	quantity := i.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	a.Quantity = &quantity
}

func (i *BatteryInfo) extract(a Attributes) {
	i.Location, i.Model, i.Manufacturer, i.SerialNumber = a.Location, a.Model, a.Manufacturer, a.SerialNumber
	i.RatedVoltage, i.RatedCurrent = a.RatedVoltage, a.RatedCurrent
	i.Quantity = 1
	if a.Quantity != nil && *a.Quantity > 0 {
		i.Quantity = *a.Quantity
	}
}

func (i *GenericInfo) flatten(a *Attributes) {
	a.Location, a.Tag, a.Identification = i.Location, i.Tag, i.Identification
	a.Model, a.Manufacturer, a.SerialNumber = i.Model, i.Manufacturer, i.SerialNumber
}

func (i *GenericInfo) extract(a Attributes) {
	i.Location, i.Tag, i.Identification = a.Location, a.Tag, a.Identification
	i.Model, i.Manufacturer, i.SerialNumber = a.Model, a.Manufacturer, a.SerialNumber
}

// emptyInfo returns the zero variant for kind.
func emptyInfo(kind Kind) Info {
	switch kind {
	case KindGroundingGrid:
		return &GroundingGridInfo{}
	case KindResistor:
		return &ResistorInfo{}
	case KindSurgeArrester:
		return &SurgeArresterInfo{}
	case KindCableTermination:
		return &CableTerminationInfo{}
	case KindSwitchHigh, KindSwitchMedium, KindSwitchLow:
		return &DisconnectSwitchInfo{}
	case KindBreakerHigh:
		return &HighVoltageBreakerInfo{}
	case KindBreakerMedium, KindBreakerLow:
		return &MediumVoltageBreakerInfo{}
	case KindTransformerHigh, KindTransformerMedium, KindTransformerLow, KindPowerTransformer:
		return &PowerTransformerInfo{}
	case KindPotentialTransformer:
		return &PotentialTransformerInfo{}
	case KindCurrentTransformer:
		return &CurrentTransformerInfo{}
	case KindBattery:
		return &BatteryInfo{Quantity: 1}
	default:
		return &GenericInfo{}
	}
}

// Flatten writes info into a fresh attribute bag. Attributes the variant does
// not own stay empty.
func Flatten(info Info) Attributes {
	var a Attributes
	if info != nil {
		info.flatten(&a)
	}
	return a
}

// ExtractInfo rebuilds the variant for kind from a stored attribute bag.
func ExtractInfo(kind Kind, a Attributes) (Info, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	info := emptyInfo(kind)
	info.extract(a)
	return info, nil
}

// DecodeInfo parses a JSON attribute object into the variant for kind.
// Unknown keys are ignored; an empty payload yields the empty variant.
func DecodeInfo(kind Kind, raw []byte) (Info, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	info := emptyInfo(kind)
	if len(raw) == 0 || string(raw) == "null" {
		return info, nil
	}
	if err := json.Unmarshal(raw, info); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("info", fmt.Errorf("%s: %w", kind, err))
	}
	if b, ok := info.(*BatteryInfo); ok && b.Quantity <= 0 {
		b.Quantity = 1
	}
	return info, nil
}

// infoFits reports whether info is the variant kind selects.
func infoFits(kind Kind, info Info) bool {
	return fmt.Sprintf("%T", emptyInfo(kind)) == fmt.Sprintf("%T", info)
}
