package client

import (
	"fmt"
	"slices"

	"maintenance/internal/pkg/errs"
)

// Kind is the equipment type of a Component. It selects the Info variant.
type Kind string

const (
	KindGroundingGrid        Kind = "MALHA"
	KindResistor             Kind = "RESISTOR"
	KindSurgeArrester        Kind = "PARARAIO"
	KindCableTermination     Kind = "CABOMUFLA"
	KindSwitchHigh           Kind = "CHAVE_SECCIONADORA_ALTA"
	KindSwitchMedium         Kind = "CHAVE_SECCIONADORA_MEDIA"
	KindSwitchLow            Kind = "CHAVE_SECCIONADORA_BAIXA"
	KindBreakerHigh          Kind = "DISJUNTOR_ALTA"
	KindBreakerMedium        Kind = "DISJUNTOR_MEDIA"
	KindBreakerLow           Kind = "DISJUNTOR_BAIXA"
	KindTransformerHigh      Kind = "TRAFO_ALTA"
	KindCurrentTransformer   Kind = "TRAFO_CORRENTE"
	KindPotentialTransformer Kind = "TRAFO_POTENCIAL"
	KindPowerTransformer     Kind = "TRAFO_FORCA"
	KindTransformerMedium    Kind = "TRAFO_MEDIA"
	KindTransformerLow       Kind = "TRAFO_BAIXA"
	KindBattery              Kind = "BATERIA"
	KindCapacitor            Kind = "CAPACITOR"
	KindBushing              Kind = "BUCHA"
	KindRelay                Kind = "RELE"
	KindOther                Kind = "OUTRO"
)

var validKinds = []Kind{
	KindGroundingGrid, KindResistor, KindSurgeArrester, KindCableTermination,
	KindSwitchHigh, KindSwitchMedium, KindSwitchLow,
	KindBreakerHigh, KindBreakerMedium, KindBreakerLow,
	KindTransformerHigh, KindCurrentTransformer, KindPotentialTransformer,
	KindPowerTransformer, KindTransformerMedium, KindTransformerLow,
	KindBattery, KindCapacitor, KindBushing, KindRelay, KindOther,
}

// fieldOrder is the order inspection sheets walk a substation in.
var fieldOrder = []Kind{
	KindGroundingGrid, KindResistor, KindSurgeArrester, KindCableTermination,
	KindSwitchHigh, KindSwitchMedium, KindSwitchLow,
	KindBreakerHigh, KindBreakerMedium,
	KindTransformerHigh, KindPotentialTransformer, KindPowerTransformer,
	KindCurrentTransformer, KindTransformerMedium, KindBattery,
}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

func Kinds() []Kind {
	return slices.Clone(validKinds)
}

func (k Kind) Validate() error {
	if !slices.Contains(validKinds, k) {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("unknown component kind %q", string(k)))
	}
	return nil
}

func (k Kind) String() string {
	return string(k)
}

// compareFieldOrder sorts kinds in inspection order; kinds outside it go last, alphabetically.
func compareFieldOrder(a, b Kind) int {
	ia, ib := slices.Index(fieldOrder, a), slices.Index(fieldOrder, b)
	switch {
	case ia >= 0 && ib >= 0:
		return ia - ib
	case ia >= 0:
		return -1
	case ib >= 0:
		return 1
	default:
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	}
}
