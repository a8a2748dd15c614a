package order

import (
	"fmt"
	"slices"

	"maintenance/internal/pkg/errs"
)

type ServiceType string

const (
	ServicePreventive   ServiceType = "MANUTENCAO_PREVENTIVA"
	ServiceCorrective   ServiceType = "MANUTENCAO_CORRETIVA"
	ServicePredictive   ServiceType = "MANUTENCAO_PREDITIVA"
	ServicePhotographic ServiceType = "FOTOGRAFICO"
	ServiceThermography ServiceType = "TERMOGRAFIA"
	ServicePPETest      ServiceType = "ENSAIO_EPI"
	ServiceInstallation ServiceType = "INSTALACAO"
	ServiceInspection   ServiceType = "INSPECAO"
	ServiceRenovation   ServiceType = "REFORMA"
	ServiceOther        ServiceType = "OUTRO"
)

var validServiceTypes = []ServiceType{
	ServicePreventive, ServiceCorrective, ServicePredictive, ServicePhotographic, ServiceThermography,
	ServicePPETest, ServiceInstallation, ServiceInspection, ServiceRenovation, ServiceOther,
}

func (t ServiceType) Validate() error {
	if !slices.Contains(validServiceTypes, t) {
		return errs.NewValueIsInvalidErrorWithCause("serviceType", fmt.Errorf("unknown service type %q", string(t)))
	}
	return nil
}
