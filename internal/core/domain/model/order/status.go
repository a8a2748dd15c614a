package order

import (
	"errors"
	"fmt"
	"slices"

	"maintenance/internal/pkg/errs"
)

var ErrTransitionIsNotAllowed = errors.New("status transition is not allowed")

// Status is the lifecycle state of an order.
//
//	ABERTA ──> EM_ANDAMENTO <──> AGUARDANDO_PECAS / PENDENCIA
//	                 │                     │
//	                 └──> AGUARDANDO_REVISAO <┘   (RequestFinalization)
//	                          │
//	                          └──> AGUARDANDO_APROVACAO   (Review)
//	                                   │
//	                                   └──> FINALIZADA   (Approve)
//
// Every non-terminal status may be cancelled into CANCELADA.
type Status int

const (
	Unknown Status = iota
	Open
	InProgress
	AwaitingParts
	Pending
	AwaitingReview
	AwaitingApproval
	Finalized
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "UNKNOWN",
		Open:             "ABERTA",
		InProgress:       "EM_ANDAMENTO",
		AwaitingParts:    "AGUARDANDO_PECAS",
		Pending:          "PENDENCIA",
		AwaitingReview:   "AGUARDANDO_REVISAO",
		AwaitingApproval: "AGUARDANDO_APROVACAO",
		Finalized:        "FINALIZADA",
		Cancelled:        "CANCELADA",
	}
}

func getValidStatusStrings() map[Status]string {
	valid := getStatusStrings()
	delete(valid, Unknown)
	return valid
}

// operationalEdges are the moves the generic update path may make.
func operationalEdges() map[Status][]Status {
	return map[Status][]Status{
		Open:          {InProgress},
		InProgress:    {AwaitingParts, Pending},
		AwaitingParts: {InProgress, Pending, AwaitingParts},
		Pending:       {InProgress, Pending, AwaitingParts},
	}
}

func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Open, InProgress, AwaitingParts, Pending, AwaitingReview, AwaitingApproval, Finalized, Cancelled}
}

func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// IsTerminal reports FINALIZADA and CANCELADA.
func (s Status) IsTerminal() bool {
	return s == Finalized || s == Cancelled
}

func (s Status) notAllowed(action string) error {
	return fmt.Errorf("%w: %s cannot %s", ErrTransitionIsNotAllowed, s, action)
}

func (s Status) RequestFinalization() (Status, error) {
	if !slices.Contains([]Status{InProgress, AwaitingParts, Pending}, s) {
		return Unknown, s.notAllowed("request finalization")
	}
	return AwaitingReview, nil
}

func (s Status) Review() (Status, error) {
	if s != AwaitingReview {
		return Unknown, s.notAllowed("be reviewed")
	}
	return AwaitingApproval, nil
}

func (s Status) Approve() (Status, error) {
	if s != AwaitingApproval {
		return Unknown, s.notAllowed("be approved")
	}
	return Finalized, nil
}

func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() || s.Validate() != nil {
		return Unknown, s.notAllowed("be cancelled")
	}
	return Cancelled, nil
}

// MoveTo applies an operational move requested through the generic update path.
// Workflow statuses are reachable only through their dedicated transitions.
func (s Status) MoveTo(target Status) (Status, error) {
	if !slices.Contains(operationalEdges()[s], target) {
		return Unknown, s.notAllowed("move to " + target.String())
	}
	return target, nil
}
