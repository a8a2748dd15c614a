package services

import (
	"slices"

	"maintenance/internal/core/domain/model/kernel"
)

// IdentifierClassifier decides whether a submitted child reference denotes a
// persisted child of a given parent.
//
// A reference is existing only when it parses as a UUID and belongs to the
// parent's persisted children. Temporary client-side keys, malformed ids and
// ids of other parents all classify as new, so a spoofed id can never update
// a row outside the parent.
type IdentifierClassifier struct{}

func NewIdentifierClassifier() IdentifierClassifier {
	return IdentifierClassifier{}
}

// Classify returns the persisted id and true for an existing child.
func (IdentifierClassifier) Classify(ref string, owned []kernel.UUID) (kernel.UUID, bool) {
	if ref == "" {
		return kernel.UUID{}, false
	}
	id, err := kernel.UUIDFromString(ref)
	if err != nil {
		return kernel.UUID{}, false
	}
	if !slices.Contains(owned, id) {
		return kernel.UUID{}, false
	}
	return id, true
}
