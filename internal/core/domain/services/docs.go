// Package services holds domain logic that spans aggregates: classifying
// submitted identifiers, planning a hierarchy reconciliation, and deciding
// which orders an actor may see.
package services
