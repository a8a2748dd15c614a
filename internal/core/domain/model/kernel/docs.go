// Package kernel holds the primitives shared by every aggregate: identifiers,
// the clock, and RelationSync, the tagged operation used to update
// to-many and to-one references.
package kernel
