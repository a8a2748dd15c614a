package kernel

import (
	"errors"
	"slices"
)

var ErrRelationSyncIsInvalid = errors.New("relation sync does not fit a to-one relation")

type SyncOp int

const (
	SyncKeep SyncOp = iota
	SyncSet
	SyncConnect
	SyncDisconnect
)

func (o SyncOp) String() string {
	switch o {
	case SyncSet:
		return "set"
	case SyncConnect:
		return "connect"
	case SyncDisconnect:
		return "disconnect"
	default:
		return "keep"
	}
}

// RelationSync describes one update to a relation. The zero value keeps the
// relation as it is.
//
//   - Set replaces the relation with exactly the given ids.
//   - Connect adds ids that are not present yet.
//   - Disconnect removes the given ids, or everything when none are given.
type RelationSync[T comparable] struct {
	op  SyncOp
	ids []T
}

func Set[T comparable](ids ...T) RelationSync[T] {
	return RelationSync[T]{op: SyncSet, ids: dedup(ids)}
}

func Connect[T comparable](ids ...T) RelationSync[T] {
	return RelationSync[T]{op: SyncConnect, ids: dedup(ids)}
}

func Disconnect[T comparable](ids ...T) RelationSync[T] {
	return RelationSync[T]{op: SyncDisconnect, ids: dedup(ids)}
}

func (r RelationSync[T]) Op() SyncOp {
	return r.op
}

func (r RelationSync[T]) IDs() []T {
	return slices.Clone(r.ids)
}

func (r RelationSync[T]) IsKeep() bool {
	return r.op == SyncKeep
}

// Apply returns the relation after the update. current is not modified.
func (r RelationSync[T]) Apply(current []T) []T {
	switch r.op {
	case SyncSet:
		return slices.Clone(r.ids)
	case SyncConnect:
		out := slices.Clone(current)
		for _, id := range r.ids {
			if !slices.Contains(out, id) {
				out = append(out, id)
			}
		}
		return out
	case SyncDisconnect:
		if len(r.ids) == 0 {
			return []T{}
		}
		return slices.DeleteFunc(slices.Clone(current), func(id T) bool {
			return slices.Contains(r.ids, id)
		})
	default:
		return slices.Clone(current)
	}
}

// Added lists the ids present after Apply that were not in current.
func (r RelationSync[T]) Added(current []T) []T {
	return difference(r.Apply(current), current)
}

// Removed lists the ids of current that Apply drops.
func (r RelationSync[T]) Removed(current []T) []T {
	return difference(current, r.Apply(current))
}

// ApplyOne interprets the update against a to-one relation. Set and Connect
// must carry exactly one id; Disconnect clears it.
func (r RelationSync[T]) ApplyOne(current *T) (*T, error) {
	switch r.op {
	case SyncKeep:
		return current, nil
	case SyncDisconnect:
		return nil, nil
	default:
		if len(r.ids) != 1 {
			return nil, ErrRelationSyncIsInvalid
		}
		id := r.ids[0]
		return &id, nil
	}
}

func difference[T comparable](a, b []T) []T {
	out := make([]T, 0)
	for _, id := range a {
		if !slices.Contains(b, id) {
			out = append(out, id)
		}
	}
	return out
}

func dedup[T comparable](ids []T) []T {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
