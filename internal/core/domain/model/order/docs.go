// Package order models the service order and its approval workflow.
//
// An order is opened against part of a client's equipment hierarchy, worked
// through the operational statuses, and then finalized through three
// dedicated steps: a finalization request, an administrative review and a
// final approval carrying the conclusion. Role checks always run before
// status checks, and every rejected operation leaves the order unchanged.
package order
