// Package client models the equipment hierarchy an order is issued against:
// a Client owns Substations, a Substation owns Components, and each Component
// carries an Info variant selected by its Kind.
package client
