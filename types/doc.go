// Package types contains the core types and interfaces for the fleetslot library.
//
// This package exists to break import cycles: internal packages depend on
// types without depending on the root fleetslot package, while the root
// package re-exports the definitions here through type aliases for a
// convenient public API (fleetslot.Clone, fleetslot.Store, etc.).
//
// Most users should import the root fleetslot package instead of this one.
package types
