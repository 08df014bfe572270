// Package testing provides test helpers for consumers of the fleetslot library.
//
// It exports an in-memory types.Store with the same conditional-update
// semantics as the relational store, plus fault-injection knobs for
// simulating racing allocator calls and storage failures, and a Logger that
// routes output through testing.T.
//
// This package is intended for use in _test.go files only.
package testing
