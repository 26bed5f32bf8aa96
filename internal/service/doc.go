// Package service groups destinations into named, mutable candidate sets.
// A service keeps set semantics (no duplicates, no-op removal of absent
// members) and a stable insertion order, which is the enumeration order
// balancing policies observe.
package service
