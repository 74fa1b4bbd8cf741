// Package kernel provides core domain primitives for the order workflow
// service. It implements fundamental building blocks following
// Domain-Driven Design principles that are used throughout the domain model.
//
// The package includes:
//   - OrderID: a time-derived order identifier, unique per clock tick
//   - Token: an opaque, single-use resumption capability that authorizes
//     advancing a paused workflow run to its next state
//
// These primitives enforce domain invariants and validation rules and are
// immutable and safe for concurrent use.
package kernel
