// Package services provides domain services that orchestrate business
// operations across domain entities in the order workflow.
//
// The package includes:
//   - WorkflowEngine: the state-machine driver that starts workflow runs
//     and decides token-gated transitions
//
// Domain services here are pure: they mint identifiers and tokens and make
// transition decisions, but perform no I/O. Persistence and event publishing
// are applied by the use-case layer through the Order State Updater.
package services
