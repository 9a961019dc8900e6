// Package order provides the Order aggregate root of the marketplace and its
// lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root owned by a customer and optionally assigned to a performer
//   - Status: the state machine driving the order through publication, work and completion
//   - Details: the customer-supplied description of the job
//   - lifecycle events recorded on every transition with a counterparty-visible effect
//
// Key business rules:
//   - a performer is assigned if and only if the status is InProcess, OnCheck or Done
//   - only Active orders accept replies and assignment
//   - deactivation is impossible while a performer is assigned
//   - soft deletion hides the order from its customer only and never changes the status
package order
