// Package kernel provides core domain primitives shared by every aggregate of
// the marketplace.
//
// The package includes:
//   - ID: the database-assigned integer identity of orders, replies, chats and parties
//   - Role and Caller: who performs an operation, as yielded by the auth provider
//   - UUID: a value object identifying domain events
//   - Event and EventRecorder: lifecycle events collected from aggregates after commit
//   - Clock: the source of "now" for lifecycle timestamps
//
// These primitives are immutable and safe for concurrent use.
package kernel
