// Package services provides domain services that coordinate business rules
// spanning more than one aggregate of the marketplace.
//
// The package includes:
//   - AccessGuard: ownership and chat participation checks with administrator bypass
//   - LifecycleCoordinator: keeps an order and the assigned performer's reply in step
//     through assignment, completion claims, corrections and confirmation
package services
