// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read the tables directly and return flat read models; they never
// load aggregates and never write.
package queries

import (
	"errors"
	"time"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/order"
	"freelance/internal/pkg/guard"
)

var (
	ErrListCustomerOrdersQueryIsNotConstructed = errors.New(
		"ListCustomerOrdersQuery must be created via NewListCustomerOrdersQuery constructor",
	)
	ErrListPerformerOrdersQueryIsNotConstructed = errors.New(
		"ListPerformerOrdersQuery must be created via NewListPerformerOrdersQuery constructor",
	)
)

// ListCustomerOrdersQuery lists the orders of the customer behind caller,
// newest first, without the ones the customer soft-deleted.
//
// Example:
//
//	query, err := NewListCustomerOrdersQuery(caller)
//	if err != nil {
//	    return err
//	}
//	orders, err := NewListCustomerOrdersQueryHandler(db).Handle(ctx, query)
type ListCustomerOrdersQuery struct {
	caller kernel.Caller
	guard  guard.ConstructorGuard
}

func NewListCustomerOrdersQuery(caller kernel.Caller) (ListCustomerOrdersQuery, error) {
	if err := caller.Validate(); err != nil {
		return ListCustomerOrdersQuery{}, err
	}
	return ListCustomerOrdersQuery{caller: caller, guard: guard.NewConstructorGuard()}, nil
}

func (q ListCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerOrdersQueryIsNotConstructed)
}

// ListPerformerOrdersQuery lists the orders assigned to the performer behind
// caller. Completed orders stay listed after their customer hid them.
type ListPerformerOrdersQuery struct {
	caller kernel.Caller
	guard  guard.ConstructorGuard
}

func NewListPerformerOrdersQuery(caller kernel.Caller) (ListPerformerOrdersQuery, error) {
	if err := caller.Validate(); err != nil {
		return ListPerformerOrdersQuery{}, err
	}
	return ListPerformerOrdersQuery{caller: caller, guard: guard.NewConstructorGuard()}, nil
}

func (q ListPerformerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListPerformerOrdersQueryIsNotConstructed)
}

// OrderView is the read model of an order in listings.
type OrderView struct {
	ID          kernel.ID
	CustomerID  kernel.ID
	PerformerID *kernel.ID
	Title       string
	Description string
	Scope       string
	TechStack   string
	Budget      int64
	Status      order.Status
	PublishedAt time.Time
	StartedAt   *time.Time
	EndedAt     *time.Time
	ReplyBind   int
}
