package services

import (
	"errors"
	"time"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/order"
	"freelance/internal/core/domain/model/reply"
	"freelance/internal/pkg/errs"
)

// LifecycleCoordinator moves an order and the reply of its performer
// together, so the reply flags never disagree with the order status.
//
// Example usage:
//
//	coordinator := services.NewLifecycleCoordinator()
//	if err := coordinator.Assign(o, r, now); err != nil {
//	    return err
//	}
//	// persist both o and r in the same unit of work
type LifecycleCoordinator struct{}

func NewLifecycleCoordinator() LifecycleCoordinator {
	return LifecycleCoordinator{}
}

func (LifecycleCoordinator) ensurePair(o *order.Order, r *reply.Reply) error {
	if err := errors.Join(o.Validate(), r.Validate()); err != nil {
		return err
	}
	if r.OrderID() != o.ID() {
		return errs.NewInvalidStateError("reply", "FOREIGN", "use with order "+o.ID().String())
	}
	return nil
}

// Assign takes o into work with the author of r.
func (c LifecycleCoordinator) Assign(o *order.Order, r *reply.Reply, now time.Time) error {
	if err := c.ensurePair(o, r); err != nil {
		return err
	}
	if err := o.AssignPerformer(r.PerformerID(), now); err != nil {
		return err
	}
	r.ApproveByCustomer()
	return nil
}

// SubmitWork applies the performer's completion claim carried by r.
func (c LifecycleCoordinator) SubmitWork(o *order.Order, r *reply.Reply, now time.Time) error {
	if err := c.ensurePair(o, r); err != nil {
		return err
	}
	if err := o.SubmitForCheck(r.PerformerID(), now); err != nil {
		return err
	}
	return r.MarkDone()
}

// Confirm accepts the work and makes the reply terminal.
func (c LifecycleCoordinator) Confirm(o *order.Order, r *reply.Reply, now time.Time) error {
	if err := c.ensurePair(o, r); err != nil {
		return err
	}
	if !o.IsAssignedTo(r.PerformerID()) {
		return errs.NewInvalidStateError("reply", "NOT_ASSIGNED", "confirm")
	}
	if err := o.Complete(now); err != nil {
		return err
	}
	r.Finalize()
	return nil
}

// ReturnForCorrection sends checked work back to the performer of r.
func (c LifecycleCoordinator) ReturnForCorrection(o *order.Order, r *reply.Reply, now time.Time) error {
	if err := c.ensurePair(o, r); err != nil {
		return err
	}
	if err := o.RequestCorrection(r.PerformerID(), now); err != nil {
		return err
	}
	r.ResetDone()
	return nil
}

// Refuse releases the assigned performer on behalf of by and returns the
// released performer; the caller deletes that performer's reply.
func (LifecycleCoordinator) Refuse(o *order.Order, by kernel.Role, now time.Time) (kernel.ID, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}
	return o.RefusePerformer(by, now)
}
