package order

import "freelance/internal/core/domain/model/kernel"

const (
	EventPerformerAssigned   = "order.performer_assigned"
	EventPerformerRefused    = "order.performer_refused"
	EventWorkSubmitted       = "order.work_submitted"
	EventOrderCompleted      = "order.completed"
	EventCorrectionRequested = "order.correction_requested"
)

// Participants names both sides of an order at the moment of the event.
type Participants struct {
	OrderID     kernel.ID
	Title       string
	CustomerID  kernel.ID
	PerformerID kernel.ID
}

// PerformerAssigned is recorded when the customer picks a performer.
type PerformerAssigned struct {
	kernel.EventHeader
	Participants
}

// PerformerRefused is recorded when either side breaks off the assignment.
// RefusedBy tells the listeners which side must be informed.
type PerformerRefused struct {
	kernel.EventHeader
	Participants
	RefusedBy kernel.Role
}

// WorkSubmitted is recorded when the performer claims the task is finished.
type WorkSubmitted struct {
	kernel.EventHeader
	Participants
}

// OrderCompleted is recorded when the customer confirms the order done.
type OrderCompleted struct {
	kernel.EventHeader
	Participants
}

// CorrectionRequested is recorded when the customer returns checked work.
type CorrectionRequested struct {
	kernel.EventHeader
	Participants
}

func (o *Order) participants(performerID kernel.ID) Participants {
	return Participants{
		OrderID:     o.id,
		Title:       o.details.title,
		CustomerID:  o.customerID,
		PerformerID: performerID,
	}
}
