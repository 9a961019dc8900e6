package order

import (
	"errors"
	"time"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Timeline holds the moments an order was published, taken into work and finished.
type Timeline struct {
	PublishedAt time.Time
	StartedAt   *time.Time
	EndedAt     *time.Time
}

// Order is a job posted by a customer. It is the aggregate root for the
// lifecycle engine: every status change, assignment and refusal goes through
// its methods, which enforce the transitions of Status and record the events
// the notification dispatcher reacts to.
//
// Order follows these invariants:
//   - it always belongs to a customer
//   - a performer is assigned if and only if the status requires one
//   - version grows by one with every persisted update
type Order struct {
	kernel.EventRecorder

	id         kernel.ID
	customerID kernel.ID

	// performerID is nil while the order is not assigned
	performerID *kernel.ID

	details  Details
	status   Status
	timeline Timeline

	// deletedByCustomer hides the order from its customer only
	deletedByCustomer bool

	// replyBind counts live replies. It is advisory and maintained by the
	// repository with atomic increments; the reply table is authoritative.
	replyBind int

	version int

	isConstructed bool
}

// NewOrder publishes a new order for customerID. The order starts Active with
// no performer and receives its ID when added to the repository.
func NewOrder(customerID kernel.ID, details Details, now time.Time) (*Order, error) {
	if err := errors.Join(customerID.Validate(), details.Validate()); err != nil {
		return nil, err
	}

	return &Order{
		customerID:    customerID,
		details:       details,
		status:        Active,
		timeline:      Timeline{PublishedAt: now},
		isConstructed: true,
	}, nil
}

// RestoreOrder rebuilds an order from persisted state and re-checks its invariants.
func RestoreOrder(
	id, customerID kernel.ID,
	details Details,
	performerID *kernel.ID,
	status Status,
	deletedByCustomer bool,
	timeline Timeline,
	replyBind, version int,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if err := status.ValidateCanHavePerformer(performerID != nil); err != nil {
		return nil, err
	}

	return &Order{
		id:                id,
		customerID:        customerID,
		performerID:       performerID,
		details:           details,
		status:            status,
		timeline:          timeline,
		deletedByCustomer: deletedByCustomer,
		replyBind:         replyBind,
		version:           version,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Order was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.ID             { return o.id }
func (o *Order) CustomerID() kernel.ID     { return o.customerID }
func (o *Order) Performer() *kernel.ID     { return o.performerID }
func (o *Order) Details() Details          { return o.details }
func (o *Order) Title() string             { return o.details.title }
func (o *Order) Status() Status            { return o.status }
func (o *Order) Timeline() Timeline        { return o.timeline }
func (o *Order) IsDeletedByCustomer() bool { return o.deletedByCustomer }
func (o *Order) ReplyBind() int            { return o.replyBind }
func (o *Order) Version() int              { return o.version }
func (o *Order) HasPerformer() bool        { return o.performerID != nil }
func (o *Order) IsEqual(other *Order) bool { return other != nil && o.id == other.id }

// IsAssignedTo reports whether performerID currently works on the order.
func (o *Order) IsAssignedTo(performerID kernel.ID) bool {
	return o.performerID != nil && *o.performerID == performerID
}

// IdentifyAs sets the database-assigned identity once.
func (o *Order) IdentifyAs(id kernel.ID) {
	if o.id.IsZero() {
		o.id = id
	}
}

// MarkPersisted advances the optimistic lock version after a successful update.
func (o *Order) MarkPersisted() {
	o.version++
}

// AcceptsReplies reports whether performers may still reply to the order.
func (o *Order) AcceptsReplies() error {
	if o.deletedByCustomer {
		return errs.NewInvalidStateError("order", "DELETED", "reply to")
	}
	if o.status != Active {
		return errs.NewInvalidStateError("order", o.status.String(), "reply to")
	}
	return nil
}

// Deactivate removes the order from the public listing without deleting it.
func (o *Order) Deactivate() error {
	if o.performerID != nil {
		return errs.NewInvalidStateError("order", o.status.String(), "deactivate assigned")
	}
	status, err := o.status.Deactivate()
	if err != nil {
		return err
	}
	o.status = status
	return nil
}

// Activate publishes a deactivated order again.
func (o *Order) Activate() error {
	status, err := o.status.Activate()
	if err != nil {
		return err
	}
	o.status = status
	return nil
}

// SoftDeleteByCustomer hides the order from its customer. Idempotent.
func (o *Order) SoftDeleteByCustomer() {
	o.deletedByCustomer = true
}

// AssignPerformer takes the order into work with performerID.
func (o *Order) AssignPerformer(performerID kernel.ID, now time.Time) error {
	if err := performerID.Validate(); err != nil {
		return err
	}
	if o.deletedByCustomer {
		return errs.NewInvalidStateError("order", "DELETED", "assign")
	}

	status, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = status
	o.performerID = kernel.IDPtr(performerID)
	o.timeline.StartedAt = &now
	o.timeline.EndedAt = nil

	o.Record(PerformerAssigned{
		EventHeader:  kernel.NewEventHeader(EventPerformerAssigned, now),
		Participants: o.participants(performerID),
	})
	return nil
}

// RefusePerformer breaks off the assignment on behalf of by and publishes the
// order again. It returns the performer that was released.
func (o *Order) RefusePerformer(by kernel.Role, now time.Time) (kernel.ID, error) {
	if o.performerID == nil {
		return 0, errs.NewInvalidStateError("order", o.status.String(), "refuse unassigned")
	}

	status, err := o.status.Refuse()
	if err != nil {
		return 0, err
	}

	released := *o.performerID
	o.status = status
	o.performerID = nil
	o.timeline.StartedAt = nil

	o.Record(PerformerRefused{
		EventHeader:  kernel.NewEventHeader(EventPerformerRefused, now),
		Participants: o.participants(released),
		RefusedBy:    by,
	})
	return released, nil
}

// SubmitForCheck records the performer's claim that the work is finished.
func (o *Order) SubmitForCheck(performerID kernel.ID, now time.Time) error {
	if !o.IsAssignedTo(performerID) {
		return errs.NewInvalidStateError("order", o.status.String(), "submit work of unassigned performer for")
	}

	status, err := o.status.Submit()
	if err != nil {
		return err
	}
	o.status = status

	o.Record(WorkSubmitted{
		EventHeader:  kernel.NewEventHeader(EventWorkSubmitted, now),
		Participants: o.participants(performerID),
	})
	return nil
}

// SetOnCheck moves the order between InProcess and OnCheck without side
// effects. Setting the current value is a no-op.
func (o *Order) SetOnCheck(onCheck bool) error {
	if o.performerID == nil {
		return errs.NewInvalidStateError("order", o.status.String(), "check unassigned")
	}
	if onCheck == (o.status == OnCheck) {
		return nil
	}

	var (
		status Status
		err    error
	)
	if onCheck {
		status, err = o.status.Submit()
	} else {
		status, err = o.status.ReturnToWork()
	}
	if err != nil {
		return err
	}
	o.status = status
	return nil
}

// Complete accepts the performer's work.
func (o *Order) Complete(now time.Time) error {
	if o.performerID == nil {
		return errs.NewInvalidStateError("order", o.status.String(), "complete unassigned")
	}

	status, err := o.status.Complete()
	if err != nil {
		return err
	}
	o.status = status
	o.timeline.EndedAt = &now

	o.Record(OrderCompleted{
		EventHeader:  kernel.NewEventHeader(EventOrderCompleted, now),
		Participants: o.participants(*o.performerID),
	})
	return nil
}

// RequestCorrection returns checked work to performerID.
func (o *Order) RequestCorrection(performerID kernel.ID, now time.Time) error {
	if !o.IsAssignedTo(performerID) {
		return errs.NewInvalidStateError("order", o.status.String(), "request correction from unassigned performer for")
	}

	status, err := o.status.ReturnToWork()
	if err != nil {
		return err
	}
	o.status = status

	o.Record(CorrectionRequested{
		EventHeader:  kernel.NewEventHeader(EventCorrectionRequested, now),
		Participants: o.participants(performerID),
	})
	return nil
}
