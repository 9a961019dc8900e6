// Package reply provides the Reply aggregate: a performer's offer to work on
// an order. A reply is the only path by which a performer becomes eligible
// for assignment, and at most one reply exists per order and performer.
package reply

import (
	"errors"
	"time"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/order"
	"freelance/internal/pkg/errs"
)

var ErrReplyIsNotConstructed = errors.New("Reply must be created via NewReply constructor")

const EventReplyCreated = "reply.created"

// ReplyCreated is recorded when a performer replies to an order.
type ReplyCreated struct {
	kernel.EventHeader
	order.Participants
}

type Reply struct {
	kernel.EventRecorder

	id          kernel.ID
	orderID     kernel.ID
	performerID kernel.ID

	approvedByCustomer bool
	doneThisTask       bool
	onCustomer         bool
	donned             bool

	createdAt time.Time
	version   int

	isConstructed bool
}

// NewReply creates performerID's reply to target. The order must still accept
// replies; uniqueness per performer is checked by the caller against the
// repository and enforced by the storage.
func NewReply(target *order.Order, performerID kernel.ID, now time.Time) (*Reply, error) {
	if err := errors.Join(target.Validate(), performerID.Validate()); err != nil {
		return nil, err
	}
	if err := target.AcceptsReplies(); err != nil {
		return nil, err
	}

	r := &Reply{
		orderID:       target.ID(),
		performerID:   performerID,
		createdAt:     now,
		isConstructed: true,
	}
	r.Record(ReplyCreated{
		EventHeader: kernel.NewEventHeader(EventReplyCreated, now),
		Participants: order.Participants{
			OrderID:     target.ID(),
			Title:       target.Title(),
			CustomerID:  target.CustomerID(),
			PerformerID: performerID,
		},
	})
	return r, nil
}

// Flags groups the boolean progress markers of a reply for restoration.
type Flags struct {
	ApprovedByCustomer bool
	DoneThisTask       bool
	OnCustomer         bool
	Donned             bool
}

func RestoreReply(id, orderID, performerID kernel.ID, flags Flags, createdAt time.Time, version int) (*Reply, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), performerID.Validate()); err != nil {
		return nil, err
	}

	return &Reply{
		id:                 id,
		orderID:            orderID,
		performerID:        performerID,
		approvedByCustomer: flags.ApprovedByCustomer,
		doneThisTask:       flags.DoneThisTask,
		onCustomer:         flags.OnCustomer,
		donned:             flags.Donned,
		createdAt:          createdAt,
		version:            version,
		isConstructed:      true,
	}, nil
}

func (r *Reply) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReplyIsNotConstructed
	}
	return nil
}

func (r *Reply) ID() kernel.ID          { return r.id }
func (r *Reply) OrderID() kernel.ID     { return r.orderID }
func (r *Reply) PerformerID() kernel.ID { return r.performerID }
func (r *Reply) CreatedAt() time.Time   { return r.createdAt }
func (r *Reply) Version() int           { return r.version }

func (r *Reply) Flags() Flags {
	return Flags{
		ApprovedByCustomer: r.approvedByCustomer,
		DoneThisTask:       r.doneThisTask,
		OnCustomer:         r.onCustomer,
		Donned:             r.donned,
	}
}

func (r *Reply) IsDonned() bool       { return r.donned }
func (r *Reply) IsDoneThisTask() bool { return r.doneThisTask }
func (r *Reply) IsOnCustomer() bool   { return r.onCustomer }

func (r *Reply) IdentifyAs(id kernel.ID) {
	if r.id.IsZero() {
		r.id = id
	}
}

func (r *Reply) MarkPersisted() {
	r.version++
}

// ApproveByCustomer syncs the reply with the customer's assignment.
func (r *Reply) ApproveByCustomer() {
	r.approvedByCustomer = true
	r.onCustomer = true
}

// MarkDone records the performer's "I finished" claim.
func (r *Reply) MarkDone() error {
	if !r.onCustomer {
		return errs.NewInvalidStateError("reply", "NOT_ASSIGNED", "mark done")
	}
	if r.donned {
		return errs.NewInvalidStateError("reply", "DONNED", "mark done")
	}
	r.doneThisTask = true
	return nil
}

// ResetDone withdraws the finished claim after a correction request.
func (r *Reply) ResetDone() {
	r.doneThisTask = false
}

// Finalize makes the reply terminal once the customer confirms the order done.
func (r *Reply) Finalize() {
	r.donned = true
	r.doneThisTask = false
}

// EnsureWithdrawable rejects withdrawal of the reply of the performer still
// working on target; such replies are removed only by a refusal. Donned
// replies and replies of unassigned performers may always be withdrawn.
func (r *Reply) EnsureWithdrawable(target *order.Order) error {
	if r.donned {
		return nil
	}
	if target != nil && target.IsAssignedTo(r.performerID) {
		return errs.NewInvalidStateError("reply", target.Status().String(), "withdraw assigned")
	}
	return nil
}

// EnsureDonned guards the completed-only deletion path.
func (r *Reply) EnsureDonned() error {
	if !r.donned {
		return errs.NewInvalidStateError("reply", "NOT_DONNED", "delete as completed")
	}
	return nil
}
