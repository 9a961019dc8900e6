// Package review provides WorkExperience, the review a performer leaves for
// an order they completed.
package review

import (
	"errors"
	"strings"
	"time"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/order"
	"freelance/internal/pkg/errs"
)

const (
	MinRate = 1
	MaxRate = 5
)

var ErrWorkExperienceIsNotConstructed = errors.New("WorkExperience must be created via NewWorkExperience")

// Body is the author-supplied part of a review.
type Body struct {
	Name string
	Rate int
	Text string
}

func (b Body) validate() (Body, error) {
	b.Name = strings.TrimSpace(b.Name)
	b.Text = strings.TrimSpace(b.Text)

	var nameErr, rateErr error
	if b.Name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if b.Rate < MinRate || b.Rate > MaxRate {
		rateErr = errs.NewValueIsOutOfRangeError("rate", b.Rate, MinRate, MaxRate)
	}
	return b, errors.Join(nameErr, rateErr)
}

type WorkExperience struct {
	id           kernel.ID
	body         Body
	reviewerType kernel.Role
	orderID      *kernel.ID
	customerID   kernel.ID
	performerID  kernel.ID
	createdAt    time.Time
	updatedAt    time.Time

	isConstructed bool
}

// NewWorkExperience creates performerID's review of target. The customer is
// taken from the order itself, never from the caller.
func NewWorkExperience(target *order.Order, performerID kernel.ID, body Body, now time.Time) (*WorkExperience, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if !target.IsAssignedTo(performerID) {
		return nil, errs.NewAccessDeniedError("order")
	}
	if target.Status() != order.Done {
		return nil, errs.NewInvalidStateError("order", target.Status().String(), "review unfinished")
	}
	body, err := body.validate()
	if err != nil {
		return nil, err
	}

	return &WorkExperience{
		body:          body,
		reviewerType:  kernel.Performer,
		orderID:       kernel.IDPtr(target.ID()),
		customerID:    target.CustomerID(),
		performerID:   performerID,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

func RestoreWorkExperience(
	id kernel.ID, body Body, reviewerType kernel.Role, orderID *kernel.ID,
	customerID, performerID kernel.ID, createdAt, updatedAt time.Time,
) (*WorkExperience, error) {
	if err := errors.Join(id.Validate(), reviewerType.Validate()); err != nil {
		return nil, err
	}
	return &WorkExperience{
		id:            id,
		body:          body,
		reviewerType:  reviewerType,
		orderID:       orderID,
		customerID:    customerID,
		performerID:   performerID,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

func (w *WorkExperience) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWorkExperienceIsNotConstructed
	}
	return nil
}

func (w *WorkExperience) ID() kernel.ID             { return w.id }
func (w *WorkExperience) Body() Body                { return w.body }
func (w *WorkExperience) ReviewerType() kernel.Role { return w.reviewerType }
func (w *WorkExperience) OrderID() *kernel.ID       { return w.orderID }
func (w *WorkExperience) CustomerID() kernel.ID     { return w.customerID }
func (w *WorkExperience) PerformerID() kernel.ID    { return w.performerID }
func (w *WorkExperience) CreatedAt() time.Time      { return w.createdAt }
func (w *WorkExperience) UpdatedAt() time.Time      { return w.updatedAt }

func (w *WorkExperience) IdentifyAs(id kernel.ID) {
	if w.id.IsZero() {
		w.id = id
	}
}
