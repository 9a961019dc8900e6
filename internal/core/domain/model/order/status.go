package order

import (
	"fmt"

	"freelance/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Active ──assign──> InProcess ──submit──> OnCheck ──complete──> Done
//	  │ ^                 │  ^                  │
//	  v │ (de)activate    │  └────correction────┘
//	Inactive              └──refuse──> Active <──refuse── OnCheck
//
// OnReview and Rejected belong to moderation and are never entered by the
// lifecycle operations; they are kept so persisted rows round-trip.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	Active
	Inactive
	InProcess
	OnCheck
	OnReview
	Done
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Active:    "ACTIVE",
		Inactive:  "INACTIVE",
		InProcess: "IN_PROCESS",
		OnCheck:   "ON_CHECK",
		OnReview:  "ON_REVIEW",
		Done:      "DONE",
		Rejected:  "REJECTED",
	}
}

// ParseStatus maps the persisted or transported name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Rejected {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// RequiresPerformer reports whether an order in this status must have a
// performer assigned.
func (s Status) RequiresPerformer() bool {
	return s == InProcess || s == OnCheck || s == Done
}

// IsInWork reports whether the assigned performer is still working.
func (s Status) IsInWork() bool {
	return s == InProcess || s == OnCheck
}

// ValidateCanHavePerformer checks the consistency between status and assignment.
func (s Status) ValidateCanHavePerformer(performer bool) error {
	if performer && !s.RequiresPerformer() {
		return errs.NewInvalidStateError("order", s.String(), "have a performer")
	}
	if !performer && s.RequiresPerformer() {
		return errs.NewInvalidStateError("order", s.String(), "have no performer")
	}
	return nil
}

func (s Status) transition(action string, to Status, from ...Status) (Status, error) {
	for _, allowed := range from {
		if s == allowed {
			return to, nil
		}
	}
	return Unknown, errs.NewInvalidStateError("order", s.String(), action)
}

// Assign moves a published order into work.
func (s Status) Assign() (Status, error) {
	return s.transition("assign", InProcess, Active)
}

// Refuse returns work in progress to the public listing.
func (s Status) Refuse() (Status, error) {
	return s.transition("refuse", Active, InProcess, OnCheck)
}

// Submit marks the work as handed over for the customer's check.
func (s Status) Submit() (Status, error) {
	return s.transition("submit", OnCheck, InProcess)
}

// ReturnToWork sends checked work back to the performer.
func (s Status) ReturnToWork() (Status, error) {
	return s.transition("return to work", InProcess, OnCheck)
}

// Complete accepts the work. Completion straight from InProcess is allowed
// because the customer may confirm without waiting for the performer's claim.
func (s Status) Complete() (Status, error) {
	return s.transition("complete", Done, InProcess, OnCheck)
}

func (s Status) Deactivate() (Status, error) {
	return s.transition("deactivate", Inactive, Active)
}

func (s Status) Activate() (Status, error) {
	return s.transition("activate", Active, Inactive)
}
