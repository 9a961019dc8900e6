package services

import (
	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/errs"
)

// Owner is anything that resolves to the account owning a resource: a
// Customer for orders, a Performer for replies, the recipient of a
// notification.
type Owner interface {
	OwnerAccountID() kernel.ID
}

// AccessGuard performs the single ownership contract of the application.
// Failures are always AccessDenied errors naming only the resource.
type AccessGuard struct{}

func NewAccessGuard() AccessGuard {
	return AccessGuard{}
}

// AssertOwnership passes when caller owns the resource or is an administrator.
func (AccessGuard) AssertOwnership(resource string, owner Owner, caller kernel.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	if caller.IsAdministrator() {
		return nil
	}
	if owner == nil || owner.OwnerAccountID() != caller.AccountID() {
		return errs.NewAccessDeniedError(resource)
	}
	return nil
}

// ParticipantSide resolves which side of a two-party resource caller is on.
// Administrators are not participants: side-specific state such as read marks
// and soft-delete flags belongs to the two parties only.
func (AccessGuard) ParticipantSide(resource string, customer, performer Owner, caller kernel.Caller) (kernel.Role, error) {
	if err := caller.Validate(); err != nil {
		return kernel.UnknownRole, err
	}
	switch {
	case customer != nil && customer.OwnerAccountID() == caller.AccountID():
		return kernel.Customer, nil
	case performer != nil && performer.OwnerAccountID() == caller.AccountID():
		return kernel.Performer, nil
	default:
		return kernel.UnknownRole, errs.NewAccessDeniedError(resource)
	}
}
