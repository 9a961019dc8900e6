package kernel

import (
	"errors"
	"fmt"

	"freelance/internal/pkg/errs"
)

var ErrCallerIsNotConstructed = errors.New("Caller must be created via NewCaller")

// Role is the kind of account performing an operation.
type Role int

const (
	UnknownRole Role = iota
	Customer
	Performer
	Administrator
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole:   "Unknown",
		Customer:      "Customer",
		Performer:     "Performer",
		Administrator: "Administrator",
	}
}

// ParseRole accepts the role names used in tokens and persisted rows.
func ParseRole(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != UnknownRole && name == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "Unknown"
}

func (r Role) Validate() error {
	if r != Customer && r != Performer && r != Administrator {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Caller is the authenticated identity behind a request: an account id plus
// the role the auth provider granted. Ownership checks always compare account
// ids, never entity ids.
type Caller struct {
	accountID     ID
	role          Role
	isConstructed bool
}

func NewCaller(accountID ID, role Role) (Caller, error) {
	if err := errors.Join(accountID.Validate(), role.Validate()); err != nil {
		return Caller{}, err
	}
	return Caller{accountID: accountID, role: role, isConstructed: true}, nil
}

func (c Caller) Validate() error {
	if !c.isConstructed {
		return ErrCallerIsNotConstructed
	}
	return nil
}

func (c Caller) AccountID() ID {
	return c.accountID
}

func (c Caller) Role() Role {
	return c.role
}

func (c Caller) IsAdministrator() bool {
	return c.role == Administrator
}

func (c Caller) String() string {
	return fmt.Sprintf("%s#%s", c.role, c.accountID)
}
