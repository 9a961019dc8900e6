// Package party links marketplace entities to the accounts that own them.
// A Customer owns orders and chats on the customer side; a Performer owns
// replies, reviews and chats on the performer side. Ownership checks compare
// the party's account id with the caller's account id.
package party

import (
	"errors"
	"net/mail"
	"strings"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/errs"
)

var (
	ErrCustomerIsNotConstructed  = errors.New("Customer must be created via NewCustomer or RestoreCustomer")
	ErrPerformerIsNotConstructed = errors.New("Performer must be created via NewPerformer or RestorePerformer")
)

// profile holds the fields both parties share.
type profile struct {
	id        kernel.ID
	accountID kernel.ID
	name      string
	email     string
}

func newProfile(id, accountID kernel.ID, name, email string) (profile, error) {
	name = strings.TrimSpace(name)
	var nameErr, emailErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		emailErr = errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	if err := errors.Join(accountID.Validate(), nameErr, emailErr); err != nil {
		return profile{}, err
	}
	return profile{id: id, accountID: accountID, name: name, email: email}, nil
}

type Customer struct {
	profile
	isConstructed bool
}

func NewCustomer(accountID kernel.ID, name, email string) (*Customer, error) {
	return RestoreCustomer(0, accountID, name, email)
}

func RestoreCustomer(id, accountID kernel.ID, name, email string) (*Customer, error) {
	p, err := newProfile(id, accountID, name, email)
	if err != nil {
		return nil, err
	}
	return &Customer{profile: p, isConstructed: true}, nil
}

func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

type Performer struct {
	profile
	isConstructed bool
}

func NewPerformer(accountID kernel.ID, name, email string) (*Performer, error) {
	return RestorePerformer(0, accountID, name, email)
}

func RestorePerformer(id, accountID kernel.ID, name, email string) (*Performer, error) {
	p, err := newProfile(id, accountID, name, email)
	if err != nil {
		return nil, err
	}
	return &Performer{profile: p, isConstructed: true}, nil
}

func (p *Performer) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPerformerIsNotConstructed
	}
	return nil
}

func (p *profile) ID() kernel.ID {
	return p.id
}

func (p *profile) AccountID() kernel.ID {
	return p.accountID
}

// OwnerAccountID is the account that owns everything linked to this party.
func (p *profile) OwnerAccountID() kernel.ID {
	return p.accountID
}

func (p *profile) Name() string {
	return p.name
}

func (p *profile) Email() string {
	return p.email
}

// IdentifyAs sets the database-assigned identity once.
func (p *profile) IdentifyAs(id kernel.ID) {
	if p.id.IsZero() {
		p.id = id
	}
}
