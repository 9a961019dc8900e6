package commands

import (
	"errors"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/errs"
	"freelance/internal/pkg/guard"
)

var ErrConfirmOrderDoneCommandIsNotConstructed = errors.New(
	"ConfirmOrderDoneCommand must be created via NewConfirmOrderDoneCommand constructor",
)

// ConfirmOrderDoneCommand represents the customer's verdict on submitted work.
// With done set the order is completed and onCheck is ignored; otherwise
// onCheck is required and only toggles the check flag.
type ConfirmOrderDoneCommand struct { //nolint:recvcheck //using for validation
	caller  kernel.Caller
	orderID kernel.ID
	done    bool
	onCheck *bool

	guard guard.ConstructorGuard
}

func NewConfirmOrderDoneCommand(
	caller kernel.Caller, orderID kernel.ID, done bool, onCheck *bool,
) (ConfirmOrderDoneCommand, error) {
	if err := errors.Join(caller.Validate(), orderID.Validate()); err != nil {
		return ConfirmOrderDoneCommand{}, err
	}
	if !done && onCheck == nil {
		return ConfirmOrderDoneCommand{}, errs.NewValueIsRequiredError("onCheck")
	}

	var flag *bool
	if !done {
		v := *onCheck
		flag = &v
	}

	return ConfirmOrderDoneCommand{
		caller:  caller,
		orderID: orderID,
		done:    done,
		onCheck: flag,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmOrderDoneCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderDoneCommandIsNotConstructed)
}

func (c ConfirmOrderDoneCommand) Caller() kernel.Caller { return c.caller }
func (c ConfirmOrderDoneCommand) OrderID() kernel.ID    { return c.orderID }
func (c ConfirmOrderDoneCommand) Done() bool            { return c.done }

// OnCheck is meaningful only when Done is false.
func (c ConfirmOrderDoneCommand) OnCheck() bool {
	return c.onCheck != nil && *c.onCheck
}
