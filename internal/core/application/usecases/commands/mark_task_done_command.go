package commands

import (
	"errors"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/guard"
)

var ErrMarkTaskDoneCommandIsNotConstructed = errors.New(
	"MarkTaskDoneCommand must be created via NewMarkTaskDoneCommand constructor",
)

// MarkTaskDoneCommand represents the performer reporting the work on the
// order behind replyID as finished.
type MarkTaskDoneCommand struct { //nolint:recvcheck //using for validation
	caller  kernel.Caller
	replyID kernel.ID

	guard guard.ConstructorGuard
}

func NewMarkTaskDoneCommand(caller kernel.Caller, replyID kernel.ID) (MarkTaskDoneCommand, error) {
	if err := errors.Join(caller.Validate(), replyID.Validate()); err != nil {
		return MarkTaskDoneCommand{}, err
	}
	return MarkTaskDoneCommand{caller: caller, replyID: replyID, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkTaskDoneCommand) Validate() error {
	return c.guard.Validate(ErrMarkTaskDoneCommandIsNotConstructed)
}

func (c MarkTaskDoneCommand) Caller() kernel.Caller { return c.caller }
func (c MarkTaskDoneCommand) ReplyID() kernel.ID    { return c.replyID }
