package commands

import (
	"errors"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/pkg/guard"
)

var ErrDeleteReplyCommandIsNotConstructed = errors.New(
	"DeleteReplyCommand must be created via NewDeleteReplyCommand or NewDeleteCompletedReplyCommand",
)

// DeleteReplyCommand withdraws a reply. The completed variant only removes
// replies of finished work.
type DeleteReplyCommand struct { //nolint:recvcheck //using for validation
	caller        kernel.Caller
	replyID       kernel.ID
	completedOnly bool

	guard guard.ConstructorGuard
}

func NewDeleteReplyCommand(caller kernel.Caller, replyID kernel.ID) (DeleteReplyCommand, error) {
	return newDeleteReplyCommand(caller, replyID, false)
}

func NewDeleteCompletedReplyCommand(caller kernel.Caller, replyID kernel.ID) (DeleteReplyCommand, error) {
	return newDeleteReplyCommand(caller, replyID, true)
}

func newDeleteReplyCommand(caller kernel.Caller, replyID kernel.ID, completedOnly bool) (DeleteReplyCommand, error) {
	if err := errors.Join(caller.Validate(), replyID.Validate()); err != nil {
		return DeleteReplyCommand{}, err
	}
	return DeleteReplyCommand{
		caller:        caller,
		replyID:       replyID,
		completedOnly: completedOnly,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteReplyCommand) Validate() error {
	return c.guard.Validate(ErrDeleteReplyCommandIsNotConstructed)
}

func (c DeleteReplyCommand) Caller() kernel.Caller { return c.caller }
func (c DeleteReplyCommand) ReplyID() kernel.ID    { return c.replyID }
func (c DeleteReplyCommand) CompletedOnly() bool   { return c.completedOnly }
