package commands

import (
	"context"
	"fmt"
	"time"

	"freelance/internal/core/domain/model/verification"
	"freelance/internal/core/ports"
	"freelance/internal/pkg/errs"
)

const verificationSubject = "Your verification code"

// RequestVerificationCodeHandler generates a code for an email address,
// stores it for ttl and mails it. A new request replaces the previous code.
type RequestVerificationCodeHandler struct {
	store  ports.CodeStore
	sender ports.EmailSender
	ttl    time.Duration
}

func NewRequestVerificationCodeHandler(
	store ports.CodeStore, sender ports.EmailSender, ttl time.Duration,
) RequestVerificationCodeHandler {
	return RequestVerificationCodeHandler{store: store, sender: sender, ttl: ttl}
}

func (h RequestVerificationCodeHandler) Handle(ctx context.Context, email string) error {
	key, err := verification.NormalizeEmail(email)
	if err != nil {
		return err
	}

	code, err := verification.NewCode()
	if err != nil {
		return err
	}

	if err = h.store.Put(ctx, key, code, h.ttl); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}

	body := fmt.Sprintf("Your code is %s. It expires in %s.", code, h.ttl)
	if err = h.sender.SendPlain(ctx, key, verificationSubject, body); err != nil {
		return fmt.Errorf("send verification code: %w", err)
	}
	return nil
}

// ConfirmVerificationCodeHandler checks a submitted code. A mismatch and an
// expired or unknown code are the same validation error; a match consumes
// the code.
type ConfirmVerificationCodeHandler struct {
	store ports.CodeStore
}

func NewConfirmVerificationCodeHandler(store ports.CodeStore) ConfirmVerificationCodeHandler {
	return ConfirmVerificationCodeHandler{store: store}
}

func (h ConfirmVerificationCodeHandler) Handle(ctx context.Context, email, submitted string) error {
	key, err := verification.NormalizeEmail(email)
	if err != nil {
		return err
	}

	code, err := verification.ParseCode(submitted)
	if err != nil {
		return err
	}

	stored, ok, err := h.store.GetIfNotExpired(ctx, key)
	if err != nil {
		return fmt.Errorf("load verification code: %w", err)
	}
	if !ok || !stored.Matches(code) {
		return errs.NewValueIsInvalidError("code")
	}

	return h.store.Remove(ctx, key)
}
