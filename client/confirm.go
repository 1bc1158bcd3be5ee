package client

import "context"

// Confirmer asks the user to approve a destructive operation.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Confirmed approves without asking. Use it when the caller has already
// collected confirmation, e.g. a TUI dialog or a --yes flag.
var Confirmed Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) {
	return true, nil
})

// Declined never approves.
var Declined Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) {
	return false, nil
})

func confirm(ctx context.Context, c Confirmer, prompt string) error {
	if c == nil {
		return ErrDeclined
	}
	ok, err := c.Confirm(ctx, prompt)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeclined
	}
	return nil
}
