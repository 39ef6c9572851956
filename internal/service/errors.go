package service

import (
	"errors"
	"fmt"
)

var (
	ErrRefreshInFlight = errors.New("refresh already in flight")
	ErrNotConfigured   = errors.New("coordinator is not configured")
	ErrSyncTimeout     = errors.New("sync did not reach the latest block within the retry budget")
	ErrSyncAborted     = errors.New("sync aborted")

	ErrSendInProgress = errors.New("another send is in progress")
	ErrEmptySendJob   = errors.New("send job has no items")
	ErrInvalidAddress = errors.New("send item has no address")
	ErrInvalidAmount  = errors.New("send item amount must be positive")

	ErrWalletOpen      = errors.New("wallet could not be opened")
	ErrInvalidBirthday = errors.New("birthday is not a number")
	ErrNoKeyExported   = errors.New("engine returned no key for address")

	ErrInvalidLabel  = errors.New("address book label is empty")
	ErrEntryNotFound = errors.New("address book entry not found")
	ErrInvalidServer = errors.New("server uri is empty")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// SendFailure is the terminal error of a send, as reported by the engine or
// after the progress poll gave up.
type SendFailure struct {
	Reason string
	Err    error
}

func (e *SendFailure) Error() string {
	return fmt.Sprintf("send failed: %s", e.Reason)
}

func (e *SendFailure) Unwrap() error {
	return e.Err
}
