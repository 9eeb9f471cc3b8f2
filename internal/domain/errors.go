package domain

import "errors"

var (
	// Ledger errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrGroupNotFound       = errors.New("group not found")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidType         = errors.New("transaction type must be income or expense")

	// Tour errors
	ErrTourNotFound    = errors.New("tour not found")
	ErrExpenseNotFound = errors.New("expense not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrUnknownMember   = errors.New("expense references a member not in the tour")
	ErrNoParticipants  = errors.New("expense must have at least one participant")
	ErrNoMembers       = errors.New("tour must have at least one member")

	// Persistence errors
	ErrCollectionNotFound = errors.New("collection not found")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)
