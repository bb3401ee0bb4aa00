package settlement

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientParticipants = errors.New("insufficient participants")
	ErrInvalidParticipant       = errors.New("invalid participant")
	ErrInvalidTotal             = errors.New("invalid total")
	ErrContributionMismatch     = errors.New("contribution mismatch")
	ErrInvariantViolation       = errors.New("settlement invariant violated")
)

type InsufficientParticipantsError struct {
	Count int
}

func (e *InsufficientParticipantsError) Error() string {
	return fmt.Sprintf("at least %d participants are required, got %d", MinParticipants, e.Count)
}

func (e *InsufficientParticipantsError) Unwrap() error { return ErrInsufficientParticipants }

// Reasons reported by InvalidParticipantError.
const (
	ReasonEmptyName            = "name is empty"
	ReasonNegativeContribution = "contribution is negative"
)

type InvalidParticipantError struct {
	Index  int
	Name   string
	Reason string
}

func (e *InvalidParticipantError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("participant #%d: %s", e.Index+1, e.Reason)
	}
	return fmt.Sprintf("participant #%d (%s): %s", e.Index+1, e.Name, e.Reason)
}

func (e *InvalidParticipantError) Unwrap() error { return ErrInvalidParticipant }

type InvalidTotalError struct {
	Total decimal.Decimal
}

func (e *InvalidTotalError) Error() string {
	return fmt.Sprintf("total amount must be greater than zero, got %s", e.Total)
}

func (e *InvalidTotalError) Unwrap() error { return ErrInvalidTotal }

// ContributionMismatchError reports contributions that do not add up to the
// declared total. Discrepancy is sum(contributions) - total.
type ContributionMismatchError struct {
	Sum         decimal.Decimal
	Total       decimal.Decimal
	Discrepancy decimal.Decimal
}

func (e *ContributionMismatchError) Error() string {
	return fmt.Sprintf("contributions sum to %s but total is %s (discrepancy %s)", e.Sum, e.Total, e.Discrepancy)
}

func (e *ContributionMismatchError) Unwrap() error { return ErrContributionMismatch }

// InvariantError means the balances handed to the engine did not net to zero.
// It signals a defect upstream, not bad user input.
type InvariantError struct {
	Leftover  decimal.Decimal
	Tolerance decimal.Decimal
	Debtors   int
	Creditors int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s left unmatched (tolerance %s, %d debtors and %d creditors pending)",
		ErrInvariantViolation, e.Leftover, e.Tolerance, e.Debtors, e.Creditors)
}

func (e *InvariantError) Unwrap() error { return ErrInvariantViolation }

// IsInputError reports whether err asks the caller to correct its input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInsufficientParticipants) ||
		errors.Is(err, ErrInvalidParticipant) ||
		errors.Is(err, ErrInvalidTotal) ||
		errors.Is(err, ErrContributionMismatch)
}
