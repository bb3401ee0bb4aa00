package settlement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Validate checks the raw contribution set and returns a normalized copy with
// trimmed names. Checks run in order and the first failure is returned:
// participant count, total, each participant, then the contribution sum.
// Duplicate names are allowed.
func Validate(total decimal.Decimal, participants []Participant) ([]Participant, error) {
	if len(participants) < MinParticipants {
		return nil, &InsufficientParticipantsError{Count: len(participants)}
	}
	if !total.IsPositive() {
		return nil, &InvalidTotalError{Total: total}
	}

	out := make([]Participant, len(participants))
	sum := decimal.Zero
	for i, p := range participants {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, &InvalidParticipantError{Index: i, Reason: ReasonEmptyName}
		}
		if p.Contribution.IsNegative() {
			return nil, &InvalidParticipantError{Index: i, Name: name, Reason: ReasonNegativeContribution}
		}
		out[i] = Participant{Name: name, Contribution: p.Contribution}
		sum = sum.Add(p.Contribution)
	}

	if diff := sum.Sub(total); diff.Abs().GreaterThan(Epsilon) {
		return nil, &ContributionMismatchError{Sum: sum, Total: total, Discrepancy: diff}
	}
	return out, nil
}
