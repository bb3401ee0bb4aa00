package settlement

import (
	"github.com/shopspring/decimal"
)

type Status int

const (
	Settled Status = iota
	Creditor
	Debtor
)

func (s Status) String() string {
	switch s {
	case Creditor:
		return "creditor"
	case Debtor:
		return "debtor"
	default:
		return "settled"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Classify places amount in the settled band [-Epsilon, Epsilon] or on
// either side of it.
func Classify(amount decimal.Decimal) Status {
	switch {
	case amount.GreaterThan(Epsilon):
		return Creditor
	case amount.LessThan(Epsilon.Neg()):
		return Debtor
	default:
		return Settled
	}
}

// ComputeBalances splits total evenly and returns each participant's balance
// in input order. Positive means the participant is owed money.
func ComputeBalances(total decimal.Decimal, participants []Participant) (decimal.Decimal, []Balance) {
	if len(participants) == 0 {
		panic("settlement: cannot split an expense among zero participants")
	}

	share := total.Div(decimal.NewFromInt(int64(len(participants))))
	balances := make([]Balance, len(participants))
	for i, p := range participants {
		amount := p.Contribution.Sub(share)
		balances[i] = Balance{Name: p.Name, Amount: amount, Status: Classify(amount)}
	}
	return share, balances
}
