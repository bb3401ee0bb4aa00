// Package settlement turns a shared expense into the payer→receiver
// transfers that bring every participant back to an equal share.
package settlement

import (
	"github.com/shopspring/decimal"
)

// MinParticipants is the smallest group that can split an expense.
const MinParticipants = 2

// Epsilon is the tolerance below which a balance or transfer counts as zero.
// Validation, classification and emission all compare against it.
var Epsilon = decimal.New(1, -2)

type Participant struct {
	Name         string          `json:"name"`
	Contribution decimal.Decimal `json:"contribution"`
}

type Balance struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"balance"`
	Status Status          `json:"status"`
}

type Transaction struct {
	Payer    string          `json:"payer"`
	Receiver string          `json:"receiver"`
	Amount   decimal.Decimal `json:"amount"`
}

type Result struct {
	EqualShare   decimal.Decimal `json:"equal_share"`
	Balances     []Balance       `json:"balances"`
	Transactions []Transaction   `json:"transactions"`
}

// Compute validates the input, derives balances and settles them.
// It either returns a complete result or an error, never a partial plan.
func Compute(total decimal.Decimal, participants []Participant) (*Result, error) {
	valid, err := Validate(total, participants)
	if err != nil {
		return nil, err
	}

	share, balances := ComputeBalances(total, valid)

	txs, err := Settle(balances)
	if err != nil {
		return nil, err
	}

	return &Result{
		EqualShare:   share,
		Balances:     balances,
		Transactions: txs,
	}, nil
}

// ByPayer groups the result's transactions by payer.
func (r *Result) ByPayer() []PayerGroup {
	if r == nil {
		return nil
	}
	return GroupByPayer(r.Transactions)
}
