package settlement

import (
	"sort"

	"github.com/shopspring/decimal"
)

type ledgerEntry struct {
	name      string
	remaining decimal.Decimal
}

// Settle matches debtors against creditors, largest amounts first, and
// returns the transfers in the order they were generated. It does not search
// for the minimum number of transfers; the result has at most
// debtors+creditors-1 entries.
func Settle(balances []Balance) ([]Transaction, error) {
	var debtors, creditors []ledgerEntry
	for _, b := range balances {
		switch Classify(b.Amount) {
		case Debtor:
			debtors = append(debtors, ledgerEntry{name: b.Name, remaining: b.Amount.Neg()})
		case Creditor:
			creditors = append(creditors, ledgerEntry{name: b.Name, remaining: b.Amount})
		}
	}

	// Stable so that equal amounts keep input order.
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].remaining.GreaterThan(debtors[j].remaining) })
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].remaining.GreaterThan(creditors[j].remaining) })

	txs := make([]Transaction, 0, max(len(debtors)+len(creditors)-1, 0))
	d, c := 0, 0
	for d < len(debtors) && c < len(creditors) {
		debtor, creditor := &debtors[d], &creditors[c]

		amount := decimal.Min(debtor.remaining, creditor.remaining)
		if amount.GreaterThan(Epsilon) {
			txs = append(txs, Transaction{Payer: debtor.name, Receiver: creditor.name, Amount: amount})
		}
		debtor.remaining = debtor.remaining.Sub(amount)
		creditor.remaining = creditor.remaining.Sub(amount)

		if debtor.remaining.LessThanOrEqual(Epsilon) {
			d++
		}
		if creditor.remaining.LessThanOrEqual(Epsilon) {
			c++
		}
	}

	if err := checkExhausted(debtors[d:], creditors[c:], len(balances)); err != nil {
		return nil, err
	}
	return txs, nil
}

// checkExhausted verifies that whatever is left unmatched is rounding noise.
// Each participant may contribute up to Epsilon of it, either as a settled
// residue or as a remainder dropped when its cursor advanced, and the
// validated contribution sum may be off by one more Epsilon.
func checkExhausted(debtors, creditors []ledgerEntry, participants int) error {
	leftover := decimal.Zero
	for _, e := range debtors {
		leftover = leftover.Add(e.remaining)
	}
	for _, e := range creditors {
		leftover = leftover.Add(e.remaining)
	}

	tolerance := Epsilon.Mul(decimal.NewFromInt(int64(participants + 1)))
	if leftover.GreaterThan(tolerance) {
		return &InvariantError{
			Leftover:  leftover,
			Tolerance: tolerance,
			Debtors:   len(debtors),
			Creditors: len(creditors),
		}
	}
	return nil
}
