package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balances(pairs ...string) []Balance {
	out := make([]Balance, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		amount := dec(pairs[i+1])
		out = append(out, Balance{Name: pairs[i], Amount: amount, Status: Classify(amount)})
	}
	return out
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Settled, Classify(dec("0")))
	assert.Equal(t, Settled, Classify(dec("0.01")))
	assert.Equal(t, Settled, Classify(dec("-0.01")))
	assert.Equal(t, Creditor, Classify(dec("0.011")))
	assert.Equal(t, Debtor, Classify(dec("-0.011")))
}

func TestComputeBalances_ZeroParticipantsPanics(t *testing.T) {
	assert.Panics(t, func() { ComputeBalances(dec("10"), nil) })
}

func TestSettle_TieBreakKeepsInputOrder(t *testing.T) {
	txs, err := Settle(balances("X", "-50", "Y", "50", "Z", "-50", "W", "50"))
	require.NoError(t, err)

	require.Len(t, txs, 2)
	assert.Equal(t, Transaction{Payer: "X", Receiver: "Y", Amount: txs[0].Amount}, txs[0])
	assert.Equal(t, Transaction{Payer: "Z", Receiver: "W", Amount: txs[1].Amount}, txs[1])
}

func TestSettle_SplitsDebtAcrossCreditors(t *testing.T) {
	txs, err := Settle(balances("A", "-300", "B", "200", "C", "100"))
	require.NoError(t, err)

	require.Len(t, txs, 2)
	assert.Equal(t, "B", txs[0].Receiver)
	assertDecimal(t, "200", txs[0].Amount)
	assert.Equal(t, "C", txs[1].Receiver)
	assertDecimal(t, "100", txs[1].Amount)
}

func TestSettle_SettledParticipantsIgnored(t *testing.T) {
	txs, err := Settle(balances("A", "0.005", "B", "-0.01", "C", "0"))
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestSettle_ToleratesSettledResidue(t *testing.T) {
	// 10.01 + 10.01 + 9.98 = 30: both creditors sit inside the settled band
	// so the small debt has nobody to pay.
	res, err := Compute(dec("30"), people("A", "10.01", "B", "10.01", "C", "9.98"))
	require.NoError(t, err)
	assert.Equal(t, Debtor, res.Balances[2].Status)
	assert.Empty(t, res.Transactions)
}

func TestSettle_NonZeroSumIsInvariantViolation(t *testing.T) {
	txs, err := Settle(balances("A", "100", "B", "-50"))
	assert.Nil(t, txs)
	require.ErrorIs(t, err, ErrInvariantViolation)
	assert.False(t, IsInputError(err))

	var inv *InvariantError
	require.ErrorAs(t, err, &inv)
	assertDecimal(t, "50", inv.Leftover)
	assert.Equal(t, 0, inv.Debtors)
	assert.Equal(t, 1, inv.Creditors)
}

func TestGroupByPayer(t *testing.T) {
	txs := []Transaction{
		{Payer: "B", Receiver: "A", Amount: dec("10")},
		{Payer: "C", Receiver: "A", Amount: dec("5")},
		{Payer: "B", Receiver: "D", Amount: dec("3")},
	}
	groups := GroupByPayer(txs)

	require.Len(t, groups, 2)
	assert.Equal(t, "B", groups[0].Payer)
	require.Len(t, groups[0].Payments, 2)
	assert.Equal(t, "A", groups[0].Payments[0].Receiver)
	assert.Equal(t, "D", groups[0].Payments[1].Receiver)
	assert.Equal(t, "C", groups[1].Payer)

	assert.Empty(t, GroupByPayer(nil))
}
