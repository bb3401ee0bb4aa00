// Package render formats settlement results for people: currency rounding,
// balance lines and the per-payer plan.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/susu3304/warikan/internal/settlement"
)

type Formatter struct {
	Symbol string
	Places int32
	// Messages defaults to English when nil.
	Messages *Messages
}

func (f Formatter) msgs() *Messages {
	if f.Messages == nil {
		return English
	}
	return f.Messages
}

// Amount renders d rounded to f.Places with thousands separators.
func (f Formatter) Amount(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(f.Places)
	intPart, frac, hasFrac := strings.Cut(fixed, ".")
	out := sign + f.Symbol + groupThousands(intPart)
	if hasFrac {
		out += "." + frac
	}
	return out
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// BalanceLine describes one participant's position.
func (f Formatter) BalanceLine(b settlement.Balance) string {
	m := f.msgs()
	switch b.Status {
	case settlement.Debtor:
		return fmt.Sprintf(m.Owes, b.Name, f.Amount(b.Amount.Abs()))
	case settlement.Creditor:
		return fmt.Sprintf(m.GetsBack, b.Name, f.Amount(b.Amount))
	default:
		return fmt.Sprintf(m.Settled, b.Name)
	}
}

// PlanLine renders one payer group, e.g. "B must pay: ¥500 to A, and ¥2,500 to C."
func (f Formatter) PlanLine(g settlement.PayerGroup) string {
	m := f.msgs()
	parts := make([]string, 0, len(g.Payments))
	for _, p := range g.Payments {
		parts = append(parts, fmt.Sprintf(m.Payment, f.Amount(p.Amount), p.Receiver))
	}
	return fmt.Sprintf(m.MustPay, g.Payer, strings.Join(parts, m.PaymentSep))
}

func (f Formatter) Plan(res *settlement.Result) []string {
	groups := res.ByPayer()
	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		lines = append(lines, f.PlanLine(g))
	}
	return lines
}

// Summary renders the whole result as plain text.
func (f Formatter) Summary(res *settlement.Result) string {
	m := f.msgs()
	var b strings.Builder
	fmt.Fprintf(&b, m.EqualShare+"\n", f.Amount(res.EqualShare))

	fmt.Fprintf(&b, "\n%s\n", m.BalancesTitle)
	for _, bal := range res.Balances {
		fmt.Fprintf(&b, "- %s\n", f.BalanceLine(bal))
	}

	fmt.Fprintf(&b, "\n%s\n", m.PlanTitle)
	if len(res.Transactions) == 0 {
		b.WriteString(m.NoTransfers)
		b.WriteString("\n")
		return b.String()
	}
	for _, line := range f.Plan(res) {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	return b.String()
}

// Error turns a settlement error into a message for the person who entered
// the data. Errors that are not input errors get a generic message.
func (f Formatter) Error(err error) string {
	m := f.msgs()
	var (
		count    *settlement.InsufficientParticipantsError
		invalid  *settlement.InvalidParticipantError
		total    *settlement.InvalidTotalError
		mismatch *settlement.ContributionMismatchError
	)
	switch {
	case errors.As(err, &count):
		return fmt.Sprintf(m.TooFew, settlement.MinParticipants, count.Count)
	case errors.As(err, &invalid):
		name := ""
		if invalid.Name != "" {
			name = " (" + invalid.Name + ")"
		}
		return fmt.Sprintf(m.BadParticipant, invalid.Index+1, name, m.reason(invalid.Reason))
	case errors.As(err, &total):
		return m.BadTotal
	case errors.As(err, &mismatch):
		return fmt.Sprintf(m.Mismatch, f.Amount(mismatch.Sum), f.Amount(mismatch.Total), f.signed(mismatch.Discrepancy))
	default:
		return m.Failure
	}
}

func (f Formatter) signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + f.Amount(d)
	}
	return f.Amount(d)
}
