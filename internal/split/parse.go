package split

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/susu3304/warikan/internal/settlement"
)

var ErrMalformedEntry = errors.New("entry must look like name=amount")

// ParseAmount accepts plain decimals with optional currency marks and
// thousands separators: "1,200", "¥300", "$12.50", "300円".
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimLeft(clean, "$¥€￥")
	clean = strings.TrimSuffix(clean, "円")
	clean = strings.ReplaceAll(clean, ",", "")
	if clean == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// ParseEntries turns "name=amount" (or "name:amount") entries into
// participants, keeping their order.
func ParseEntries(entries []string) ([]settlement.Participant, error) {
	out := make([]settlement.Participant, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		i := strings.LastIndexAny(entry, "=:")
		if i <= 0 || i == len(entry)-1 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedEntry, entry)
		}
		amount, err := ParseAmount(entry[i+1:])
		if err != nil {
			return nil, fmt.Errorf("%q: %w", entry, err)
		}
		out = append(out, settlement.Participant{Name: strings.TrimSpace(entry[:i]), Contribution: amount})
	}
	return out, nil
}

// ParseText splits free text on whitespace, commas, semicolons and
// newlines and parses each piece as an entry.
func ParseText(text string) ([]settlement.Participant, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';' || r == '、'
	})
	return ParseEntries(fields)
}
