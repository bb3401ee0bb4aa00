package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSplitCommand(t *testing.T) {
	out, err := run(t, "split", "--total", "300", "F1=300", "F2=0", "F3=0")
	require.NoError(t, err)

	assert.Contains(t, out, "Equal share per person: ¥100")
	assert.Contains(t, out, "F1 gets back ¥200")
	assert.Contains(t, out, "F2 must pay: ¥100 to F1.")
	assert.Contains(t, out, "F3 must pay: ¥100 to F1.")
}

func TestSplitCommandFormatting(t *testing.T) {
	out, err := run(t, "split", "--total", "$3,000", "--symbol", "$", "--places", "2", "A=1000", "B=2000", "C=0")
	require.NoError(t, err)

	assert.Contains(t, out, "Equal share per person: $1,000.00")
	assert.Contains(t, out, "C must pay: $1,000.00 to B.")
}

func TestSplitCommandJSON(t *testing.T) {
	out, err := run(t, "split", "--json", "--total", "90", "A=90", "B=0", "C=0")
	require.NoError(t, err)

	var got struct {
		EqualShare   string `json:"equal_share"`
		Transactions []struct {
			Payer    string `json:"payer"`
			Receiver string `json:"receiver"`
			Amount   string `json:"amount"`
		} `json:"transactions"`
		Plan []struct {
			Payer string `json:"payer"`
		} `json:"plan"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "30", got.EqualShare)
	require.Len(t, got.Transactions, 2)
	assert.Equal(t, "B", got.Transactions[0].Payer)
	assert.Equal(t, "A", got.Transactions[0].Receiver)
	assert.Equal(t, "30", got.Transactions[0].Amount)
	require.Len(t, got.Plan, 2)
}

func TestSplitCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing total", []string{"split", "A=1", "B=1"}, "required flag"},
		{"bad total", []string{"split", "--total", "abc", "A=1", "B=1"}, "--total"},
		{"malformed entry", []string{"split", "--total", "2", "A=1", "B"}, "name=amount"},
		{"mismatch", []string{"split", "--total", "100", "A=50", "B=49"}, "difference -¥1"},
		{"single participant", []string{"split", "--total", "100", "A=100"}, "at least 2 participants"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
