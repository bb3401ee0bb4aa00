package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		total        string
		participants []Participant
		wantErr      error
	}{
		{"no participants", "10", nil, ErrInsufficientParticipants},
		{"one participant", "10", people("A", "10"), ErrInsufficientParticipants},
		{"zero total", "0", people("A", "0", "B", "0"), ErrInvalidTotal},
		{"negative total", "-5", people("A", "0", "B", "0"), ErrInvalidTotal},
		{"blank name", "10", people("A", "5", "  ", "5"), ErrInvalidParticipant},
		{"negative contribution", "10", people("A", "15", "B", "-5"), ErrInvalidParticipant},
		{"sum too high", "10", people("A", "6", "B", "4.02"), ErrContributionMismatch},
		{"sum too low", "10", people("A", "6", "B", "3.98"), ErrContributionMismatch},
		{"sum within tolerance", "10", people("A", "6", "B", "4.01"), nil},
		{"exact", "10", people("A", "6", "B", "4"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(dec(tt.total), tt.participants)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsInputError(err))
		})
	}
}

func TestValidate_CountCheckedFirst(t *testing.T) {
	_, err := Validate(dec("0"), people("A", "-1"))
	var count *InsufficientParticipantsError
	require.ErrorAs(t, err, &count)
	assert.Equal(t, 1, count.Count)
}

func TestValidate_NormalizesNames(t *testing.T) {
	in := people("  Alice ", "5", "Bob\t", "5", "Alice", "0")
	out, err := Validate(dec("10"), in)
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.Equal(t, "Alice", out[0].Name)
	assert.Equal(t, "Bob", out[1].Name)
	assert.Equal(t, "Alice", out[2].Name)
	assert.Equal(t, "  Alice ", in[0].Name, "input must not be modified")
}

func TestValidate_ParticipantErrorNamesIndex(t *testing.T) {
	_, err := Validate(dec("10"), people("A", "15", "B", "-5"))
	var invalid *InvalidParticipantError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 1, invalid.Index)
	assert.Equal(t, "B", invalid.Name)
	assert.Contains(t, invalid.Error(), "participant #2 (B)")
}
