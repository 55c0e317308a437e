package timestamp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatParse(t *testing.T) {
	t.Parallel()
	in := time.Date(2024, 3, 9, 8, 7, 6, 123456000, time.FixedZone("X", 3600))
	s := Format(in)
	assert.Equal(t, "2024-03-09 07:07:06.123456", s)

	got, err := Parse(s)
	require.NoError(t, err)
	assert.True(t, in.Equal(got))
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()
	got, err := Parse("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestOrdering(t *testing.T) {
	t.Parallel()
	a := Format(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	b := Format(time.Date(2024, 1, 1, 10, 0, 0, 1000, time.UTC))
	assert.Less(t, a, b)
}
