package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lake-demo/internal/frame"
)

func floatPtr(v float64) *float64 { return &v }

func fixture(t *testing.T) *frame.Frame {
	t.Helper()
	f := frame.New("id", "email", "amount")
	require.NoError(t, f.Append(int64(1), "a@example.com", 10.0))
	require.NoError(t, f.Append(int64(2), "b@example.com", 20.0))
	require.NoError(t, f.Append(int64(2), nil, 150.0))
	return f
}

func TestCheck(t *testing.T) {
	res := Check(fixture(t), "orders", Rules{
		NoNulls: []string{"id", "email"},
		Unique:  []string{"id"},
		Ranges:  []RangeRule{{Column: "amount", Min: floatPtr(0), Max: floatPtr(100)}},
		Pattern: []PatternRule{{Column: "email", Pattern: `^[^@\s]+@[^@\s]+$`}},
	})

	assert.Equal(t, "orders", res.Dataset)
	assert.Equal(t, 3, res.RowCount)
	assert.False(t, res.Passed())

	byKey := make(map[string]bool)
	for _, c := range res.Checks {
		byKey[c.Check+"/"+c.Column] = c.Passed
	}
	assert.True(t, byKey["no_nulls/id"])
	assert.False(t, byKey["no_nulls/email"])
	assert.False(t, byKey["unique/id"])
	assert.False(t, byKey["range/amount"])
	// The null email renders as "" and fails the pattern.
	assert.False(t, byKey["pattern/email"])
}

func TestCheckPassing(t *testing.T) {
	f := frame.New("id")
	require.NoError(t, f.Append(int64(1)))
	require.NoError(t, f.Append(int64(2)))

	res := Check(f, "ok", Rules{NoNulls: []string{"id"}, Unique: []string{"id"}})
	assert.True(t, res.Passed())
	assert.Len(t, res.Checks, 2)
}

func TestCheckSkipsMissingColumns(t *testing.T) {
	f := frame.New("id")
	require.NoError(t, f.Append(int64(1)))

	res := Check(f, "sparse", Rules{
		NoNulls: []string{"id", "ghost"},
		Unique:  []string{"ghost"},
	})
	assert.Len(t, res.Checks, 1)
	assert.True(t, res.Passed())
}

func TestCheckInvalidPattern(t *testing.T) {
	f := frame.New("v")
	require.NoError(t, f.Append("x"))

	res := Check(f, "bad", Rules{Pattern: []PatternRule{{Column: "v", Pattern: "("}}})
	require.Len(t, res.Checks, 1)
	assert.False(t, res.Checks[0].Passed)
}
