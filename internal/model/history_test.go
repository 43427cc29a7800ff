package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapAt(t time.Time, remaining float64) Snapshot {
	return Snapshot{CapturedAt: t, RemainingWork: remaining}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory()
	assert.Equal(t, 0, h.Count())
	assert.Nil(t, h.Latest())
	assert.Nil(t, h.Previous())
}

func TestHistory_AppendAndAccessors(t *testing.T) {
	h := NewHistory()
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, h.Append(snapAt(t0, 133)))
	assert.Equal(t, 1, h.Count())
	require.NotNil(t, h.Latest())
	assert.Equal(t, 133.0, h.Latest().RemainingWork)
	assert.Nil(t, h.Previous())

	require.NoError(t, h.Append(snapAt(t0.Add(5*time.Minute), 112)))
	assert.Equal(t, 2, h.Count())
	assert.Equal(t, 112.0, h.Latest().RemainingWork)
	require.NotNil(t, h.Previous())
	assert.Equal(t, 133.0, h.Previous().RemainingWork)
}

func TestHistory_RejectsNonIncreasingTimestamps(t *testing.T) {
	h := NewHistory()
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, h.Append(snapAt(t0, 100)))

	// Same timestamp is rejected.
	assert.Error(t, h.Append(snapAt(t0, 90)))
	// Earlier timestamp is rejected.
	assert.Error(t, h.Append(snapAt(t0.Add(-time.Second), 90)))
	// The store is untouched by rejected appends.
	assert.Equal(t, 1, h.Count())
	assert.Equal(t, 100.0, h.Latest().RemainingWork)
}

func TestHistory_ArrivalOrderPreserved(t *testing.T) {
	h := NewHistory()
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	want := []float64{50, 40, 41, 30, 0}
	for i, r := range want {
		require.NoError(t, h.Append(snapAt(t0.Add(time.Duration(i)*time.Minute), r)))
	}

	assert.Equal(t, len(want), h.Count())
	// Latest/Previous reflect the last two appends; the regression at 41 was
	// kept in place, not reordered.
	assert.Equal(t, 0.0, h.Latest().RemainingWork)
	assert.Equal(t, 30.0, h.Previous().RemainingWork)
}
