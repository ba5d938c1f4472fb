package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeatRangeSeek(t *testing.T) {
	r := beatRange{ticksPerQuarter: 480}

	r.seek(960)
	assert.Equal(t, int64(2), r.index)
	assert.Equal(t, int64(960), r.lowerBound())
	assert.Equal(t, int64(1440), r.upperBound())
	assert.Equal(t, 2, r.position())

	r.seek(1439)
	assert.Equal(t, int64(960), r.lowerBound())

	r.seek(2400)
	assert.Equal(t, int64(2400), r.lowerBound())
	assert.Equal(t, 1, r.position())
}

func TestQuarterPosition(t *testing.T) {
	cases := []struct {
		ticks int64
		want  int
	}{
		{0, 0},
		{90, 0},
		{480, 1},
		{959, 1},
		{960, 2},
		{1500, 3},
		{1920, 0},
		{4900, 2},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, quarterPosition(c.ticks, 480), "ticks %d", c.ticks)
	}

	assert.Equal(t, 0, quarterPosition(960, 0))
}
