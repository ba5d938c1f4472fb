package midi

// beatsPerBar assumes 4/4; time signature events are skipped.
const beatsPerBar = 4

// beatRange is the tick window [lowerBound, upperBound) of one quarter note.
type beatRange struct {
	ticksPerQuarter int64
	index           int64
}

func (r beatRange) lowerBound() int64 {
	return r.index * r.ticksPerQuarter
}

func (r beatRange) upperBound() int64 {
	return r.lowerBound() + r.ticksPerQuarter
}

// seek moves the window onto the quarter holding tick.
func (r *beatRange) seek(tick int64) {
	r.index = tick / r.ticksPerQuarter
}

func (r beatRange) position() int {
	return int(r.index % beatsPerBar)
}

func quarterPosition(absTicks int64, ticksPerQuarterNote int64) int {
	if ticksPerQuarterNote <= 0 || absTicks < 0 {
		return 0
	}

	r := beatRange{ticksPerQuarter: ticksPerQuarterNote}
	r.seek(absTicks)
	return r.position()
}
