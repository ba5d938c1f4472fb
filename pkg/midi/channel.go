package midi

import "math"

// ChannelCount is the number of MIDI channels a file can address.
const ChannelCount = 16

const noteCount = 128

// NoteEvent is a note closed by a note-off or by a repeated note-on of the same pitch.
type NoteEvent struct {
	// Type is a marker classification, always 0 here.
	Type int
	// StartTime and Duration are in seconds.
	StartTime float64
	Duration  float64
	// Position is assigned by the layout layer, always 0 here.
	Position float64

	Pitch         uint8
	Velocity      uint8
	Tonal         bool
	ProgramNumber uint8

	// StartTick and DurationTicks are track-local ticks.
	StartTick     uint64
	DurationTicks uint64
}

// QuarterPosition returns the quarter of the bar (0-3) the note starts in.
func (e *NoteEvent) QuarterPosition(ticksPerQuarterNote uint16) int {
	return quarterPosition(int64(e.StartTick), int64(ticksPerQuarterNote))
}

type openNote struct {
	startTime     float64
	startTick     uint64
	velocity      uint8
	programNumber uint8
}

// Channel accumulates the notes addressed to one MIDI channel.
type Channel struct {
	ID     uint8
	Output []NoteEvent

	// MinNote and MaxNote hold math.MaxInt and math.MinInt until the first note-on.
	MinNote int
	MaxNote int

	ProgramNumber uint8

	notesOn [noteCount]*openNote
}

func newChannel(id uint8) *Channel {
	return &Channel{
		ID:      id,
		MinNote: math.MaxInt,
		MaxNote: math.MinInt,
	}
}

// HasNotes reports whether any note-on reached the channel.
func (c *Channel) HasNotes() bool {
	return c.MinNote <= c.MaxNote
}

func (c *Channel) noteOn(pitch, velocity uint8, time float64, tick uint64) {
	if c.notesOn[pitch] != nil {
		c.closeNote(pitch, time, tick)
	}

	c.notesOn[pitch] = &openNote{
		startTime:     time,
		startTick:     tick,
		velocity:      velocity,
		programNumber: c.ProgramNumber,
	}

	if int(pitch) < c.MinNote {
		c.MinNote = int(pitch)
	}
	if int(pitch) > c.MaxNote {
		c.MaxNote = int(pitch)
	}
}

// noteOff reports false when no note was sounding at pitch.
func (c *Channel) noteOff(pitch uint8, time float64, tick uint64) bool {
	if c.notesOn[pitch] == nil {
		return false
	}
	c.closeNote(pitch, time, tick)
	c.notesOn[pitch] = nil
	return true
}

func (c *Channel) closeNote(pitch uint8, time float64, tick uint64) {
	open := c.notesOn[pitch]
	c.Output = append(c.Output, NoteEvent{
		StartTime:     open.startTime,
		Duration:      time - open.startTime,
		Pitch:         pitch,
		Velocity:      open.velocity,
		Tonal:         true,
		ProgramNumber: open.programNumber,
		StartTick:     open.startTick,
		DurationTicks: tick - open.startTick,
	})
}

// dropOpenNotes forgets notes still sounding and returns how many there were.
func (c *Channel) dropOpenNotes() int {
	n := 0
	for i := range c.notesOn {
		if c.notesOn[i] != nil {
			c.notesOn[i] = nil
			n++
		}
	}
	return n
}
