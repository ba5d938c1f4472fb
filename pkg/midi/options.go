package midi

import "go.uber.org/zap"

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sends decoder diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(d *Decoder) {
		if l != nil {
			d.log = l.Named("decoder")
		}
	}
}

// WithDefaultTempo sets the microseconds per quarter note used until the first Set Tempo event.
func WithDefaultTempo(microsecondsPerQuarterNote uint32) Option {
	return func(d *Decoder) {
		if microsecondsPerQuarterNote > 0 {
			d.defaultTempo = microsecondsPerQuarterNote
		}
	}
}

// WithZeroVelocityNoteOff makes a note-on with velocity 0 close the note like a note-off.
// Without it such a note-on opens a note with velocity 0.
func WithZeroVelocityNoteOff() Option {
	return func(d *Decoder) {
		d.zeroVelocityNoteOff = true
	}
}
