package main

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

type velocityMap map[uint8]bool
type positionMap map[int]velocityMap

// note -> quarter position -> velocity
type noteMap map[uint8]positionMap

func (m noteMap) add(note uint8, position int, velocity uint8) {
	positions, ok := m[note]
	if !ok {
		positions = make(positionMap)
		m[note] = positions
	}

	velocities, ok := positions[position]
	if !ok {
		velocities = make(velocityMap)
		positions[position] = velocities
	}

	velocities[velocity] = true
}

// database flattens the map into sorted velocity lists.
func (m noteMap) database() map[uint8]map[int][]int {
	db := make(map[uint8]map[int][]int, len(m))
	for note, positions := range m {
		db[note] = make(map[int][]int, len(positions))
		for position, velocities := range positions {
			list := make([]int, 0, len(velocities))
			for v := range velocities {
				list = append(list, int(v))
			}
			sort.Ints(list)
			db[note][position] = list
		}
	}
	return db
}

// newVelocityMap collects the velocities of every note on channel in the files read from paths.
// Channel -1 collects all channels.
func newVelocityMap(parent context.Context, paths <-chan string, cntRoutines int, channel int) (noteMap, error) {
	log := scanLog.Named("velocityMap")
	ctx, cancel := context.WithCancel(parent)
	results, done := decodeWorker(ctx, paths, cntRoutines)

	defer func() {
		log.Debug("cancel")
		cancel()
		<-done // wait decodeWorker closed
	}()

	m := make(noteMap)

	for result := range results {
		if result.err != nil {
			return nil, result.err
		}

		log.Debug("result", zap.String("name", result.name), zap.Uint16("ticks", result.ticksPerQuarterNote))

		for _, ch := range result.channels {
			if channel >= 0 && int(ch.ID) != channel {
				continue
			}

			for _, event := range ch.Output {
				position := event.QuarterPosition(result.ticksPerQuarterNote)
				log.Debug("event", zap.Uint8("note", event.Pitch), zap.Int("position", position))

				m.add(event.Pitch, position, event.Velocity)
			}
		}
	}

	return m, nil
}
