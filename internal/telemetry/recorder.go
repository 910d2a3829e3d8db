// Package telemetry samples simulation state at a fixed interval and writes
// it as CSV.
package telemetry

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/ashgrove/dashcore/internal/core/event"
)

// Sample is one telemetry row.
type Sample struct {
	Frame          uint64  `csv:"frame"`
	Elapsed        float64 `csv:"elapsed_s"`
	PlayerHealth   float64 `csv:"player_hp"`
	PlayerAlive    bool    `csv:"player_alive"`
	ActiveHostiles int     `csv:"active_hostiles"`
	OccupiedSlots  int     `csv:"occupied_slots"`
	Kills          int     `csv:"kills"`
	JumpKills      int     `csv:"jump_kills"`
	Hits           int     `csv:"hits_taken"`
	DamageTaken    float64 `csv:"damage_taken"`
}

// Source fills the gameplay fields of a sample.
type Source func(s *Sample)

// Recorder is an updatable that writes a Sample every interval of
// simulated time. Write failures are logged and remembered; the
// simulation keeps running.
type Recorder struct {
	out      io.Writer
	closer   io.Closer
	source   Source
	interval float64
	log      *zap.Logger

	frame   uint64
	elapsed float64
	since   float64

	jumpKills int
	hits      int
	damage    float64

	headerWritten bool
	written       int
	err           error
	scope         event.Scope
}

func NewRecorder(out io.Writer, source Source, interval time.Duration, bus *event.Bus, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Recorder{out: out, source: source, interval: interval.Seconds(), log: log}
	if bus != nil {
		r.scope.Add(event.Subscribe(bus, func(ev event.HostileKilled) {
			if ev.Cause == event.CauseJumpKill {
				r.jumpKills++
			}
		}))
		r.scope.Add(event.Subscribe(bus, func(ev event.DamageDealt) {
			r.hits++
			r.damage += ev.Amount
		}))
	}
	return r
}

// NewFileRecorder writes to path, creating parent directories.
func NewFileRecorder(path string, source Source, interval time.Duration, bus *event.Bus, log *zap.Logger) (*Recorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating telemetry directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	r := NewRecorder(f, source, interval, bus, log)
	r.closer = f
	return r, nil
}

func (r *Recorder) Tick(dt time.Duration) {
	sec := dt.Seconds()
	r.frame++
	r.elapsed += sec
	r.since += sec
	if r.interval > 0 && r.since < r.interval {
		return
	}
	r.since = 0
	r.Flush()
}

// Flush writes a sample of the current state immediately.
func (r *Recorder) Flush() {
	s := Sample{
		Frame:       r.frame,
		Elapsed:     r.elapsed,
		JumpKills:   r.jumpKills,
		Hits:        r.hits,
		DamageTaken: r.damage,
	}
	if r.source != nil {
		r.source(&s)
	}
	if err := r.write(s); err != nil && r.err == nil {
		r.err = err
		r.log.Error("telemetry write failed", zap.Error(err))
	}
}

func (r *Recorder) write(s Sample) error {
	records := []Sample{s}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.out); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, r.out); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
	}
	r.written++
	return nil
}

// Written returns the number of rows written.
func (r *Recorder) Written() int { return r.written }

// Err returns the first write error, if any.
func (r *Recorder) Err() error { return r.err }

// Close writes a final sample, drops bus subscriptions and closes the
// underlying file if the recorder opened it.
func (r *Recorder) Close() error {
	r.Flush()
	r.scope.Close()
	var closeErr error
	if r.closer != nil {
		closeErr = r.closer.Close()
	}
	return errors.Join(r.err, closeErr)
}
