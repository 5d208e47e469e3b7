package input

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sort"

	"github.com/gocarina/gocsv"
)

// ScriptRow is one line of a replay script.
type ScriptRow struct {
	Tick int    `csv:"tick"`
	Kind string `csv:"kind"`
	Key  string `csv:"key"`
}

// Script is a tick-indexed sequence of input events for headless runs.
type Script struct {
	byTick map[int][]Event
	last   int
}

// ReadScript parses a CSV script with tick,kind,key columns.
func ReadScript(r io.Reader) (*Script, error) {
	var rows []ScriptRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parsing input script: %w", err)
	}
	return NewScript(rows)
}

// LoadScript reads a script from a CSV file.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input script: %w", err)
	}
	defer f.Close()
	return ReadScript(f)
}

// NewScript builds a script from rows. Rows sharing a tick keep their order.
func NewScript(rows []ScriptRow) (*Script, error) {
	s := &Script{byTick: make(map[int][]Event)}

	sorted := make([]ScriptRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Tick < sorted[j].Tick })

	for i, row := range sorted {
		if row.Tick < 0 {
			return nil, fmt.Errorf("row %d: negative tick %d", i, row.Tick)
		}
		kind, err := ParseKind(row.Kind)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		s.byTick[row.Tick] = append(s.byTick[row.Tick], Event{Kind: kind, Key: ParseKey(row.Key)})
		if row.Tick > s.last {
			s.last = row.Tick
		}
	}
	return s, nil
}

// EventsAt returns the events scheduled for tick. The result has no spare
// capacity, so appending to it never writes into the script.
func (s *Script) EventsAt(tick int) []Event {
	return slices.Clip(s.byTick[tick])
}

// LastTick returns the highest tick with an event.
func (s *Script) LastTick() int {
	return s.last
}

// Rows returns the script as CSV rows, ordered by tick.
func (s *Script) Rows() []ScriptRow {
	ticks := make([]int, 0, len(s.byTick))
	for t := range s.byTick {
		ticks = append(ticks, t)
	}
	sort.Ints(ticks)

	var rows []ScriptRow
	for _, t := range ticks {
		for _, e := range s.byTick[t] {
			rows = append(rows, ScriptRow{Tick: t, Kind: e.Kind.String(), Key: e.Key.String()})
		}
	}
	return rows
}

// WriteScript writes s as CSV.
func WriteScript(w io.Writer, s *Script) error {
	if err := gocsv.Marshal(s.Rows(), w); err != nil {
		return fmt.Errorf("writing input script: %w", err)
	}
	return nil
}

// ScriptSource replays a script one tick per Poll.
type ScriptSource struct {
	script *Script
	tick   int
}

// NewScriptSource starts replaying s at tick 0.
func NewScriptSource(s *Script) *ScriptSource {
	return &ScriptSource{script: s}
}

// Poll returns the events of the current tick and advances.
func (src *ScriptSource) Poll() []Event {
	events := src.script.EventsAt(src.tick)
	src.tick++
	return events
}

// Tick returns the next tick Poll will replay.
func (src *ScriptSource) Tick() int {
	return src.tick
}
