package trace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Level controls the verbosity of dispatch tracing.
type Level string

const (
	// LevelNone disables tracing (zero overhead).
	LevelNone Level = "none"
	// LevelDispatch captures every dispatched event in order.
	LevelDispatch Level = "dispatch"
)

// validLevels maps accepted trace level strings.
var validLevels = map[Level]bool{
	LevelNone:     true,
	LevelDispatch: true,
	"":            true, // empty defaults to none
}

// IsValidLevel returns true if the given level string is a recognized trace level.
func IsValidLevel(level string) bool {
	return validLevels[Level(level)]
}

// Trace collects dispatch records during a simulation run.
type Trace struct {
	Level   Level    `yaml:"level" json:"level"`
	Records []Record `yaml:"records" json:"records"`
}

// New creates a Trace ready for recording. The empty level means none.
func New(level Level) *Trace {
	if level == "" {
		level = LevelNone
	}
	return &Trace{
		Level:   level,
		Records: make([]Record, 0),
	}
}

// RecordDispatch appends one dispatch record, numbered by position in the
// dispatch order. No-op below LevelDispatch.
func (t *Trace) RecordDispatch(time float64, kind string, source, target int) {
	if t.Level != LevelDispatch {
		return
	}
	t.Records = append(t.Records, Record{
		Seq:    uint64(len(t.Records)),
		Time:   time,
		Kind:   kind,
		Source: source,
		Target: target,
	})
}

// Len returns the number of records collected.
func (t *Trace) Len() int {
	return len(t.Records)
}

// Save writes the trace to a file, choosing the encoding by extension:
// .yaml/.yml or .json.
func (t *Trace) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(t)
	case ".json":
		data, err = json.MarshalIndent(t, "", "  ")
	default:
		return fmt.Errorf("unsupported trace file extension %q (want .yaml, .yml or .json)", ext)
	}
	if err != nil {
		return fmt.Errorf("marshaling trace: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
