package logging

import (
	"encoding/json"
	"strings"
	"time"
)

// Entry is one parsed line of the JSON audit log, as written by Logger.
type Entry struct {
	Time      time.Time      `json:"time"`
	Level     string         `json:"level"`
	Msg       string         `json:"msg"`
	Validator string         `json:"validator,omitempty"`
	Component string         `json:"component,omitempty"`
	Extra     map[string]any `json:"-"` // Captures additional fields
}

// UnmarshalJSON implements custom unmarshaling to capture extra fields
func (e *Entry) UnmarshalJSON(data []byte) error {
	// First, unmarshal known fields using a type alias to avoid recursion
	type Alias Entry
	aux := &struct {
		*Alias
	}{
		Alias: (*Alias)(e),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	// Then unmarshal all fields to capture extras
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}

	// Remove known fields, keep the rest as extra
	delete(all, "time")
	delete(all, "level")
	delete(all, "msg")
	delete(all, "validator")
	delete(all, "component")

	if len(all) > 0 {
		e.Extra = all
	}

	return nil
}

// ParseLine parses one log line. Lines that are not valid JSON entries
// (partial writes, rotation seams) report ok=false.
func ParseLine(line string) (Entry, bool) {
	var e Entry
	if err := json.Unmarshal([]byte(line), &e); err != nil {
		return Entry{}, false
	}
	if e.Msg == "" && e.Level == "" {
		return Entry{}, false
	}
	return e, true
}

// ParseLevel normalizes a level string to one of the level constants.
// Unknown values default to INFO.
func ParseLevel(level string) string {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return LevelDebug
	case LevelWarn:
		return LevelWarn
	case LevelError:
		return LevelError
	default:
		return LevelInfo
	}
}
