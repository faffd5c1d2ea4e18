package hconsole

import (
	"fmt"
	"strings"
)

// Level tags every record emitted by a Console.
type Level int8

const (
	InvalidLevel Level = iota
	DebugLevel
	ErrorLevel
	InfoLevel
	LogLevel
	WarnLevel
	TraceLevel
	CountLevel
	CountResetLevel
	AssertLevel

	_minLevel = DebugLevel
	_maxLevel = AssertLevel
)

// Levels lists every valid level in declaration order.
func Levels() []Level {
	levels := make([]Level, 0, _maxLevel-_minLevel+1)
	for lvl := _minLevel; lvl <= _maxLevel; lvl++ {
		levels = append(levels, lvl)
	}

	return levels
}

// String returns the console method name the level originates from.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case ErrorLevel:
		return "error"
	case InfoLevel:
		return "info"
	case LogLevel:
		return "log"
	case WarnLevel:
		return "warn"
	case TraceLevel:
		return "trace"
	case CountLevel:
		return "count"
	case CountResetLevel:
		return "countReset"
	case AssertLevel:
		return "assert"
	default:
		return "invalid"
	}
}

func ParseLevel(s string) (Level, error) {
	ls := strings.ToLower(s)

	for lvl := _minLevel; lvl <= _maxLevel; lvl++ {
		if strings.ToLower(lvl.String()) == ls {
			return lvl, nil
		}
	}

	if ls == "count_reset" {
		return CountResetLevel, nil
	}

	return InvalidLevel, fmt.Errorf("invalid level %v", s)
}

func (l Level) MarshalText() ([]byte, error) {
	if l < _minLevel || l > _maxLevel {
		return nil, fmt.Errorf("invalid level %d", l)
	}

	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(b []byte) error {
	lvl, err := ParseLevel(string(b))
	if err != nil {
		return err
	}

	*l = lvl

	return nil
}
