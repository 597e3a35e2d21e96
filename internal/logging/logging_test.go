package logging

import (
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected LogLevel
		ok       bool
	}{
		{
			name:     "Debug",
			input:    "debug",
			expected: LevelDebug,
			ok:       true,
		},
		{
			name:     "Info",
			input:    "info",
			expected: LevelInfo,
			ok:       true,
		},
		{
			name:     "Warn",
			input:    "warn",
			expected: LevelWarn,
			ok:       true,
		},
		{
			name:     "Warning alias",
			input:    "warning",
			expected: LevelWarn,
			ok:       true,
		},
		{
			name:     "Error",
			input:    "error",
			expected: LevelError,
			ok:       true,
		},
		{
			name:     "Case insensitive",
			input:    "DEBUG",
			expected: LevelDebug,
			ok:       true,
		},
		{
			name:     "Unknown falls back to info",
			input:    "verbose",
			expected: LevelInfo,
			ok:       false,
		},
		{
			name:     "Empty falls back to info",
			input:    "",
			expected: LevelInfo,
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseLevel(tt.input)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("parseLevel(%q) = (%v, %v), want (%v, %v)",
					tt.input, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestLogLevelConstants(t *testing.T) {
	// Verify log level ordering
	if LevelDebug >= LevelInfo {
		t.Error("LevelDebug should be less than LevelInfo")
	}
	if LevelInfo >= LevelWarn {
		t.Error("LevelInfo should be less than LevelWarn")
	}
	if LevelWarn >= LevelError {
		t.Error("LevelWarn should be less than LevelError")
	}

	levels := []LogLevel{LevelDebug, LevelInfo, LevelWarn, LevelError}
	for i := 0; i < len(levels)-1; i++ {
		if levels[i] >= levels[i+1] {
			t.Errorf("Log levels should be in ascending order: %v >= %v", levels[i], levels[i+1])
		}
	}
}

func TestIsDebugEnabled(t *testing.T) {
	// GetLevel latches on first use, so only check consistency here
	if IsDebugEnabled() != (GetLevel() <= LevelDebug) {
		t.Error("IsDebugEnabled disagrees with GetLevel")
	}
}

// TestLoggingFunctions tests that logging functions don't panic
func TestLoggingFunctions(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{
			name: "Debug doesn't panic",
			fn:   func() { Debug("test message") },
		},
		{
			name: "Info doesn't panic",
			fn:   func() { Info("test message") },
		},
		{
			name: "Warn doesn't panic",
			fn:   func() { Warn("test message") },
		},
		{
			name: "Error doesn't panic",
			fn:   func() { Error("test message") },
		},
		{
			name: "Debug with args doesn't panic",
			fn:   func() { Debug("test %s %d", "message", 123) },
		},
		{
			name: "Info with args doesn't panic",
			fn:   func() { Info("test %s %d", "message", 123) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Function panicked: %v", r)
				}
			}()
			tt.fn()
		})
	}
}

func TestPrintfAndPrintln(t *testing.T) {
	t.Run("Printf doesn't panic", func(t *testing.T) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Printf panicked: %v", r)
			}
		}()
		Printf("test message")
		Printf("test %s %d", "message", 123)
	})

	t.Run("Println doesn't panic", func(t *testing.T) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Println panicked: %v", r)
			}
		}()
		Println("test message")
		Println("test", "message", 123)
	})
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{LogLevel(99), "unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := tt.level.String()
			if got != tt.expected {
				t.Errorf("LogLevel.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}
