package tieralloc

import (
	"testing"

	s "github.com/prataprc/gosettings"
)

func TestConfigureDefaults(t *testing.T) {
	if err := Configure(s.Settings{}); err != nil {
		t.Fatalf("Configure with no overrides should succeed: %v", err)
	}
}

func TestConfigureBadType(t *testing.T) {
	if err := Configure(s.Settings{"log.level": 42}); err != ErrConfigNoString {
		t.Errorf("expected ErrConfigNoString for a non-string log.level, got %v", err)
	}
	if err := Configure(s.Settings{"debug.assertions": "yes"}); err != ErrConfigNoBool {
		t.Errorf("expected ErrConfigNoBool for a non-bool debug.assertions, got %v", err)
	}
	if err := Configure(s.Settings{"static.warmupbytes": "lots"}); err != ErrConfigNoNumber {
		t.Errorf("expected ErrConfigNoNumber for a non-int64 static.warmupbytes, got %v", err)
	}
}

func TestConfigureWarmup(t *testing.T) {
	if err := Configure(s.Settings{"static.warmupbytes": int64(4096)}); err != nil {
		t.Errorf("expected a small warmup reservation to succeed, got %v", err)
	}
	// Restore defaults so later tests in the package see the baseline.
	if err := Configure(Defaultsettings()); err != nil {
		t.Fatalf("failed to restore default settings: %v", err)
	}
}
