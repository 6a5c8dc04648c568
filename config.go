package tieralloc

import (
	"github.com/bnclabs/golog"
	s "github.com/prataprc/gosettings"

	"github.com/bnclabs/tieralloc/internal/vm"
)

// Defaultsettings returns tieralloc's configurable parameters.
//
// "log.level" (string, default: "info")
//		Minimum severity tieralloc logs at, passed straight through to
//		github.com/bnclabs/golog's own SetLogger.
//
// "debug.assertions" (bool, default: true)
//		Gate for caller-contract panics; only takes effect when built
//		with the tieralloc_debug tag.
//
// "static.warmupbytes" (int64, default: 0)
//		Bytes to reserve and immediately release through the VM layer
//		when Configure runs, so a broken VM backend is caught at
//		startup instead of on a caller's first allocation.
func Defaultsettings() s.Settings {
	return s.Settings{
		"log.level":          "info",
		"debug.assertions":   true,
		"static.warmupbytes": int64(0),
	}
}

var globalSettings = Defaultsettings()

// settingsString and settingsBool mirror the Config.String/Config.Bool
// accessors named in DESIGN.md's config.go entry: a present value of the wrong type
// is a config error, not something to coerce or ignore.
func settingsString(setts s.Settings, key string) (string, error) {
	v, ok := setts[key]
	if !ok {
		return "", ErrConfigMissing
	}
	sv, ok := v.(string)
	if !ok {
		return "", ErrConfigNoString
	}
	return sv, nil
}

func settingsBool(setts s.Settings, key string) (bool, error) {
	v, ok := setts[key]
	if !ok {
		return false, ErrConfigMissing
	}
	bv, ok := v.(bool)
	if !ok {
		return false, ErrConfigNoBool
	}
	return bv, nil
}

func settingsInt64(setts s.Settings, key string) (int64, error) {
	v, ok := setts[key]
	if !ok {
		return 0, ErrConfigMissing
	}
	iv, ok := v.(int64)
	if !ok {
		return 0, ErrConfigNoNumber
	}
	return iv, nil
}

// Configure installs process-wide settings, after validating the
// well-known keys' types. It is not safe to call concurrently with
// allocation traffic; call it, if at all, once during startup before the
// first Alloc/StaticAlloc.
func Configure(setts s.Settings) error {
	merged := (s.Settings{}).Mixin(Defaultsettings(), setts)

	if _, err := settingsString(merged, "log.level"); err != nil {
		return err
	}
	if _, err := settingsBool(merged, "debug.assertions"); err != nil {
		return err
	}
	warmup, err := settingsInt64(merged, "static.warmupbytes")
	if err != nil {
		return err
	}

	globalSettings = merged
	log.SetLogger(nil, globalSettings)

	if warmup > 0 {
		p, err := vm.Reserve(uintptr(warmup))
		if err != nil {
			return ErrReserveFailed
		}
		if err := vm.Release(p, uintptr(warmup)); err != nil {
			return ErrReserveFailed
		}
	}
	return nil
}
