// +build !tieralloc_debug

package tieralloc

import "github.com/bnclabs/golog"

// contractViolation only logs a trace line outside debug builds: per the
// source allocator's own error model, a caller-contract violation is
// undefined behaviour, detectable only via assertion.
func contractViolation(op, msg string) {
	log.Tracef("tieralloc: contract violation in %s: %s", op, msg)
}
