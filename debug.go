// +build tieralloc_debug

package tieralloc

// contractViolation panics with a typed *ContractError in debug builds,
// turning a free of an unowned pointer or a non-growing realloc into a
// loud failure instead of silently corrupting allocator state. Double
// frees are not detected.
func contractViolation(op, msg string) {
	if !globalSettings.Bool("debug.assertions") {
		return
	}
	panic(&ContractError{Op: op, Msg: msg})
}
