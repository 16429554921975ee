// Package dbg provides a debug logger that is a no-op unless the binary is
// built with the "debug" build tag. This lets the core call into it freely on
// hot paths (opcode dispatch, bus routing) without paying for formatting or
// I/O in normal builds.
package dbg

// DebugLogger is implemented by both the real and no-op backends.
type DebugLogger interface {
	Printf(format string, a ...interface{})
	Println(a ...interface{})
}

// debugLog is set by exactly one of debug_on.go / debug_off.go's init.
var debugLog DebugLogger

// Printf logs a formatted message if debug logging is enabled.
func Printf(format string, a ...interface{}) {
	debugLog.Printf(format, a...)
}

// Println logs a message if debug logging is enabled.
func Println(a ...interface{}) {
	debugLog.Println(a...)
}
