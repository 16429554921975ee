//go:build !debug

package dbg

type noOpLogger struct{}

func init() {
	debugLog = &noOpLogger{}
}

func (noOpLogger) Printf(format string, a ...interface{}) {}

func (noOpLogger) Println(a ...interface{}) {}
