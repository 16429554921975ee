//go:build debug

package dbg

import (
	"fmt"
	"log"
	"os"
)

type realLogger struct {
	logger *log.Logger
}

func init() {
	debugLog = &realLogger{
		logger: log.New(os.Stderr, "dmg: ", log.Lshortfile),
	}
}

func (r *realLogger) Printf(format string, a ...interface{}) {
	r.logger.Output(3, fmt.Sprintf(format, a...))
}

func (r *realLogger) Println(a ...interface{}) {
	r.logger.Output(3, fmt.Sprintln(a...))
}
