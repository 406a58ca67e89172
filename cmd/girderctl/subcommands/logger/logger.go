// Package logger builds the loggers handed to subcommand tasks.
package logger

import (
	"fmt"
	"io"
	"log"
)

func Null() *log.Logger {
	return log.New(io.Discard, "", log.LstdFlags)
}

// Prefixed writes to w with "[name] " in front of each line,
// so output from nested subcommands names its origin.
func Prefixed(w io.Writer, name string) *log.Logger {
	return log.New(w, fmt.Sprintf("[%s] ", name), log.LstdFlags)
}
