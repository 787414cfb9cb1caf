// Package logging provides a small leveled wrapper around the standard
// logger, giving every log line a consistent prefix.
package logging

import (
	"log"
	"os"
)

type Logger struct {
	std *log.Logger
}

func New(prefix string) *Logger {
	return &Logger{std: log.New(os.Stderr, prefix+" ", log.LstdFlags)}
}

func (l *Logger) Infof(format string, args ...any) {
	l.std.Printf("INFO  "+format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.std.Printf("WARN  "+format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.std.Printf("ERROR "+format, args...)
}
