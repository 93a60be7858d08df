// Package logger provides the colored, prefixed, leveled logger used across the service.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/logrusorgru/aurora"
)

// Logger writes "[PREFIX] [LEVEL] message" lines, colored per level.
type Logger struct {
	info    *log.Logger
	warning *log.Logger
	err     *log.Logger
}

// New creates a Logger whose prefix tag is printed in color.
func New(prefix string, color aurora.Color, w io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, errors.New("logger prefix is required")
	}
	if w == nil {
		return nil, errors.New("logger writer is required")
	}

	tag := aurora.Colorize(fmt.Sprintf("[%s]", prefix), color)
	return &Logger{
		info:    log.New(w, fmt.Sprintf("%s %s ", tag, aurora.Green("[INFO]")), log.LstdFlags),
		warning: log.New(w, fmt.Sprintf("%s %s ", tag, aurora.Yellow("[WARNING]")), log.LstdFlags),
		err:     log.New(w, fmt.Sprintf("%s %s ", tag, aurora.Red("[ERROR]")), log.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) { l.info.Println(msg) }

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) { l.warning.Println(msg) }

// Error logs a failure.
func (l *Logger) Error(msg string) { l.err.Println(msg) }
