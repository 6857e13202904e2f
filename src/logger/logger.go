// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/H0llyW00dzZ/c509-converter/src/internal/helper/gc"
)

// Logger defines the interface for logging operations.
//
// Conversion commands report progress through Printf and Println and
// per-certificate failures through Errorf, so batch runs can keep going
// while still surfacing what was skipped.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// Errorf formats and prints an error message.
	Errorf(format string, v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger writing to stderr with timestamps
// disabled, leaving stdout free for converted certificates.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stderr, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// Errorf prints a message prefixed with "error: ".
func (c *CLILogger) Errorf(format string, v ...any) { c.logger.Printf("error: "+format, v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// Level names used in [JSONLogger] entries.
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// entry is one JSONLogger line.
type entry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// JSONLogger implements Logger by writing one JSON object per line, for
// batch jobs whose output is collected by other tools.
//
// JSONLogger is safe for concurrent use by multiple goroutines.
type JSONLogger struct {
	mu     sync.Mutex
	writer io.Writer
	silent bool
}

// NewJSONLogger creates a JSON logger writing to writer. A nil writer
// discards output, and silent suppresses every message.
func NewJSONLogger(writer io.Writer, silent bool) *JSONLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &JSONLogger{
		writer: writer,
		silent: silent,
	}
}

// Printf logs an info entry.
func (j *JSONLogger) Printf(format string, v ...any) { j.write(LevelInfo, fmt.Sprintf(format, v...)) }

// Println logs an info entry. Operands are joined as by [fmt.Sprint].
func (j *JSONLogger) Println(v ...any) { j.write(LevelInfo, fmt.Sprint(v...)) }

// Errorf logs an error entry.
func (j *JSONLogger) Errorf(format string, v ...any) { j.write(LevelError, fmt.Sprintf(format, v...)) }

func (j *JSONLogger) write(level, msg string) {
	if j.silent {
		return
	}

	buf := gc.Default.Get()
	defer gc.Default.Put(buf)

	// Encode appends the trailing newline.
	if err := json.NewEncoder(buf).Encode(entry{Level: level, Message: msg}); err != nil {
		return
	}

	j.mu.Lock()
	buf.WriteTo(j.writer)
	j.mu.Unlock()
}

// SetOutput sets the output destination. A nil writer discards output.
//
// SetOutput is safe for concurrent use by multiple goroutines.
func (j *JSONLogger) SetOutput(w io.Writer) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if w == nil {
		j.writer = io.Discard
	} else {
		j.writer = w
	}
}
