package menuplanner

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ExpansionLogger is the interface for menu expansion step logging.
type ExpansionLogger interface {
	LogStep(step StepLog) error
}

// NewExpansionLogFilePath returns a file path based on the cleaned up menu name to make it easier to find the log for a given week.
func NewExpansionLogFilePath(menuName string) string {
	return fmt.Sprintf(
		"./logs/%d.%s.json",
		time.Now().Unix(),
		strings.ReplaceAll(strings.ToLower(menuName), " ", "_"),
	)
}

// StepLog represents a single resolved reference in the expansion
type StepLog struct {
	Depth       int       `json:"depth"`
	Timestamp   time.Time `json:"timestamp"`
	Section     string    `json:"section"`
	Reference   string    `json:"reference"`
	Kind        string    `json:"kind"`
	Amount      float64   `json:"amount"`
	Unit        string    `json:"unit"`
	Multiplier  float64   `json:"multiplier,omitempty"`
	Contributor string    `json:"contributor,omitempty"`
}

// FileExpansionLogger logs to a file, accumulating steps and flushing at the end
type FileExpansionLogger struct {
	steps  []StepLog
	writer io.Writer
}

// NewFileExpansionLogger creates a new file-based expansion logger
func NewFileExpansionLogger(writer io.Writer) *FileExpansionLogger {
	return &FileExpansionLogger{
		steps:  make([]StepLog, 0),
		writer: writer,
	}
}

// LogStep logs a step to the buffer (does not flush immediately)
func (fl *FileExpansionLogger) LogStep(step StepLog) error {
	fl.steps = append(fl.steps, step)
	return nil
}

// Steps returns the buffered steps.
func (fl *FileExpansionLogger) Steps() []StepLog {
	return fl.steps
}

// Flush flushes all accumulated steps to the writer
func (fl *FileExpansionLogger) Flush() error {
	if fl.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"expansion": map[string]any{
			"timestamp": time.Now(),
			"steps":     fl.steps,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal expansion log: %w", err)
	}

	if _, err := fl.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write expansion log: %w", err)
	}

	fl.steps = fl.steps[:0]
	return nil
}

// NoOpExpansionLogger is a logger that discards all log entries
type NoOpExpansionLogger struct{}

// NewNoOpExpansionLogger creates a new no-op expansion logger
func NewNoOpExpansionLogger() *NoOpExpansionLogger {
	return &NoOpExpansionLogger{}
}

// LogStep discards the step (no-op)
func (nop *NoOpExpansionLogger) LogStep(step StepLog) error {
	return nil
}

// StdoutExpansionLogger logs each step as a JSON line (for Lambda/CloudWatch)
type StdoutExpansionLogger struct {
	out io.Writer
}

// NewStdoutExpansionLogger creates a new stdout-based expansion logger
func NewStdoutExpansionLogger() *StdoutExpansionLogger {
	return &StdoutExpansionLogger{out: os.Stdout}
}

// LogStep writes the step as a JSON line
func (l *StdoutExpansionLogger) LogStep(step StepLog) error {
	data, err := json.Marshal(step)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(l.out, string(data))
	return err
}
