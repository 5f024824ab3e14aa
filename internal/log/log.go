// Package log provides leveled, colored terminal output plus run statistics
// tracking for the test generation pipeline. Terminal output uses ANSI
// escape codes; no external dependencies are required. A plain-text copy of
// every message is appended to the run log file when one is configured.
//
// The Logger owns the run's cumulative counters: they are mutated only
// through its increment methods and read once at end of run, so there is no
// ambient global state.
package log

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/types"
)

// ANSI escape codes for terminal colors.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorCyan   = "\033[0;36m"
	colorWhite  = "\033[1;37m"
)

// sectionLine is the unicode box-draw separator used by Section and the
// end-of-run summary.
const sectionLine = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// Level is the minimum severity a message must have to be emitted.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

// ParseLevel converts a level name (case-insensitive) to a Level.
// Unknown names return LevelInfo and an error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARNING":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q (must be DEBUG, INFO, WARNING, or ERROR)", s)
	}
}

// Logger writes leveled messages to stdout (colored) and optionally to a log
// file (plain), and accumulates the run statistics reported at end of run.
type Logger struct {
	level     Level
	file      *os.File
	startTime time.Time
	stats     types.RunStats
}

// New creates a Logger at the given level. If logPath is non-empty, the file
// is created (truncating any previous run's log) and every message is also
// appended there without color codes. A file open failure is non-fatal: the
// logger still works, terminal-only.
func New(level Level, logPath string) *Logger {
	l := &Logger{level: level, startTime: time.Now()}
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			fmt.Printf("%s[WARNING]%s could not open log file %s: %v\n", colorYellow, colorReset, logPath, err)
		} else {
			l.file = f
		}
	}
	return l
}

// Close releases the log file, if any.
func (l *Logger) Close() {
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
}

// emit prints a colored tag + message to stdout and a timestamped plain line
// to the log file.
func (l *Logger) emit(level Level, color, tag, msg string) {
	if level < l.level {
		return
	}
	fmt.Printf("%s[%s]%s %s\n", color, tag, colorReset, msg)
	if l.file != nil {
		ts := time.Now().Format("2006-01-02 15:04:05")
		fmt.Fprintf(l.file, "%s - %s - %s\n", ts, tag, msg)
	}
}

// Debug logs a cyan [DEBUG] message.
func (l *Logger) Debug(msg string) {
	l.emit(LevelDebug, colorCyan, "DEBUG", msg)
}

// Info logs a white [INFO] message.
func (l *Logger) Info(msg string) {
	l.emit(LevelInfo, colorWhite, "INFO", msg)
}

// Success logs a green [SUCCESS] message at INFO severity.
func (l *Logger) Success(msg string) {
	l.emit(LevelInfo, colorGreen, "SUCCESS", msg)
}

// Warning logs a yellow [WARNING] message and increments the warning counter.
func (l *Logger) Warning(msg string) {
	l.stats.Warnings++
	l.emit(LevelWarning, colorYellow, "WARNING", msg)
}

// Error logs a red [ERROR] message and increments the error counter.
func (l *Logger) Error(msg string) {
	l.stats.Errors++
	l.emit(LevelError, colorRed, "ERROR", msg)
}

// Section prints a cyan unicode box-draw separator with a title.
func (l *Logger) Section(title string) {
	fmt.Printf("\n%s%s%s\n", colorCyan, sectionLine, colorReset)
	fmt.Printf("%s%s%s\n", colorCyan, title, colorReset)
	fmt.Printf("%s%s%s\n\n", colorCyan, sectionLine, colorReset)
	if l.file != nil {
		fmt.Fprintf(l.file, "=== %s ===\n", title)
	}
}

// ---------------------------------------------------------------------------
// Run statistics
// ---------------------------------------------------------------------------

// FileProcessed increments the processed-file counter.
func (l *Logger) FileProcessed() { l.stats.FilesProcessed++ }

// TestGenerated increments the generated-test counter.
func (l *Logger) TestGenerated() { l.stats.TestsGenerated++ }

// FileRefactored increments the refactored-file counter.
func (l *Logger) FileRefactored() { l.stats.RefactoredFiles++ }

// Stats returns a copy of the current counters.
func (l *Logger) Stats() types.RunStats {
	return l.stats
}

// PrintSummary prints the end-of-run box-draw summary table to stdout.
func (l *Logger) PrintSummary() {
	duration := time.Since(l.startTime).Round(time.Second)

	fmt.Printf("\n%s\n", sectionLine)
	fmt.Println("TEST GENERATION SUMMARY")
	fmt.Printf("%s\n", sectionLine)
	fmt.Printf("  %-22s %s\n", "Duration:", duration)
	fmt.Printf("  %-22s %d\n", "Files processed:", l.stats.FilesProcessed)
	fmt.Printf("  %-22s %d\n", "Tests generated:", l.stats.TestsGenerated)
	fmt.Printf("  %-22s %d\n", "Files refactored:", l.stats.RefactoredFiles)
	fmt.Printf("  %-22s %d\n", "Warnings:", l.stats.Warnings)
	fmt.Printf("  %-22s %d\n", "Errors:", l.stats.Errors)
	if l.stats.Errors == 0 {
		fmt.Println("  All operations completed successfully.")
	} else {
		fmt.Println("  Some operations had errors — check the log for details.")
	}
	fmt.Printf("%s\n\n", sectionLine)
}

// SaveReport writes the run statistics as indented JSON to path.
func (l *Logger) SaveReport(path string) error {
	now := time.Now()
	report := types.RunReport{
		Timestamp:       now.Format(time.RFC3339),
		DurationSeconds: now.Sub(l.startTime).Seconds(),
		Statistics:      l.stats,
		StartTime:       l.startTime.Format(time.RFC3339),
		EndTime:         now.Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write run report %s: %w", path, err)
	}
	l.Info(fmt.Sprintf("report saved to %s", path))
	return nil
}
