package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Normalization label constants.
const (
	FitsValue      = "Fits"      // Name already within the limit
	TruncatedValue = "Truncated" // Name was cut to the limit
	UnknownValue   = "Unknown"   // Limit unknown, nothing was cut
)

// Color variables for console output.
var (
	TruncatedColor = color.New(color.FgYellow, color.Bold) // TruncatedColor represents data loss.
	FitsColor      = color.New(color.FgGreen)              // FitsColor represents a clean write.
	UnknownColor   = color.New(color.FgCyan)               // UnknownColor represents informational signal.
)

// GetPlainLabel returns a plain text label for a normalization outcome.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(maxNameLength int, truncated bool) string {
	switch {
	case maxNameLength <= 0:
		return UnknownValue
	case truncated:
		return TruncatedValue
	default:
		return FitsValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(maxNameLength int, truncated bool) string {
	text := GetPlainLabel(maxNameLength, truncated)

	switch text {
	case TruncatedValue:
		return TruncatedColor.Sprint(text)
	case FitsValue:
		return FitsColor.Sprint(text)
	default:
		return UnknownColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for capacity caching.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".simbook_cache.db"
	}
	return filepath.Join(homeDir, ".simbook_cache.db")
}

// GetCardFilePath returns the default path of the emulated SIM card file.
func GetCardFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return DefaultCardFile
	}
	return filepath.Join(homeDir, DefaultCardFile)
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
