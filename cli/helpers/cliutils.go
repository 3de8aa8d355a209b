package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/compozy/usertable/cli/tui/models"
	"github.com/compozy/usertable/engine/record"
	"github.com/mattn/go-runewidth"
)

// CliError represents a CLI-specific error with enhanced context
type CliError struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   string         `json:"details,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	cause     error
}

func (e *CliError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CliError) Unwrap() error {
	return e.cause
}

// NewCliError creates a new CLI error with context
func NewCliError(code, message string, details ...string) *CliError {
	err := &CliError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Context:   make(map[string]any),
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// WrapCliError builds a CliError that unwraps to cause.
func WrapCliError(code, message string, cause error) *CliError {
	err := NewCliError(code, message)
	if cause != nil {
		err.Details = cause.Error()
		err.cause = cause
	}
	return err
}

// WithContext adds context to the error
func (e *CliError) WithContext(key string, value any) *CliError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// IsTimeoutError checks if an error is a timeout error
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, record.ErrTimeout) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out")
}

// IsNetworkError checks if an error is a network-related error
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, record.ErrNetwork) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	networkKeywords := []string{
		"connection refused", "connection reset", "no route to host",
		"network unreachable", "no such host", "name resolution failed",
	}
	for _, keyword := range networkKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

// FormatError formats errors based on output mode
func FormatError(err error, mode models.Mode) string {
	if err == nil {
		return ""
	}
	switch mode {
	case models.ModeJSON:
		return formatErrorJSON(err)
	case models.ModeTUI:
		return formatErrorTUI(err)
	default:
		return err.Error()
	}
}

func formatErrorJSON(err error) string {
	response := map[string]any{"error": err.Error(), "details": ""}
	var cliErr *CliError
	if errors.As(err, &cliErr) {
		response = map[string]any{
			"code":    cliErr.Code,
			"error":   cliErr.Message,
			"details": cliErr.Details,
		}
	}
	data, marshalErr := json.MarshalIndent(response, "", "  ")
	if marshalErr != nil {
		return `{"error": "JSON marshaling failed", "details": ""}`
	}
	return string(data)
}

func formatErrorTUI(err error) string {
	message, details := extractErrorInfo(err)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	result := fmt.Sprintf("%s %s", getErrorIcon(err), style.Render(message))
	if details != "" {
		detailStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true)
		result += "\n" + detailStyle.Render("Details: "+details)
	}
	return result
}

func extractErrorInfo(err error) (message, details string) {
	var cliErr *CliError
	if errors.As(err, &cliErr) {
		return cliErr.Message, cliErr.Details
	}
	return err.Error(), ""
}

func getErrorIcon(err error) string {
	switch {
	case IsNetworkError(err):
		return "⚡"
	case IsTimeoutError(err):
		return "⏱"
	default:
		return "✗"
	}
}

// OutputError writes err to stderr in the format of mode.
func OutputError(err error, mode models.Mode) {
	WriteError(os.Stderr, err, mode)
}

func WriteError(w io.Writer, err error, mode models.Mode) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, FormatError(err, mode))
}

// ValidateEnum validates that a value is in a set of allowed values
func ValidateEnum(value string, allowed []string, fieldName string) error {
	if value == "" || slices.Contains(allowed, value) {
		return nil
	}
	return NewCliError(CodeInvalidFlag,
		fmt.Sprintf("%s must be one of: %s", fieldName, strings.Join(allowed, ", ")),
		fmt.Sprintf("provided: %s", value))
}

// Truncate shortens s to at most width display cells, ending with an
// ellipsis when anything was cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s with spaces to width display cells.
func PadRight(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}

// Pluralize returns singular or plural form based on count
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
