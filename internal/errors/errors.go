// Package errors provides error types and handling for the fuzzer.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrorType categorizes errors for handling decisions.
type ErrorType int

const (
	// Unknown is an uncategorized error.
	Unknown ErrorType = iota
	// Navigation represents page navigation failures. Recoverable: the
	// page contributes no links or forms and the scan continues.
	Navigation
	// Fill represents field fill failures. Recoverable: the probe
	// contributes zero findings.
	Fill
	// Submit represents form submission failures. Recoverable like Fill.
	Submit
	// Analysis represents response analysis failures. These indicate a
	// programmer error rather than a target-side condition.
	Analysis
	// Auth represents authentication failures. Halts the session when
	// authentication is a configured prerequisite.
	Auth
	// Timeout represents timeout errors.
	Timeout
	// Network represents network-related errors (DNS, connection).
	Network
	// Cancelled represents context cancellation.
	Cancelled
)

// String returns the string representation of ErrorType.
func (t ErrorType) String() string {
	switch t {
	case Navigation:
		return "navigation"
	case Fill:
		return "fill"
	case Submit:
		return "submit"
	case Analysis:
		return "analysis"
	case Auth:
		return "auth"
	case Timeout:
		return "timeout"
	case Network:
		return "network"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// IsRecoverable returns whether the scan continues past errors of this
// type. Only authentication failures and cancellation stop a session.
func (t ErrorType) IsRecoverable() bool {
	switch t {
	case Auth, Cancelled:
		return false
	default:
		return true
	}
}

// ScanError represents a categorized scan error.
type ScanError struct {
	Type      ErrorType
	URL       string
	Operation string
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error during %s on %s: %s (caused by: %v)",
			e.Type.String(), e.Operation, e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error during %s on %s: %s",
		e.Type.String(), e.Operation, e.URL, e.Message)
}

// Unwrap returns the underlying error.
func (e *ScanError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches a target.
func (e *ScanError) Is(target error) bool {
	t, ok := target.(*ScanError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewScanError creates a new ScanError.
func NewScanError(errType ErrorType, url, operation, message string, cause error) *ScanError {
	return &ScanError{
		Type:      errType,
		URL:       url,
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}

// NewNavigationError creates a navigation error.
func NewNavigationError(url, message string, cause error) *ScanError {
	return NewScanError(Navigation, url, "navigate", message, cause)
}

// NewFillError creates a field fill error.
func NewFillError(url, selector string, cause error) *ScanError {
	return NewScanError(Fill, url, "fill", fmt.Sprintf("could not fill field %s", selector), cause)
}

// NewSubmitError creates a form submission error.
func NewSubmitError(url, selector string, cause error) *ScanError {
	return NewScanError(Submit, url, "submit", fmt.Sprintf("could not submit form %s", selector), cause)
}

// NewAuthError creates an authentication error.
func NewAuthError(loginURL, message string, cause error) *ScanError {
	return NewScanError(Auth, loginURL, "authenticate", message, cause)
}

// NewCancelledError creates a cancelled error.
func NewCancelledError(operation string) *ScanError {
	return NewScanError(Cancelled, "", operation, "operation cancelled", nil)
}

// Categorize determines the error type from a generic error.
func Categorize(err error, url string) *ScanError {
	if err == nil {
		return nil
	}

	// Already a ScanError
	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr
	}

	// Check for context cancellation
	if errors.Is(err, context.Canceled) {
		return NewScanError(Cancelled, url, "request", "operation cancelled", err)
	}

	// Check for timeout
	if isTimeout(err) {
		return NewScanError(Timeout, url, "request", "request timed out", err)
	}

	// Check for network errors
	if isNetworkError(err) {
		return NewScanError(Network, url, "request", "network failure", err)
	}

	return NewScanError(Unknown, url, "request", err.Error(), err)
}

// IsRecoverable checks whether the scan may continue past an error.
func IsRecoverable(err error) bool {
	if err == nil {
		return true
	}

	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr.Type.IsRecoverable()
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return true
}

// IsAuthError checks if an error is authentication-related.
func IsAuthError(err error) bool {
	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr.Type == Auth
	}
	return false
}

// isTimeout checks if an error is a timeout.
func isTimeout(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// isNetworkError checks if an error is network-related.
func isNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "dial tcp")
}
