package errors

import (
	"errors"
	"fmt"
)

// Common error types for the member client
var (
	// Storage errors
	ErrCorruptEntry = errors.New("corrupt storage entry")
	ErrEncryption   = errors.New("storage encryption failure")

	// Session errors
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrNoProfileData   = errors.New("profile response carried no data")
	ErrInvalidURLToken = errors.New("invalid url token")

	// Configuration errors
	ErrNoConfigData   = errors.New("configuration response carried no data")
	ErrInvalidColour  = errors.New("invalid colour")
	ErrLoadInProgress = errors.New("configuration load already in progress")

	// Pipeline errors
	ErrOffline          = errors.New("network offline")
	ErrTimeout          = errors.New("request timed out")
	ErrConnectionFailed = errors.New("network connection failed")
	ErrRequestConfig    = errors.New("request configuration error")
	ErrRetriesExhausted = errors.New("retries exhausted")

	// Locale errors
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// General errors
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
