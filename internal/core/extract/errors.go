// Package extract normalizes heterogeneous uploaded files (PDF, DOC/DOCX,
// raster images) into plain text.
package extract

import (
	"errors"
	"fmt"
)

// Code identifies a distinct extraction failure condition. Codes are stable
// strings so callers and clients can switch on them.
type Code string

const (
	CodeInitFailed        Code = "INIT_FAILED"
	CodeInvalidFile       Code = "INVALID_FILE"
	CodeInvalidFileType   Code = "INVALID_FILE_TYPE"
	CodeFileTooLarge      Code = "FILE_TOO_LARGE"
	CodeEmptyFile         Code = "EMPTY_FILE"
	CodeLoadTimeout       Code = "LOAD_TIMEOUT"
	CodeNoPages           Code = "NO_PAGES"
	CodeInvalidPDF        Code = "INVALID_PDF"
	CodeMissingPDF        Code = "MISSING_PDF"
	CodePasswordProtected Code = "PASSWORD_PROTECTED"
	CodeProcessingFailed  Code = "PROCESSING_FAILED"
	CodeUnknown           Code = "UNKNOWN_ERROR"

	CodeUnsupportedFileType Code = "UNSUPPORTED_FILE_TYPE"
	CodeConversionFailed    Code = "CONVERSION_FAILED"
	CodeRecognitionFailed   Code = "RECOGNITION_FAILED"
	CodeRemoteFailed        Code = "REMOTE_EXTRACTION_FAILED"
)

// Error is a typed extraction failure. All extraction errors are recoverable
// at the batch level: one file's Error never aborts sibling extractions.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func wrapError(code Code, msg string, cause error) *Error {
	return &Error{Code: code, Message: msg, Cause: cause}
}

// CodeOf returns the failure code carried by err, or CodeUnknown when err is
// not an extraction error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}
