// Package parsererror defines the error taxonomy for the ingestion pipeline.
package parsererror

import "fmt"

// UnsupportedFormatError is returned when an uploaded file has an extension
// the pipeline does not know how to dispatch. It is fatal for the job and is
// never retried.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s (supported: .csv, .xlsx, .xls, .json, .pdf)", e.Extension)
}

// ExtractionError is returned when the external text-extraction collaborator
// fails to read a document. It is fatal for the job; retries, if any, belong
// to the collaborator.
type ExtractionError struct {
	FilePath string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("text extraction failed for %s: %v", e.FilePath, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ParseError represents a failure while parsing structured input (CSV, XLSX,
// JSON) before rows reach the platform adapters. Row-level anomalies never
// produce a ParseError; adapters substitute defaults instead.
type ParseError struct {
	Source string
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s: %v", e.Source, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure on an input file.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}
