package ingest

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/Finempire/Ecommerce-GST-App/internal/logging"
)

// TextExtractor defines the interface for extracting text from PDF files.
// This interface allows for dependency injection and makes the ingest
// pipeline testable by providing different implementations for production
// and testing.
type TextExtractor interface {
	// ExtractText extracts text content from a PDF file at the given path.
	// Returns the extracted text as a string or an error if extraction fails.
	ExtractText(pdfPath string) (string, error)
}

// RealTextExtractor implements TextExtractor using the actual pdftotext
// command. This is the production implementation that requires pdftotext
// to be installed.
type RealTextExtractor struct {
	// Tool overrides the extraction binary, defaulting to pdftotext.
	Tool string
}

// NewRealTextExtractor creates a new RealTextExtractor instance.
func NewRealTextExtractor() *RealTextExtractor {
	return &RealTextExtractor{}
}

// ExtractText extracts text from a PDF file using the pdftotext command.
func (e *RealTextExtractor) ExtractText(pdfPath string) (string, error) {
	tool := e.Tool
	if tool == "" {
		tool = "pdftotext"
	}

	tempFile := pdfPath + ".txt"
	cmd := exec.Command(tool, "-layout", pdfPath, tempFile)
	if err := cmd.Run(); err != nil {
		log.WithError(err).Error("Failed to run text extraction command",
			logging.Field{Key: "tool", Value: tool})
		return "", fmt.Errorf("error running %s: %w", tool, err)
	}

	output, err := os.ReadFile(tempFile)
	if err != nil {
		log.WithError(err).Error("Failed to read text output")
		return "", fmt.Errorf("error reading extracted text: %w", err)
	}
	os.Remove(tempFile)

	return string(output), nil
}

// MockTextExtractor implements TextExtractor for testing purposes.
// It returns predefined mock data instead of actually extracting from
// PDF files.
type MockTextExtractor struct {
	MockText string
	MockErr  error
}

// NewMockTextExtractor creates a new MockTextExtractor with the given mock data.
func NewMockTextExtractor(mockText string, mockErr error) *MockTextExtractor {
	return &MockTextExtractor{
		MockText: mockText,
		MockErr:  mockErr,
	}
}

// ExtractText returns the predefined mock text or error.
func (e *MockTextExtractor) ExtractText(pdfPath string) (string, error) {
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}
