package scanner

import "fmt"

// FileReadError is returned when a source file cannot be read.
type FileReadError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileReadError) Unwrap() error {
	return e.Err
}

// Warning records a non-fatal problem encountered during a scan, such as
// a file that disappeared between enumeration and reading. Warnings are
// carried on the final report; they never abort the scan.
type Warning struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// String renders the warning in "path: message" form.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Path, w.Message)
}
