// 29 Apr 2020, moved out of the sequence code 10 Oct 2026

// Package common has the bits every tool and many tests need.
package common

import (
	"fmt"
	"io"
	"os"
)

// Exit codes for the tools
const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

// WrtTemp writes a string to a temporary file and returns
// the filename. It is used all over the place in testing.
func WrtTemp(s string) (string, error) {
	f_tmp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		return "", fmt.Errorf("tempfile fail: %w", err)
	}
	defer f_tmp.Close()
	if _, err := io.WriteString(f_tmp, s); err != nil {
		return "", fmt.Errorf("writing string to temp file %v: %w", f_tmp.Name(), err)
	}
	return f_tmp.Name(), nil
}

// OutFile gives a writer for fname, standard output for "-" or "".
// Call the returned function to close it.
func OutFile(fname string) (io.Writer, func() error, error) {
	if fname == "-" || fname == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	fp, err := os.Create(fname)
	if err != nil {
		return nil, nil, fmt.Errorf("file for output: %w", err)
	}
	return fp, fp.Close, nil
}
