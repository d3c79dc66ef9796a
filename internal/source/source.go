// Copyright 2026 The Triage Authors
// SPDX-License-Identifier: MIT

// Package source obtains report bytes and project metadata: local files,
// stdin, HTTP URLs, the bundled demo report, and GitHub repository data.
package source

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/davetashner/triage/internal/redact"
	"github.com/davetashner/triage/internal/testable"
)

// MaxReportSize caps how much of a file or response body is read.
const MaxReportSize = 64 << 20

// DemoSource names the bundled demo report in dataset metadata.
const DemoSource = "demo"

//go:embed demo/report.json
var demoReport []byte

// FS is the file system used by ReadFile. Tests replace it.
var FS testable.FileSystem = testable.DefaultFS

// Stdin is read when ReadFile is given "-".
var Stdin io.Reader = os.Stdin

// HTTPClient performs Fetch requests.
var HTTPClient = &http.Client{Timeout: 30 * time.Second}

// ErrTooLarge is returned when input exceeds MaxReportSize.
var ErrTooLarge = fmt.Errorf("report exceeds %d bytes", MaxReportSize)

// NetworkError wraps a failed remote request: the demo fetch, a report URL
// or a GitHub API call.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, redact.URL(e.URL), e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Demo returns a copy of the bundled demo report.
func Demo() []byte {
	out := make([]byte, len(demoReport))
	copy(out, demoReport)
	return out
}

// ReadFile reads a report from path, or from Stdin when path is "-".
func ReadFile(path string) ([]byte, error) {
	if path == "-" {
		data, err := readLimited(Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	if info, err := FS.Stat(path); err == nil && info.Size() > MaxReportSize {
		return nil, fmt.Errorf("read %s: %w", path, ErrTooLarge)
	}
	data, err := FS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Fetch downloads a report over HTTP. Any transport failure or non-2xx
// status is a *NetworkError.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{Op: "fetch", URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json, application/xml, text/xml, */*")

	resp, err := HTTPClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "fetch", URL: url, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{Op: "fetch", URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	data, err := readLimited(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "fetch", URL: url, Err: err}
	}
	return data, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxReportSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxReportSize {
		return nil, ErrTooLarge
	}
	return data, nil
}

// IsNetwork reports whether err came from a remote request.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
