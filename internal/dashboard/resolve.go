package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/davetashner/triage/internal/issue"
)

// Errors returned by Resolve.
var (
	ErrNoDataset    = errors.New("no report loaded")
	ErrUnknownIssue = errors.New("no issue matches")
	ErrAmbiguous    = errors.New("reference matches several issues")
)

// Resolve finds the issue a user reference points at. A reference is a full
// identity, a short fingerprint (or a prefix of one), or "file:line". A
// file:line reference that matches several issues is ambiguous.
func (d *Dashboard) Resolve(ref string) (issue.ID, error) {
	ref = strings.TrimSpace(ref)
	d.mu.Lock()
	ds := d.dataset
	d.mu.Unlock()
	if ds == nil || ds.Len() == 0 {
		return "", ErrNoDataset
	}
	if ref == "" {
		return "", fmt.Errorf("%w %q", ErrUnknownIssue, ref)
	}

	var matches []issue.ID
	seen := make(map[issue.ID]bool)
	add := func(id issue.ID) {
		if !seen[id] {
			seen[id] = true
			matches = append(matches, id)
		}
	}

	prefix := strings.ToLower(ref)
	for _, it := range ds.Issues {
		id := it.ID()
		if string(id) == ref {
			return id, nil
		}
		if strings.HasPrefix(id.Short(), prefix) {
			add(id)
		}
	}
	if file, line, ok := splitLocation(ref); ok {
		for _, it := range ds.Group(file) {
			if it.Line == line {
				add(it.ID())
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w %q", ErrUnknownIssue, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %q (%d candidates)", ErrAmbiguous, ref, len(matches))
	}
}

// splitLocation parses "file:line". The file part may itself contain
// colons, as Windows paths do.
func splitLocation(ref string) (string, int, bool) {
	i := strings.LastIndexByte(ref, ':')
	if i <= 0 || i == len(ref)-1 {
		return "", 0, false
	}
	n, err := strconv.Atoi(ref[i+1:])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return ref[:i], n, true
}

// ExportCompletion writes the completion state as indented JSON, keyed by
// issue identity.
func (d *Dashboard) ExportCompletion(w io.Writer) error {
	c := d.Completion()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("export completion state: %w", err)
	}
	return nil
}
