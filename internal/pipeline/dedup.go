// Copyright 2026 The Triage Authors
// SPDX-License-Identifier: MIT

package pipeline

import "github.com/davetashner/triage/internal/issue"

// CountDuplicates returns how many issues share an identity with an earlier
// issue. Duplicates are kept in the dataset: they are separate rows in the
// report, but they are completed together because completion is keyed by
// identity.
func CountDuplicates(issues []issue.Issue) int {
	if len(issues) == 0 {
		return 0
	}
	seen := make(map[issue.ID]struct{}, len(issues))
	dups := 0
	for _, it := range issues {
		id := it.ID()
		if _, exists := seen[id]; exists {
			dups++
			continue
		}
		seen[id] = struct{}{}
	}
	return dups
}
