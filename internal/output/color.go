// Copyright 2026 The Triage Authors
// SPDX-License-Identifier: MIT

package output

import (
	"github.com/fatih/color"

	"github.com/davetashner/triage/internal/severity"
)

// Shared color printers for terminal output.
var (
	colorRed     = color.New(color.FgRed, color.Bold)
	colorMagenta = color.New(color.FgMagenta)
	colorYellow  = color.New(color.FgYellow)
	colorCyan    = color.New(color.FgCyan)
	colorGreen   = color.New(color.FgGreen)
	colorFaint   = color.New(color.Faint)
	colorBold    = color.New(color.Bold)
)

// ColorSeverity colors a label by the level it stands for.
func ColorSeverity(l severity.Level, label string) string {
	switch l {
	case severity.Critical:
		return colorRed.Sprint(label)
	case severity.High:
		return colorMagenta.Sprint(label)
	case severity.Normal:
		return colorYellow.Sprint(label)
	case severity.Low:
		return colorCyan.Sprint(label)
	default:
		return colorFaint.Sprint(label)
	}
}

// ColorProgress colors "done/total": green once complete, yellow while
// partially done.
func ColorProgress(done, total int, label string) string {
	switch {
	case total > 0 && done == total:
		return colorGreen.Sprint(label)
	case done > 0:
		return colorYellow.Sprint(label)
	default:
		return label
	}
}

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}
