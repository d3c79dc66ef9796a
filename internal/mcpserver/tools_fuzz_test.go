package mcpserver

import (
	"maps"
	"testing"

	"github.com/davetashner/triage/internal/severity"
)

func FuzzApplyFilterSeverities(f *testing.F) {
	f.Add("")
	f.Add(",")
	f.Add("critical, high")
	f.Add("HIGH,,info")
	f.Add("critical,bogus")

	f.Fuzz(func(t *testing.T, input string) {
		tl := &tools{dash: newDashboard()}
		before := maps.Clone(tl.dash.Filter().Severities)

		err := tl.applyFilter(ViewInput{Severities: input})
		got := tl.dash.Filter().Severities
		if err != nil {
			if !maps.Equal(before, got) {
				t.Errorf("rejected %q but severities changed to %v", input, got.Levels())
			}
			return
		}
		for _, name := range splitAndTrim(input) {
			l, _ := severity.Parse(name)
			if !got.Has(l) {
				t.Errorf("accepted %q but %s is not shown", input, l)
			}
		}
	})
}
