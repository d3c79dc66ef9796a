package issue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/triage/internal/severity"
)

func sample() Issue {
	return Issue{
		Severity: severity.High,
		Type:     "PhanUndeclaredVariable",
		File:     "src/a.php",
		Line:     12,
		Message:  "Variable $x is undeclared",
	}
}

func TestIdentify_Deterministic(t *testing.T) {
	a, b := sample(), sample()
	assert.Equal(t, Identify(a), Identify(b))
	assert.Equal(t, a.ID(), b.ID())
}

func TestIdentify_SeverityIsNotPartOfIdentity(t *testing.T) {
	a := sample()
	b := sample()
	b.Severity = severity.Info
	assert.Equal(t, a.ID(), b.ID())
}

func TestIdentify_EachFieldChangesIdentity(t *testing.T) {
	base := sample().ID()
	edits := map[string]func(*Issue){
		"file":    func(i *Issue) { i.File = "src/b.php" },
		"line":    func(i *Issue) { i.Line = 13 },
		"type":    func(i *Issue) { i.Type = "Other" },
		"message": func(i *Issue) { i.Message += "!" },
	}
	for name, edit := range edits {
		t.Run(name, func(t *testing.T) {
			i := sample()
			edit(&i)
			assert.NotEqual(t, base, i.ID())
		})
	}
}

func TestIdentify_DelimiterInContentDoesNotCollide(t *testing.T) {
	a := Issue{File: "a|1", Line: 2, Type: "T", Message: "m"}
	b := Issue{File: "a", Line: 1, Type: "2|T", Message: "m"}
	assert.NotEqual(t, a.ID(), b.ID())

	c := Issue{File: "x", Type: "1:y", Message: ""}
	d := Issue{File: "x", Type: "1", Message: "y"}
	assert.NotEqual(t, c.ID(), d.ID())
}

func TestID_DecodeRoundTrip(t *testing.T) {
	i := Issue{File: "dir/ü.php", Line: 7, Type: "a:b", Message: "multi\nline | pipes"}
	key, err := i.ID().Decode()
	require.NoError(t, err)
	assert.Equal(t, Key{File: i.File, Line: 7, Type: i.Type, Message: i.Message}, key)
}

func TestID_IsKeySafe(t *testing.T) {
	id := sample().ID().String()
	assert.NotContains(t, id, "/")
	assert.NotContains(t, id, "+")
	assert.NotContains(t, id, "=")
}

func TestID_DecodeMalformed(t *testing.T) {
	for _, s := range []string{"!!!", "", "MTox", ID("3:abc").String()} {
		_, err := ID(s).Decode()
		assert.ErrorIs(t, err, ErrMalformedID, "input %q", s)
	}
}

func TestID_Short(t *testing.T) {
	id := sample().ID()
	assert.Len(t, id.Short(), 8)
	assert.Equal(t, id.Short(), sample().ID().Short())
}

func TestLocation(t *testing.T) {
	assert.Equal(t, "src/a.php:12", sample().Location())
	assert.Equal(t, "unknown", Issue{File: "unknown"}.Location())
}

func TestRecord_Lookup(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"location":{"path":"p.php","lines":{"begin":4}}}`), &r))

	v, ok := r.Lookup("location.path")
	assert.True(t, ok)
	assert.Equal(t, "p.php", v)

	v, ok = r.Lookup("location.lines.begin")
	assert.True(t, ok)
	assert.Equal(t, float64(4), v)

	_, ok = r.Lookup("location.path.deeper")
	assert.False(t, ok)
	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	r := Record{
		"severity": nil,
		"level":    "major",
		"type":     "",
		"rule":     "R1",
		"line":     0,
	}
	assert.Equal(t, "major", Resolve(r, SeverityKeys, "info"))
	assert.Equal(t, "R1", Resolve(r, TypeKeys, DefaultType))
	assert.Equal(t, UnknownFile, Resolve(r, FileKeys, UnknownFile))
	assert.Equal(t, 0, Resolve(r, LineKeys, -1), "zero is a present value")
	assert.Equal(t, "", Resolve(r, MessageKeys, ""))
}

func TestResolve_NestedRecord(t *testing.T) {
	r := Record{"location": Record{"path": "nested.php"}}
	assert.Equal(t, "nested.php", Resolve(r, FileKeys, UnknownFile))
}
