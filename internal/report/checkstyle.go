// Copyright 2026 The Triage Authors
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/davetashner/triage/internal/issue"
)

// ParseCheckstyle decodes a Checkstyle XML report:
//
//	<checkstyle>
//	  <file name="src/a.php">
//	    <error line="3" severity="warning" source="Rule" message="..."/>
//	  </file>
//	</checkstyle>
//
// Every <error> inside a <file> becomes one record carrying the enclosing
// file name. Attribute values are kept as raw strings; absent attributes are
// left out of the record so downstream defaults apply. Any decoder error,
// including mismatched or unclosed tags, fails the whole parse, as does a
// root other than <checkstyle> or content after the root closes.
func ParseCheckstyle(data []byte) ([]issue.Record, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true

	var (
		records []issue.Record
		files   []*string // stack of enclosing <file> names, nil when unnamed
		depth   int
		sawRoot bool
		closed  bool // root element has ended
	)
	// fileDepth[i] is the element depth at which files[i] was opened.
	var fileDepth []int

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, xmlError(err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				if closed {
					return nil, notWellFormed(dec, "content after root element")
				}
				if el.Name.Local != "checkstyle" {
					return nil, &ParseError{Format: FormatCheckstyle, Reason: fmt.Sprintf("root element is <%s>, want <checkstyle>", el.Name.Local)}
				}
			}
			depth++
			sawRoot = true
			switch el.Name.Local {
			case "file":
				files = append(files, attr(el, "name"))
				fileDepth = append(fileDepth, depth)
			case "error":
				if len(files) == 0 {
					continue
				}
				records = append(records, errorRecord(el, files[len(files)-1]))
			}
		case xml.EndElement:
			if n := len(fileDepth); n > 0 && fileDepth[n-1] == depth {
				files = files[:n-1]
				fileDepth = fileDepth[:n-1]
			}
			depth--
			closed = depth == 0
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(el)) > 0 {
				return nil, notWellFormed(dec, "text outside root element")
			}
		}
	}

	if !sawRoot {
		return nil, &ParseError{Format: FormatCheckstyle, Reason: "no root element"}
	}
	return records, nil
}

func errorRecord(el xml.StartElement, file *string) issue.Record {
	rec := issue.Record{}
	if file != nil {
		rec["file"] = *file
	}
	for attrName, key := range map[string]string{
		"line":     "line",
		"severity": "severity",
		"source":   "type",
		"message":  "message",
	} {
		if v := attr(el, attrName); v != nil {
			rec[key] = *v
		}
	}
	return rec
}

func attr(el xml.StartElement, name string) *string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			v := a.Value
			return &v
		}
	}
	return nil
}

func notWellFormed(dec *xml.Decoder, msg string) error {
	line, _ := dec.InputPos()
	return &ParseError{Format: FormatCheckstyle, Reason: fmt.Sprintf("%s (line %d)", msg, line)}
}

func xmlError(err error) error {
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		return &ParseError{
			Format: FormatCheckstyle,
			Reason: fmt.Sprintf("%s (line %d)", syn.Msg, syn.Line),
			Err:    err,
		}
	}
	return &ParseError{Format: FormatCheckstyle, Reason: err.Error(), Err: err}
}
