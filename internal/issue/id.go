// Copyright 2026 The Triage Authors
// SPDX-License-Identifier: MIT

package issue

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
)

// ID is the stable identity of an issue: an opaque, URL- and key-safe string
// derived from file, line, type and message. Byte-identical reports always
// produce identical IDs; editing any of the four fields produces a new one.
type ID string

var idEncoding = base64.RawURLEncoding

// ErrMalformedID is returned by Decode for strings that were not produced by
// Identify.
var ErrMalformedID = errors.New("malformed issue id")

// Identify computes the identity of i. Each field is written as
// "<byte length>:<bytes>" before encoding, so field content can never shift
// a boundary and two different field tuples can never share an ID.
func Identify(i Issue) ID {
	var b strings.Builder
	for _, f := range [...]string{i.File, strconv.Itoa(i.Line), i.Type, i.Message} {
		b.WriteString(strconv.Itoa(len(f)))
		b.WriteByte(':')
		b.WriteString(f)
	}
	return ID(idEncoding.EncodeToString([]byte(b.String())))
}

// Key is the identity-bearing part of an issue.
type Key struct {
	File    string
	Line    int
	Type    string
	Message string
}

// Decode reverses Identify.
func (id ID) Decode() (Key, error) {
	raw, err := idEncoding.DecodeString(string(id))
	if err != nil {
		return Key{}, ErrMalformedID
	}
	fields := make([]string, 0, 4)
	rest := string(raw)
	for len(fields) < 4 {
		colon := strings.IndexByte(rest, ':')
		if colon <= 0 {
			return Key{}, ErrMalformedID
		}
		n, err := strconv.Atoi(rest[:colon])
		if err != nil || n < 0 || colon+1+n > len(rest) {
			return Key{}, ErrMalformedID
		}
		fields = append(fields, rest[colon+1:colon+1+n])
		rest = rest[colon+1+n:]
	}
	if rest != "" {
		return Key{}, ErrMalformedID
	}
	line, err := strconv.Atoi(fields[1])
	if err != nil {
		return Key{}, ErrMalformedID
	}
	return Key{File: fields[0], Line: line, Type: fields[2], Message: fields[3]}, nil
}

// String returns the encoded form.
func (id ID) String() string { return string(id) }

// Short returns a compact fingerprint of the ID for display and for
// lookups typed by a person. It is SHA-256 truncated to 8 hex characters, so
// it is not guaranteed unique; callers resolving it must detect ambiguity.
func (id ID) Short() string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:4])
}
