// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package identity models the user record cached locally by the storefront
// login flow and the navbar state derived from it.
//
// The record is duck-typed: every field is optional and may hold any JSON
// value. Unknown fields are kept so that a record read from storage can be
// handed back to callers exactly as it was written.
package identity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

// FallbackDisplayName is shown when a record carries no usable name.
const FallbackDisplayName = "Usuário"

// Greeting prefixes the display name in the generic user-info label.
const Greeting = "Olá, "

// Field names of the cached record.
const (
	FieldID       = "id"
	FieldNome     = "nome"
	FieldUsername = "username"
	FieldEmail    = "email"
)

// ErrNotObject is returned by Parse when the payload is valid JSON but not an object.
var ErrNotObject = errors.New("identity: cached value is not a JSON object")

// Identity is the cached user record.
type Identity struct {
	fields map[string]any
}

// New builds an Identity from already-decoded fields. The map is copied.
func New(fields map[string]any) *Identity {
	cp := make(map[string]any, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return &Identity{fields: cp}
}

// ErrTrailingData is returned by Parse when the payload holds more than one JSON value.
var ErrTrailingData = errors.New("identity: trailing data after cached value")

// Parse decodes a cached record. Numbers are kept as json.Number so that
// re-encoding yields the original text. The payload must be exactly one
// JSON value; anything after it fails the parse.
func Parse(data []byte) (*Identity, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode cached identity: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return &Identity{fields: obj}, nil
}

// MarshalJSON encodes the record with all of its fields.
func (i *Identity) MarshalJSON() ([]byte, error) {
	if i == nil || i.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(i.fields)
}

// UnmarshalJSON implements json.Unmarshaler with the same rules as Parse.
func (i *Identity) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	i.fields = parsed.fields
	return nil
}

// Get returns the raw value of a field.
func (i *Identity) Get(field string) (any, bool) {
	if i == nil {
		return nil, false
	}
	v, ok := i.fields[field]
	return v, ok
}

// ID returns the id field rendered as text, or "" when unset.
func (i *Identity) ID() string { return i.text(FieldID) }

// Nome returns the full name, or "" when unset.
func (i *Identity) Nome() string { return i.text(FieldNome) }

// Username returns the username, or "" when unset.
func (i *Identity) Username() string { return i.text(FieldUsername) }

// Email returns the e-mail address, or "" when unset.
func (i *Identity) Email() string { return i.text(FieldEmail) }

// Valid reports whether at least one of id, nome or email is truthy.
// A record that only has a username is not valid.
func (i *Identity) Valid() bool {
	if i == nil {
		return false
	}
	return truthy(i.fields[FieldID]) || truthy(i.fields[FieldNome]) || truthy(i.fields[FieldEmail])
}

// DisplayName picks the name shown in the navbar: the first word of nome,
// then username, then email, then FallbackDisplayName. A nome made only of
// whitespace has no first word and counts as unset.
func (i *Identity) DisplayName() string {
	if i == nil {
		return FallbackDisplayName
	}
	if truthy(i.fields[FieldNome]) {
		if words := strings.Fields(i.Nome()); len(words) > 0 {
			return words[0]
		}
	}
	for _, field := range []string{FieldUsername, FieldEmail} {
		if truthy(i.fields[field]) {
			return i.text(field)
		}
	}
	return FallbackDisplayName
}

func (i *Identity) text(field string) string {
	if i == nil {
		return ""
	}
	v, ok := i.fields[field]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// truthy mirrors the loose truthiness the storefront pages apply to record fields.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String() != ""
		}
		return f != 0 && !math.IsNaN(f)
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	case int64:
		return t != 0
	default:
		return true
	}
}
