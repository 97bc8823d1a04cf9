// Copyright 2026 The Tally Authors
// SPDX-License-Identifier: MIT

// Package checklist turns exported task-board checklist documents into a flat
// sequence of per-item records.
package checklist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// PlaceholderName is used for checklists that carry no name.
const PlaceholderName = "Unnamed"

// StateComplete is the only item state that counts as completed.
const StateComplete = "complete"

// Record is one check item flattened out of its document and checklist.
type Record struct {
	Source    string `json:"source"`    // Document name the item came from.
	Checklist string `json:"checklist"` // Parent checklist name.
	City      string `json:"city"`      // First tab token of the item name; empty when absent.
	Points    int    `json:"points"`    // Second tab token when all digits, else 0.
	Completed bool   `json:"completed"` // State equals "complete".

	// PointsDefaulted is set when the item name carried no numeric points
	// token and Points fell back to 0.
	PointsDefaulted bool `json:"points_defaulted"`
}

// Document is a single decoded checklist export.
type Document struct {
	Name       string
	Checklists []Checklist
}

// Checklist is a named group of check items. Name is nil when the export
// omits it or sets it to null.
type Checklist struct {
	Name       *string     `json:"name"`
	CheckItems []CheckItem `json:"checkItems"`
}

// UnmarshalJSON accepts any scalar as the checklist name. Non-string names
// are kept as their JSON text.
func (c *Checklist) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name       json.RawMessage `json:"name"`
		CheckItems []CheckItem     `json:"checkItems"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Name = nil
	if text, ok := scalarText(raw.Name); ok {
		c.Name = &text
	}
	c.CheckItems = raw.CheckItems
	return nil
}

// CheckItem is a single task entry.
type CheckItem struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

// UnmarshalJSON tolerates mistyped fields. A non-string name is kept as its
// JSON text; a non-string state is dropped and so never counts as complete.
func (it *CheckItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name  json.RawMessage `json:"name"`
		State json.RawMessage `json:"state"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	it.Name, _ = scalarText(raw.Name)
	it.State = ""
	if isJSONString(raw.State) {
		it.State, _ = scalarText(raw.State)
	}
	return nil
}

// scalarText renders a raw JSON value as text. Absent and null values report
// false.
func scalarText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	if isJSONString(raw) {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, true
		}
	}
	return string(raw), true
}

func isJSONString(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '"'
}

// ErrNoInput indicates that no documents were supplied.
var ErrNoInput = errors.New("no input documents")

var errNotObject = errors.New("document is not a JSON object")

// MalformedInputError reports a document that could not be decoded.
type MalformedInputError struct {
	Source string
	Err    error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input %q: %v", e.Source, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }
