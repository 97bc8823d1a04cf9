// Copyright 2026 The Tally Authors
// SPDX-License-Identifier: MIT

package checklist

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"
)

// exportFile mirrors the subset of a checklist export that tally reads.
type exportFile struct {
	Checklists []Checklist `json:"checklists"`
}

// Parse decodes one checklist export. Absent keys decode to their zero values;
// anything that is not a JSON object of the expected shape is reported as a
// *MalformedInputError.
func Parse(name string, data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Document{}, &MalformedInputError{Source: name, Err: errNotObject}
	}

	var f exportFile
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return Document{}, &MalformedInputError{Source: name, Err: err}
	}
	return Document{Name: name, Checklists: f.Checklists}, nil
}

// Extract flattens documents into records. Order follows the documents, then
// the checklists within each document, then the items within each checklist.
func Extract(docs []Document) []Record {
	var records []Record
	for _, doc := range docs {
		for _, cl := range doc.Checklists {
			clName := PlaceholderName
			if cl.Name != nil {
				clName = *cl.Name
			}
			for _, item := range cl.CheckItems {
				city, points, ok := splitItemName(item.Name)
				records = append(records, Record{
					Source:          doc.Name,
					Checklist:       clName,
					City:            city,
					Points:          points,
					Completed:       item.State == StateComplete,
					PointsDefaulted: !ok,
				})
			}
		}
	}
	return records
}

// ParseItemName splits an item name of the form "city\tpoints". The whole name
// is trimmed before splitting. Tokens after the second are ignored. A missing
// or non-numeric points token yields 0. Any Unicode decimal digits count.
func ParseItemName(name string) (city string, points int) {
	city, points, _ = splitItemName(name)
	return city, points
}

// splitItemName is ParseItemName that also reports whether a points token
// was actually read.
func splitItemName(name string) (city string, points int, ok bool) {
	parts := strings.Split(strings.TrimSpace(name), "\t")
	city = strings.TrimSpace(parts[0])
	if len(parts) < 2 {
		return city, 0, false
	}
	points, ok = parseDigits(parts[1])
	return city, points, ok
}

// parseDigits reads a non-empty run of decimal digits from any script.
// Values that do not fit an int are rejected.
func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	const maxInt = int(^uint(0) >> 1)
	n := 0
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return 0, false
		}
		d := digitValue(r)
		if n > (maxInt-d)/10 {
			return 0, false
		}
		n = n*10 + d
	}
	return n, true
}

// digitValue returns the value of a decimal digit rune. Decimal digits are
// encoded in contiguous runs of ten starting at zero, so the value is the
// offset from the start of the run.
func digitValue(r rune) int {
	start := r
	for unicode.IsDigit(start - 1) {
		start--
	}
	return int(r-start) % 10
}
