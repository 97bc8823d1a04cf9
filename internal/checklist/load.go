// Copyright 2026 The Tally Authors
// SPDX-License-Identifier: MIT

package checklist

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/davetashner/tally/internal/testable"
)

// StdinName is the input argument that reads a document from standard input.
const StdinName = "-"

// Source is a named, not yet decoded document.
type Source struct {
	Name string
	Data []byte
}

// Loader resolves command-line inputs into decoded documents.
type Loader struct {
	// FS is the file system to read from. Defaults to testable.DefaultFS.
	FS testable.FileSystem

	// Stdin is read when an input is "-".
	Stdin io.Reader

	// SkipMalformed drops undecodable documents with a warning instead of
	// failing the whole batch.
	SkipMalformed bool
}

// Load reads every input in argument order. Directories expand to the .json
// files they directly contain, sorted by name. It returns ErrNoInput when no
// document could be resolved.
func (l *Loader) Load(inputs []string) ([]Document, error) {
	sources, err := l.Read(inputs)
	if err != nil {
		return nil, err
	}
	return ParseAll(sources, l.SkipMalformed)
}

// Read resolves inputs to raw sources without decoding them.
func (l *Loader) Read(inputs []string) ([]Source, error) {
	fsys := l.FS
	if fsys == nil {
		fsys = testable.DefaultFS
	}

	var sources []Source
	for _, in := range inputs {
		if in == StdinName {
			if l.Stdin == nil {
				return nil, fmt.Errorf("read stdin: no reader configured")
			}
			data, err := io.ReadAll(l.Stdin)
			if err != nil {
				return nil, fmt.Errorf("read stdin: %w", err)
			}
			sources = append(sources, Source{Name: "stdin", Data: data})
			continue
		}

		info, err := fsys.Stat(in)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", in, err)
		}
		if !info.IsDir() {
			data, err := fsys.ReadFile(in)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", in, err)
			}
			sources = append(sources, Source{Name: in, Data: data})
			continue
		}

		files, err := jsonFiles(fsys, in)
		if err != nil {
			return nil, err
		}
		for _, path := range files {
			data, err := fsys.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}
			sources = append(sources, Source{Name: path, Data: data})
		}
	}
	return sources, nil
}

// ParseAll decodes sources in order. With skipMalformed unset the first
// undecodable source aborts the batch.
func ParseAll(sources []Source, skipMalformed bool) ([]Document, error) {
	if len(sources) == 0 {
		return nil, ErrNoInput
	}

	docs := make([]Document, 0, len(sources))
	for _, src := range sources {
		doc, err := Parse(src.Name, src.Data)
		if err != nil {
			var mie *MalformedInputError
			if skipMalformed && errors.As(err, &mie) {
				slog.Warn("skipping malformed document", "source", src.Name, "error", mie.Err)
				continue
			}
			return nil, err
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil, ErrNoInput
	}
	return docs, nil
}

// IsJSONFile reports whether path has a .json extension.
func IsJSONFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func jsonFiles(fsys testable.FileSystem, dir string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsJSONFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
