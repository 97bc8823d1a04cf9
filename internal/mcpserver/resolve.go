// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes tally's dashboard computation as tools over stdio transport.
package mcpserver

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathInfo holds the resolved location of one input.
type PathInfo struct {
	// AbsPath is the absolute, symlink-resolved path.
	AbsPath string
	// ConfigDir is the directory searched for .tally.yaml: the path itself
	// for directories, its parent for files.
	ConfigDir string
	// IsDir reports whether AbsPath is a directory.
	IsDir bool
}

// ResolvePath resolves an input path to an absolute path.
// It returns an error if the path does not exist.
func ResolvePath(path string) (*PathInfo, error) {
	if path == "" {
		path = "."
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %q: %w", path, err)
	}

	absPath, err = filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %q: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("path %q does not exist", path)
	}

	dir := absPath
	if !info.IsDir() {
		dir = filepath.Dir(absPath)
	}
	return &PathInfo{AbsPath: absPath, ConfigDir: dir, IsDir: info.IsDir()}, nil
}
