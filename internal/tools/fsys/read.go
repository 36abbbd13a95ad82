// Package fsys implements the read_file and list_directory tools: bounded,
// read-only access to the local filesystem. Paths are canonicalized through
// the OS; symlinks are followed, not sandboxed.
package fsys

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/vporto/almanac/internal/registry"
	"github.com/vporto/almanac/internal/tools"
	"github.com/vporto/almanac/pkg/domain"
)

// maxContentChars bounds the returned file content, in characters.
const maxContentChars = 10000

// ReadDescriptor returns the read_file tool metadata.
func ReadDescriptor() domain.Tool {
	return domain.Tool{
		Name: "read_file",
		Description: "Read the content of a local text file " +
			"(txt, json, go, md, ...).",
		Params: []domain.Param{
			{Name: "file_path", Description: "Absolute or relative path of the file", Required: true},
		},
	}
}

type readParams struct {
	FilePath string `mapstructure:"file_path"`
}

// NewReadHandler builds the read_file handler.
func NewReadHandler() registry.Handler {
	return func(ctx context.Context, args map[string]any) (domain.Result, error) {
		var p readParams
		if err := tools.DecodeArgs(args, &p); err != nil {
			return domain.Failf(domain.OutcomeInvalidInput, "Error: invalid arguments for read_file: %v", err), nil
		}
		if p.FilePath == "" {
			return domain.Failf(domain.OutcomeInvalidInput, "Error: required argument 'file_path' is missing"), nil
		}

		path, err := filepath.Abs(p.FilePath)
		if err != nil {
			return domain.Failf(domain.OutcomeInvalidInput, "Error: invalid path: %s", p.FilePath), nil
		}

		info, err := os.Stat(path)
		switch {
		case os.IsNotExist(err):
			return domain.Failf(domain.OutcomeNotFound, "Error: file not found: %s", p.FilePath), nil
		case os.IsPermission(err):
			return domain.Failf(domain.OutcomeInvalidInput, "Error: permission denied: %s", p.FilePath), nil
		case err != nil:
			return domain.Result{}, err
		}
		if !info.Mode().IsRegular() {
			return domain.Failf(domain.OutcomeInvalidInput, "Error: path is not a regular file: %s", p.FilePath), nil
		}

		data, err := os.ReadFile(path)
		if os.IsPermission(err) {
			return domain.Failf(domain.OutcomeInvalidInput, "Error: permission denied reading file: %s", p.FilePath), nil
		}
		if err != nil {
			return domain.Result{}, err
		}

		// NUL bytes mean binary content; anything else gets a best-effort
		// lossy decode.
		if bytes.IndexByte(data, 0) >= 0 {
			return domain.Failf(domain.OutcomeInvalidInput,
				"Error: file is not text or uses an unsupported encoding: %s", p.FilePath), nil
		}
		content := string(data)
		if !utf8.ValidString(content) {
			content = strings.ToValidUTF8(content, "�")
		}

		total := utf8.RuneCountInString(content)
		if total > maxContentChars {
			runes := []rune(content)
			content = string(runes[:maxContentChars]) +
				fmt.Sprintf("\n\n... (truncated, file has %d characters)", total)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "**File: %s**\n", filepath.Base(path))
		fmt.Fprintf(&b, "Path: %s\n", path)
		fmt.Fprintf(&b, "Size: %d bytes\n\n", info.Size())
		b.WriteString("---\n")
		b.WriteString(content)
		return domain.OK(b.String()), nil
	}
}
