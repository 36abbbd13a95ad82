package fsys

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vporto/almanac/internal/registry"
	"github.com/vporto/almanac/internal/tools"
	"github.com/vporto/almanac/pkg/domain"
)

// maxListEntries caps the itemized listing; the remainder is summarized as a
// count.
const maxListEntries = 100

// ListDescriptor returns the list_directory tool metadata.
func ListDescriptor() domain.Tool {
	return domain.Tool{
		Name: "list_directory",
		Description: "List the files and folders in a directory. Useful for " +
			"exploring the filesystem before reading specific files.",
		Params: []domain.Param{
			{Name: "directory_path", Description: "Path of the directory to list", Required: true},
		},
	}
}

type listParams struct {
	DirectoryPath string `mapstructure:"directory_path"`
}

// NewListHandler builds the list_directory handler.
func NewListHandler() registry.Handler {
	return func(ctx context.Context, args map[string]any) (domain.Result, error) {
		var p listParams
		if err := tools.DecodeArgs(args, &p); err != nil {
			return domain.Failf(domain.OutcomeInvalidInput, "Error: invalid arguments for list_directory: %v", err), nil
		}
		if p.DirectoryPath == "" {
			return domain.Failf(domain.OutcomeInvalidInput, "Error: required argument 'directory_path' is missing"), nil
		}

		path, err := filepath.Abs(p.DirectoryPath)
		if err != nil {
			return domain.Failf(domain.OutcomeInvalidInput, "Error: invalid path: %s", p.DirectoryPath), nil
		}

		info, err := os.Stat(path)
		switch {
		case os.IsNotExist(err):
			return domain.Failf(domain.OutcomeNotFound, "Error: directory not found: %s", p.DirectoryPath), nil
		case os.IsPermission(err):
			return domain.Failf(domain.OutcomeInvalidInput, "Error: permission denied: %s", p.DirectoryPath), nil
		case err != nil:
			return domain.Result{}, err
		}
		if !info.IsDir() {
			return domain.Failf(domain.OutcomeInvalidInput, "Error: path is not a directory: %s", p.DirectoryPath), nil
		}

		// Single read: the capped listing and the remainder count both come
		// from the same slice.
		entries, err := os.ReadDir(path)
		if os.IsPermission(err) {
			return domain.Failf(domain.OutcomeInvalidInput, "Error: permission denied listing directory: %s", p.DirectoryPath), nil
		}
		if err != nil {
			return domain.Result{}, err
		}

		if len(entries) == 0 {
			return domain.OK(fmt.Sprintf("Empty directory: %s", path)), nil
		}

		sort.SliceStable(entries, func(i, j int) bool {
			di, dj := entries[i].IsDir(), entries[j].IsDir()
			if di != dj {
				return di
			}
			return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
		})

		shown := entries
		if len(shown) > maxListEntries {
			shown = shown[:maxListEntries]
		}

		var b strings.Builder
		fmt.Fprintf(&b, "**Contents of: %s**\n", path)
		for _, e := range shown {
			if e.IsDir() {
				fmt.Fprintf(&b, "\n[DIR] %s", e.Name())
				continue
			}
			size := ""
			if fi, err := e.Info(); err == nil {
				size = " (" + humanSize(fi.Size()) + ")"
			}
			fmt.Fprintf(&b, "\n[FILE] %s%s", e.Name(), size)
		}
		if rest := len(entries) - maxListEntries; rest > 0 {
			fmt.Fprintf(&b, "\n\n... and %d more items", rest)
		}
		return domain.OK(b.String()), nil
	}
}

func humanSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d bytes", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}
