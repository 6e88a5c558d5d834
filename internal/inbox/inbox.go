// Package inbox manages the import directory of payroll PDFs waiting to be
// extracted.
package inbox

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	// Dir is the subdirectory scanned for PDFs.
	Dir = "import"
	// ProcessedDir receives PDFs once extracted.
	ProcessedDir = "import/processed"
)

// File describes a PDF in the import directory.
type File struct {
	Name string
	Path string
	Size int64
}

// Scan returns the PDF files in <root>/import/, sorted by name.
func Scan(root string) ([]File, error) {
	dir := filepath.Join(root, Dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []File
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, File{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	slices.SortFunc(files, func(a, b File) int { return strings.Compare(a.Name, b.Name) })
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(root, name string) error {
	dstDir := filepath.Join(root, ProcessedDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	src := filepath.Join(root, Dir, name)
	if err := os.Rename(src, filepath.Join(dstDir, name)); err != nil {
		return fmt.Errorf("moving %s to processed: %w", name, err)
	}
	return nil
}
