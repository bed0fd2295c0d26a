package writers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yanghuadong-Mobile-Researcher/android-studio-poet/logging"
)

// FileWriter persists generated content.
type FileWriter interface {
	WriteToFile(content, path string) error
}

// FSWriter writes files to the local filesystem, creating missing parent
// directories.
type FSWriter struct{}

// NewFSWriter returns a FileWriter backed by the local filesystem.
func NewFSWriter() *FSWriter {
	return &FSWriter{}
}

// WriteToFile writes content to path, replacing any existing file.
func (*FSWriter) WriteToFile(content, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write to file %s: %w", path, err)
	}
	logging.Log.WithField("path", path).WithField("bytes", len(content)).Debug("wrote file")
	return nil
}

// DryRunWriter prints what would be written instead of touching the disk.
type DryRunWriter struct {
	out io.Writer
}

// NewDryRunWriter returns a FileWriter that reports every write to out.
func NewDryRunWriter(out io.Writer) *DryRunWriter {
	return &DryRunWriter{out: out}
}

// WriteToFile prints a "==> path" header followed by content.
func (w *DryRunWriter) WriteToFile(content, path string) error {
	if _, err := fmt.Fprintf(w.out, "==> %s\n%s\n", path, content); err != nil {
		return fmt.Errorf("failed to print %s: %w", path, err)
	}
	return nil
}
