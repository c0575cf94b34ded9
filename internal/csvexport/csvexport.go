package csvexport

import (
	"bufio"
	"fmt"
	"path/filepath"

	"github.com/kilnfi/cardano-pool-stakes/internal/stake"
	"github.com/spf13/afero"
)

const (
	DefaultDir = "csv"
	Header     = "pool_id,stake"
)

// Writer writes one CSV file per epoch and source.
type Writer struct {
	fs  afero.Fs
	dir string
}

func NewWriter(fs afero.Fs, dir string) *Writer {
	if dir == "" {
		dir = DefaultDir
	}
	return &Writer{
		fs:  fs,
		dir: dir,
	}
}

// FileName returns the name of the file holding the stake of an epoch.
func FileName(prefix string, epoch int) string {
	return fmt.Sprintf("%s_%d_stake.csv", prefix, epoch)
}

// Write replaces the file of the given epoch with the pools sorted by ID
// and returns its path. Pool IDs are written as is, without quoting.
func (w *Writer) Write(prefix string, epoch int, stakes stake.PoolStakes) (string, error) {
	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("unable to create directory %s: %w", w.dir, err)
	}

	path := filepath.Join(w.dir, FileName(prefix, epoch))
	file, err := w.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("unable to create %s: %w", path, err)
	}
	defer file.Close()

	buf := bufio.NewWriter(file)
	if _, err := fmt.Fprintln(buf, Header); err != nil {
		return "", fmt.Errorf("unable to write header to %s: %w", path, err)
	}
	for _, entry := range stakes.Sorted() {
		if _, err := fmt.Fprintf(buf, "%s,%s\n", entry.PoolID, entry.Amount); err != nil {
			return "", fmt.Errorf("unable to write pool %s to %s: %w", entry.PoolID, path, err)
		}
	}

	if err := buf.Flush(); err != nil {
		return "", fmt.Errorf("unable to flush %s: %w", path, err)
	}
	if err := file.Sync(); err != nil {
		return "", fmt.Errorf("unable to sync %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("unable to close %s: %w", path, err)
	}

	return path, nil
}
