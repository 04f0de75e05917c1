package pak

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// Extractor writes the records of an Archive below Root.
type Extractor struct {
	Root string

	// Logger receives one line per record. Nil means silent.
	Logger *log.Logger

	// DryRun reads and checks every payload without touching the disk.
	DryRun bool
}

// Summary describes a finished extraction.
type Summary struct {
	Files int
	Bytes uint64
}

func (e *Extractor) logf(format string, v ...any) {
	if e.Logger != nil {
		e.Logger.Printf(format, v...)
	}
}

// Extract reads every payload in table order and writes it to its record
// path under Root, creating parent directories and truncating existing
// files. All paths are checked before the first write. The first error
// aborts the run; files already written are left in place.
func (e *Extractor) Extract(a *Archive) (Summary, error) {
	var sum Summary

	targets := make([]string, len(a.Records))
	for i, rec := range a.Records {
		target, err := resolve(e.Root, rec.Path)
		if err != nil {
			return sum, phaseError(PhasePayload, rec.Path, err)
		}
		targets[i] = target
	}

	e.logf("Extracting a total of %d entries to %s", len(a.Records), e.Root)

	r := a.payloads()
	for i, rec := range a.Records {
		data, err := r.ReadBytes(int(rec.Size))
		if err != nil {
			return sum, phaseError(PhasePayload, rec.Path, err)
		}

		e.logf("Extracting file '%s' (%s)...", rec.Name(), humanize.Bytes(uint64(rec.Size)))
		if !e.DryRun {
			if err := writeFile(targets[i], data); err != nil {
				return sum, phaseError(PhasePayload, rec.Path, err)
			}
		}

		sum.Files++
		sum.Bytes += uint64(rec.Size)
	}
	return sum, nil
}

// resolve maps a record path onto a location under root. The path is taken
// as relative even when it looks absolute, and must not climb out of root.
func resolve(root, name string) (string, error) {
	rel := filepath.FromSlash(Record{Path: name}.Name())
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	if filepath.Clean(rel) == "." {
		return "", fmt.Errorf("%w: %q names the root itself", ErrUnsafePath, name)
	}
	return filepath.Join(root, rel), nil
}

func writeFile(target string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}
