package housekeeping

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ReferenceSource reports which generated filenames are still someone's
// current certificate and therefore must not be purged
type ReferenceSource interface {
	ActiveFilenames(ctx context.Context) ([]string, error)
}

// Purger removes generated PDF files that have aged past the retention
// window and are no longer referenced by any participant.
type Purger struct {
	outputDir string
	retention time.Duration
	refs      ReferenceSource
	logger    *zap.Logger
}

// NewPurger creates a purger over the generated-files directory
func NewPurger(outputDir string, retention time.Duration, refs ReferenceSource, logger *zap.Logger) *Purger {
	return &Purger{
		outputDir: outputDir,
		retention: retention,
		refs:      refs,
		logger:    logger,
	}
}

// Purge deletes aged, unreferenced PDFs and returns how many were removed
func (p *Purger) Purge(ctx context.Context) (int, error) {
	active, err := p.refs.ActiveFilenames(ctx)
	if err != nil {
		return 0, err
	}
	keep := make(map[string]struct{}, len(active))
	for _, name := range active {
		keep[name] = struct{}{}
	}

	entries, err := os.ReadDir(p.outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-p.retention)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pdf") {
			continue
		}
		if _, referenced := keep[entry.Name()]; referenced {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(p.outputDir, entry.Name())
		if err := os.Remove(path); err != nil {
			p.logger.Warn("Failed to remove aged certificate file",
				zap.String("file", entry.Name()),
				zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		p.logger.Info("Purged aged certificate files", zap.Int("removed", removed))
	}
	return removed, nil
}
