package ops

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/trailtools/trail/internal/config"
	"github.com/trailtools/trail/internal/errors"
	"github.com/trailtools/trail/internal/store"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Path string // optional, default: ~/.trail/exports/memory-<timestamp>.json
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path     string `json:"path"`
	Events   int    `json:"events"`
	Episodes int    `json:"episodes"`
	Projects int    `json:"projects"`
}

// Export writes a backup copy of the whole memory document. The backup is
// the same JSON shape as the live document, so an exported file can be
// inspected by hand or restored with Import.
func Export(ctx context.Context, st *store.Store, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	doc, err := st.Load()
	if err != nil {
		return nil, err
	}

	exportPath := input.Path
	if exportPath == "" {
		exportPath = defaultExportPath(st, time.Now())
	}

	// All paths, including the default, go through validation.
	if err := ValidatePath(exportPath, PathCheckWrite, cfg); err != nil {
		return nil, err
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.NewIO(exportPath, fmt.Errorf("failed to create export directory: %w", err))
	}

	data, err := store.Encode(doc)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	// Write to a temp file and rename into place so a failed write leaves
	// any existing backup untouched.
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := exportPath + "." + hex.EncodeToString(randBytes) + ".tmp"

	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewIO(tempPath, err)
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return nil, errors.NewIO(tempPath, err)
	}
	if err := file.Sync(); err != nil {
		return nil, errors.NewIO(tempPath, err)
	}
	// Close before rename (required on Windows; fine elsewhere).
	if err := file.Close(); err != nil {
		return nil, errors.NewIO(tempPath, err)
	}
	file = nil

	// os.Rename would follow a symlink destination.
	if info, err := os.Lstat(exportPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return nil, errors.NewInvalidRequest("export path is a symlink")
	}

	if err := os.Rename(tempPath, exportPath); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(exportPath); statErr == nil {
				return nil, errors.NewInvalidRequest("export destination already exists; overwriting is not supported on Windows (choose a new path or delete the existing file)")
			}
		}
		return nil, errors.NewIO(exportPath, err)
	}

	success = true
	events, episodes, projects := doc.Counts()
	return &ExportOutput{
		Path:     exportPath,
		Events:   events,
		Episodes: episodes,
		Projects: projects,
	}, nil
}

// defaultExportPath generates the default backup path inside the store's
// exports directory.
func defaultExportPath(st *store.Store, now time.Time) string {
	filename := fmt.Sprintf("memory-%s.json", now.UTC().Format("2006-01-02T150405"))
	return filepath.Join(st.ExportsDir(), filename)
}
