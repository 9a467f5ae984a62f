package ops

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/trailtools/trail/internal/errors"
)

func TestImportValidation(t *testing.T) {
	st, cfg := testSetup(t)

	if _, err := Import(context.Background(), st, cfg, ImportInput{}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("empty path error = %v, want %s", err, errors.ErrInvalidRequest)
	}

	missing := filepath.Join(t.TempDir(), "missing.json")
	if _, err := Import(context.Background(), st, cfg, ImportInput{Path: missing}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("missing file error = %v, want %s", err, errors.ErrNotFound)
	}
}

func TestImportRejectsMalformedBackup(t *testing.T) {
	st, cfg := testSetup(t)

	mustCapture(t, st, cfg, CaptureInput{CWD: "/app", Command: "npm install", Now: at(0)})

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"events": "nope"}`), 0600); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := Import(context.Background(), st, cfg, ImportInput{Path: path}); !errors.Is(err, errors.ErrMalformedDocument) {
		t.Errorf("error = %v, want %s", err, errors.ErrMalformedDocument)
	}

	// The live document must be untouched by a failed import.
	doc, err := st.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if events, _, _ := doc.Counts(); events != 1 {
		t.Errorf("live document has %d events after failed import, want 1", events)
	}
}

func TestImportReplacesDocumentWholesale(t *testing.T) {
	st, cfg := testSetup(t)

	mustCapture(t, st, cfg, CaptureInput{CWD: "/old", Command: "ls", Now: at(0)})

	// A backup holding a different history.
	other, _ := testSetup(t)
	mustCapture(t, other, cfg, CaptureInput{CWD: "/new", Command: "pwd", Now: at(1)})
	path := filepath.Join(t.TempDir(), "backup.json")
	if _, err := Export(context.Background(), other, cfg, ExportInput{Path: path}); err != nil {
		t.Fatalf("Export: %v", err)
	}

	if _, err := Import(context.Background(), st, cfg, ImportInput{Path: path}); err != nil {
		t.Fatalf("Import: %v", err)
	}

	doc, _ := st.Load()
	if events, _, _ := doc.Counts(); events != 1 {
		t.Fatalf("got %d events, want 1", events)
	}
	if doc.Events[0].CWD != "/new" {
		t.Errorf("surviving event cwd = %q, want the imported history to replace the old one", doc.Events[0].CWD)
	}
}
