package loader

import (
	"errors"
	"testing"

	"tablehash/internal/canon"
	"tablehash/internal/fingerprint"
)

func TestLoadUnknownExtensionGuesses(t *testing.T) {
	path := writeFile(t, "data.dat", `[{"id": 1, "v": "x"}]`)
	tbl, info, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if info.Format != FormatJSON {
		t.Fatalf("format: %q", info.Format)
	}
	if tbl.NumRows() != 1 {
		t.Fatalf("rows: %d", tbl.NumRows())
	}
}

func TestLoadMisnamedFileFallsBack(t *testing.T) {
	// A JSON payload behind a .parquet extension must still load through the
	// guess loop.
	path := writeFile(t, "data.parquet", `[{"id": 1}]`)
	_, info, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if info.Format != FormatJSON {
		t.Fatalf("format: %q", info.Format)
	}
}

func TestLoadNoGuessFallback(t *testing.T) {
	path := writeFile(t, "data.parquet", `[{"id": 1}]`)
	if _, _, err := Load(path, Options{NoGuessFallback: true}); err == nil {
		t.Fatal("expected parquet decoder failure without fallback")
	}
}

func TestLoadUndecodableReportsAttempts(t *testing.T) {
	path := writeFile(t, "data.bin", "\x00\x01\x02\"unterminated\n\x03,\x04\n")
	_, _, err := Load(path, Options{})
	var unsupported *UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
	if len(unsupported.Attempts) != 4 {
		t.Fatalf("expected 4 attempts, got %v", unsupported.Attempts)
	}
}

func TestFormatInvarianceCSVvsJSON(t *testing.T) {
	// Logically identical data in two carrier formats, with different row and
	// column order, must produce one order-independent digest after
	// standardization.
	csvPath := writeFile(t, "data.csv", "id,when,score\n1,2023-01-05,1.5\n2,2023-1-5 00:00,2\n")
	jsonPath := writeFile(t, "data.json",
		`[{"score": 2.0, "when": "2023-01-05 00:00:00", "id": 2},
		  {"score": 1.5, "when": "2023-01-05", "id": 1}]`)

	digests := make([]string, 0, 2)
	for _, path := range []string{csvPath, jsonPath} {
		tbl, _, err := Load(path, Options{})
		if err != nil {
			t.Fatalf("Load(%s): %v", path, err)
		}
		canon.StandardizeDatetimes(tbl, canon.Options{})
		digest, err := fingerprint.OrderIndependent(tbl)
		if err != nil {
			t.Fatalf("OrderIndependent(%s): %v", path, err)
		}
		digests = append(digests, digest)
	}
	if digests[0] != digests[1] {
		t.Fatalf("format invariance broken: %s vs %s", digests[0], digests[1])
	}
}
