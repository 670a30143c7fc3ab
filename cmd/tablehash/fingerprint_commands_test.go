package main

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"tablehash/internal/testsupport"
)

func TestOrderedAndUnorderedDigests(t *testing.T) {
	env := setupCLITestEnv(t)
	csvPath := writeFixture(t, env, "data.csv", "id,name\n1,alice\n2,bob\n")

	orderedOut, _, err := runCLI(t, []string{"ordered", csvPath, "--no-store"}, env.configPath)
	if err != nil {
		t.Fatalf("ordered: %v", err)
	}
	ordered := strings.TrimSpace(orderedOut)
	if !isHexDigest(ordered) {
		t.Fatalf("not a sha256 hex digest: %q", ordered)
	}

	unorderedOut, _, err := runCLI(t, []string{"unordered", csvPath, "--no-store"}, env.configPath)
	if err != nil {
		t.Fatalf("unordered: %v", err)
	}
	unordered := strings.TrimSpace(unorderedOut)
	if !isHexDigest(unordered) {
		t.Fatalf("not a sha256 hex digest: %q", unordered)
	}
	if ordered == unordered {
		t.Fatal("ordered and unordered digests must differ in construction")
	}
}

func TestUnorderedIgnoresRowOrder(t *testing.T) {
	env := setupCLITestEnv(t)
	first := writeFixture(t, env, "a.csv", "id,name\n1,alice\n2,bob\n")
	second := writeFixture(t, env, "b.csv", "id,name\n2,bob\n1,alice\n")

	firstOut, _, err := runCLI(t, []string{"unordered", first, "--no-store"}, env.configPath)
	if err != nil {
		t.Fatalf("unordered first: %v", err)
	}
	secondOut, _, err := runCLI(t, []string{"unordered", second, "--no-store"}, env.configPath)
	if err != nil {
		t.Fatalf("unordered second: %v", err)
	}
	if firstOut != secondOut {
		t.Fatalf("row order changed the unordered digest: %q vs %q", firstOut, secondOut)
	}

	orderedFirst, _, err := runCLI(t, []string{"ordered", first, "--no-store"}, env.configPath)
	if err != nil {
		t.Fatalf("ordered first: %v", err)
	}
	orderedSecond, _, err := runCLI(t, []string{"ordered", second, "--no-store"}, env.configPath)
	if err != nil {
		t.Fatalf("ordered second: %v", err)
	}
	if orderedFirst == orderedSecond {
		t.Fatal("ordered digest must change when rows move")
	}
}

func TestFingerprintFormatInvariance(t *testing.T) {
	env := setupCLITestEnv(t)
	csvPath := writeFixture(t, env, "data.csv", "id,score\n1,1.5\n2,2\n")
	jsonPath := writeFixture(t, env, "data.json", `[{"id":1,"score":1.5},{"id":2,"score":2}]`)

	csvOut, _, err := runCLI(t, []string{"ordered", csvPath, "--no-store"}, env.configPath)
	if err != nil {
		t.Fatalf("ordered csv: %v", err)
	}
	jsonOut, _, err := runCLI(t, []string{"ordered", jsonPath, "--no-store"}, env.configPath)
	if err != nil {
		t.Fatalf("ordered json: %v", err)
	}
	if csvOut != jsonOut {
		t.Fatalf("carrier format changed the digest: csv %q json %q", csvOut, jsonOut)
	}
}

func TestFingerprintJSONEnvelope(t *testing.T) {
	env := setupCLITestEnv(t)
	csvPath := writeFixture(t, env, "data.csv", "id,when\n1,2023-01-05\n2,2023-1-6\n")

	out, _, err := runCLI(t, []string{"--json", "unordered", csvPath, "--no-store"}, env.configPath)
	if err != nil {
		t.Fatalf("unordered --json: %v", err)
	}

	var result fingerprintResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("not json: %v (%s)", err, out)
	}
	if result.Mode != "unordered" || result.Rows != 2 || result.Columns != 2 {
		t.Fatalf("unexpected envelope: %+v", result)
	}
	if !isHexDigest(result.Digest) {
		t.Fatalf("not a sha256 hex digest: %q", result.Digest)
	}
	if result.Format != "csv" {
		t.Fatalf("unexpected format: %q", result.Format)
	}
	if len(result.Temporal) != 1 || result.Temporal[0] != "when" {
		t.Fatalf("temporal column not reported: %+v", result.Temporal)
	}
}

func TestFingerprintWhereFilter(t *testing.T) {
	env := setupCLITestEnv(t)
	full := writeFixture(t, env, "full.csv", "id,region\n1,east\n2,west\n3,east\n")
	eastOnly := writeFixture(t, env, "east.csv", "id,region\n1,east\n3,east\n")

	filteredOut, _, err := runCLI(t, []string{"unordered", full, "--where", `region == "east"`, "--no-store"}, env.configPath)
	if err != nil {
		t.Fatalf("unordered --where: %v", err)
	}
	plainOut, _, err := runCLI(t, []string{"unordered", eastOnly, "--no-store"}, env.configPath)
	if err != nil {
		t.Fatalf("unordered east-only: %v", err)
	}
	if filteredOut != plainOut {
		t.Fatalf("filtered digest differs from pre-filtered file: %q vs %q", filteredOut, plainOut)
	}

	if _, _, err := runCLI(t, []string{"unordered", full, "--where", "region ==", "--no-store"}, env.configPath); err == nil {
		t.Fatal("expected error for malformed filter expression")
	}
}

func TestFingerprintDateOnly(t *testing.T) {
	env := setupCLITestEnv(t)
	timestamps := writeFixture(t, env, "ts.csv", "id,when\n1,2023-01-05 10:30:00\n")
	dates := writeFixture(t, env, "d.csv", "id,when\n1,2023-01-05\n")

	tsOut, _, err := runCLI(t, []string{"unordered", timestamps, "--date-only", "--no-store"}, env.configPath)
	if err != nil {
		t.Fatalf("unordered --date-only timestamps: %v", err)
	}
	dOut, _, err := runCLI(t, []string{"unordered", dates, "--date-only", "--no-store"}, env.configPath)
	if err != nil {
		t.Fatalf("unordered --date-only dates: %v", err)
	}
	if tsOut != dOut {
		t.Fatalf("date-only digests differ: %q vs %q", tsOut, dOut)
	}
}

func TestFingerprintRecordsHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	csvPath := writeFixture(t, env, "data.csv", "id\n1\n")

	if _, _, err := runCLI(t, []string{"unordered", csvPath}, env.configPath); err != nil {
		t.Fatalf("unordered: %v", err)
	}

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "data.csv")
	requireContains(t, out, "unordered")

	store := testsupport.MustOpenStore(t, env.cfg)
	entries, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != csvPath {
		t.Fatalf("unexpected history entries: %+v", entries)
	}
}

func TestFingerprintStoreHistoryDisabled(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStoreHistory(false))
	csvPath := writeFixture(t, env, "data.csv", "id\n1\n")

	if _, _, err := runCLI(t, []string{"unordered", csvPath}, env.configPath); err != nil {
		t.Fatalf("unordered: %v", err)
	}

	store := testsupport.MustOpenStore(t, env.cfg)
	entries, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("history must stay empty when store_history is off: %+v", entries)
	}
}

func TestFingerprintConfigDateOnly(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithDateOnly(true))
	timestamps := writeFixture(t, env, "ts.csv", "id,when\n1,2023-01-05 10:30:00\n")
	dates := writeFixture(t, env, "d.csv", "id,when\n1,2023-01-05\n")

	tsOut, _, err := runCLI(t, []string{"unordered", timestamps, "--no-store"}, env.configPath)
	if err != nil {
		t.Fatalf("unordered timestamps: %v", err)
	}
	dOut, _, err := runCLI(t, []string{"unordered", dates, "--no-store"}, env.configPath)
	if err != nil {
		t.Fatalf("unordered dates: %v", err)
	}
	if tsOut != dOut {
		t.Fatalf("config date_only not honored: %q vs %q", tsOut, dOut)
	}
}

func TestFingerprintMissingFile(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"ordered", "/does/not/exist.csv", "--no-store"}, env.configPath); err == nil {
		t.Fatal("expected error for missing file")
	}
}
