package logging

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRotatingJSONLStore_Rotation(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/log.jsonl"
	store, err := NewRotatingJSONLStore(path, 1, 2, 1)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer func() { _ = store.Close() }()
	rec := sampleRecord(time.Now(), "")
	rec.Error = strings.Repeat("x", 64*1024)
	for i := 0; i < 20; i++ {
		if err := store.Append(context.Background(), rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	files, _ := filepath.Glob(dir + "/log-*.jsonl")
	if len(files) == 0 {
		t.Fatalf("expected rotated files")
	}
	out, err := store.Query(context.Background(), LogQuery{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out) != 20 {
		t.Fatalf("expected 20 records across files, got %d", len(out))
	}
}

func TestRotatingJSONLStore_Query(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/log.jsonl"
	store, err := NewRotatingJSONLStore(path, 1, 2, 1)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer func() { _ = store.Close() }()
	now := time.Now()
	_ = store.Append(context.Background(), sampleRecord(now, ""))
	_ = store.Append(context.Background(), sampleRecord(now.Add(time.Minute), "load could not be matched"))
	out, err := store.Query(context.Background(), LogQuery{FailuresOnly: true})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out) != 1 || out[0].Feasible() {
		t.Fatalf("expected one failed record, got %+v", out)
	}
}
