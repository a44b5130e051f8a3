package storage

import (
	"context"
	"testing"
	"time"

	"github.com/vampirenirmal/storyscope/internal/domain/manuscript"
)

func TestReportsRoundTrip(t *testing.T) {
	reports := NewReports(NewFileSystem(t.TempDir()))
	ctx := context.Background()

	results := &manuscript.AnalysisResults{
		ID:         "abc-123",
		SourceName: "draft.txt",
		CreatedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		WordCount:  42,
	}

	path, err := reports.Save(ctx, results)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != "reports/abc-123.json" {
		t.Errorf("path = %q", path)
	}

	loaded, err := reports.Load(ctx, "abc-123")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ID != results.ID || loaded.WordCount != 42 || !loaded.CreatedAt.Equal(results.CreatedAt) {
		t.Errorf("loaded = %+v", loaded)
	}

	ids, err := reports.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 1 || ids[0] != "abc-123" {
		t.Errorf("List = %v", ids)
	}
}

func TestReportsLoadMissing(t *testing.T) {
	reports := NewReports(NewFileSystem(t.TempDir()))
	if _, err := reports.Load(context.Background(), "ghost"); err == nil {
		t.Error("expected error for unknown report id")
	}
}
