package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/vampirenirmal/storyscope/internal/domain/manuscript"
)

// Reports wraps a Store with the report naming and encoding convention:
// reports/<id>.json, indented for human diffing.
type Reports struct {
	store Store
}

func NewReports(store Store) *Reports {
	return &Reports{store: store}
}

func (r *Reports) Save(ctx context.Context, results *manuscript.AnalysisResults) (string, error) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	path := reportPath(results.ID)
	if err := r.store.Save(ctx, path, data); err != nil {
		return "", fmt.Errorf("saving report %s: %w", results.ID, err)
	}
	return path, nil
}

func (r *Reports) Load(ctx context.Context, id string) (*manuscript.AnalysisResults, error) {
	data, err := r.store.Load(ctx, reportPath(id))
	if err != nil {
		return nil, fmt.Errorf("loading report %s: %w", id, err)
	}
	var results manuscript.AnalysisResults
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decoding report %s: %w", id, err)
	}
	return &results, nil
}

func (r *Reports) List(ctx context.Context) ([]string, error) {
	paths, err := r.store.List(ctx, filepath.Join("reports", "*.json"))
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(paths))
	for _, p := range paths {
		base := filepath.Base(p)
		ids = append(ids, base[:len(base)-len(".json")])
	}
	return ids, nil
}

func reportPath(id string) string {
	return filepath.Join("reports", id+".json")
}
