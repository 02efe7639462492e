package artifact

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

func loadMapping(ctx context.Context, path string) (map[int]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var m map[int]int
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode mapping: %w", err)
	}

	return m, nil
}

func loadWeights(ctx context.Context, path string) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows [][]float32
	if err := json.NewDecoder(f).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode weights: %w", err)
	}

	return rows, nil
}
