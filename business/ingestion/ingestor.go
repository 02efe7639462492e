// Package ingestion copies the raw CSV datasets from object storage to local disk.
package ingestion

import (
	"animeRecommender/pkg/config"
	"animeRecommender/pkg/logger"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type ObjectStore interface {
	Open(ctx context.Context, bucket, object string) (io.ReadCloser, error)
}

type Ingestor struct {
	store ObjectStore
	cfg   config.DataIngestionConfig
}

func NewIngestor(store ObjectStore, cfg config.DataIngestionConfig) *Ingestor {
	return &Ingestor{
		store: store,
		cfg:   cfg,
	}
}

// Run downloads every configured file into the raw directory. The first
// failure aborts the run.
func (i *Ingestor) Run(ctx context.Context) error {
	logger.Info("Data ingestion started", "bucket", i.cfg.BucketName, "files", len(i.cfg.FileNames))
	defer logger.Info("Data ingestion process finished")

	if err := os.MkdirAll(i.cfg.RawDir, 0o755); err != nil {
		return fmt.Errorf("failed to create raw dir %s: %w", i.cfg.RawDir, err)
	}
	logger.Info("Created raw data directory", "dir", i.cfg.RawDir)

	for _, name := range i.cfg.FileNames {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context error: %w", err)
		}

		path := filepath.Join(i.cfg.RawDir, name)
		rows, err := i.fetch(ctx, name, path)
		if err != nil {
			return fmt.Errorf("failed to download %s: %w", name, err)
		}

		if rows >= 0 {
			logger.Info("Downloaded file", "file", name, "path", path, "rows", rows)
		} else {
			logger.Info("Downloaded file", "file", name, "path", path)
		}
	}

	logger.Info("Data ingestion completed successfully")
	return nil
}

// fetch writes object to path through a temporary file. When the object has
// a row cap it returns the number of records kept, otherwise -1.
func (i *Ingestor) fetch(ctx context.Context, object, path string) (rows int, err error) {
	src, err := i.store.Open(ctx, i.cfg.BucketName, object)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	rows = -1
	if limit, ok := i.cfg.MaxRows[object]; ok && limit > 0 {
		rows, err = copyCSV(tmp, src, limit)
	} else {
		_, err = io.Copy(tmp, src)
	}
	if err != nil {
		return 0, err
	}

	if err = tmp.Close(); err != nil {
		return 0, err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return 0, err
	}
	return rows, nil
}

// copyCSV writes the header and at most limit records from src to dst.
func copyCSV(dst io.Writer, src io.Reader, limit int) (int, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true
	w := csv.NewWriter(dst)

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read header: %w", err)
	}
	if err := w.Write(header); err != nil {
		return 0, err
	}

	n := 0
	for n < limit {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return n, fmt.Errorf("record %d: %w", n+1, err)
		}
		if err := w.Write(record); err != nil {
			return n, err
		}
		n++
	}

	w.Flush()
	return n, w.Error()
}
