package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/portfolio/backend/internal/repository"
)

// copyKeys copies each key from src to dst concurrently and returns how many
// were written. Keys missing from src are skipped so dst keeps its value.
func copyKeys(ctx context.Context, src, dst repository.Backend, keys []string, dryRun bool) (int, error) {
	var copied atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, key := range keys {
		g.Go(func() error {
			data, err := src.Get(ctx, key)
			if errors.Is(err, repository.ErrKeyNotFound) {
				slog.Info("skipping missing key", "key", key, "from", src.Name())
				return nil
			}
			if err != nil {
				return fmt.Errorf("read %s from %s: %w", key, src.Name(), err)
			}
			if dryRun {
				slog.Info("would copy", "key", key, "from", src.Name(), "to", dst.Name(), "bytes", len(data))
				return nil
			}
			if err := dst.Set(ctx, key, data); err != nil {
				return fmt.Errorf("write %s to %s: %w", key, dst.Name(), err)
			}
			copied.Add(1)
			slog.Info("copied", "key", key, "from", src.Name(), "to", dst.Name(), "bytes", len(data))
			return nil
		})
	}
	err := g.Wait()
	return int(copied.Load()), err
}
