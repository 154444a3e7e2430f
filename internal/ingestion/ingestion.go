package ingestion

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/shipregistry/internal/domain/models"
	"github.com/guttosm/shipregistry/internal/logger"
)

const maxParallelFiles = 4

// ShipCreator is the part of the ship service the importer needs.
type ShipCreator interface {
	Create(ctx context.Context, p models.ShipPatch) (models.Ship, error)
}

// Result summarizes a completed import.
type Result struct {
	Files int
	Ships int64
}

// ProcessDirectory imports every *.csv fleet file in dir.
//
// Behavior:
//   - Files are processed concurrently, at most parallel at a time
//     (parallel <= 0 means min(NumCPU, 4)).
//   - Every row goes through svc.Create, so validation and rating apply
//     exactly as for POST /ships.
//   - The first failure cancels the remaining files and is returned with
//     its file and line (see LineError). Ships created before the failure
//     are kept.
func ProcessDirectory(ctx context.Context, dir string, svc ShipCreator, parallel int) (Result, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return Result{}, fmt.Errorf("list %s: %w", dir, err)
	}
	if len(files) == 0 {
		return Result{}, fmt.Errorf("no .csv files found in %s", dir)
	}
	sort.Strings(files)

	maxParallel := parallel
	if maxParallel <= 0 {
		maxParallel = min(runtime.NumCPU(), maxParallelFiles)
	}

	log := logger.For("import")
	log.Info().Int("files", len(files)).Str("dir", dir).Int("max_parallel", maxParallel).Msg("import start")

	var created atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for i, path := range files {
		g.Go(func() error {
			start := time.Now()
			base := filepath.Base(path)
			log.Info().Int("idx", i+1).Int("total", len(files)).Str("file", base).Msg("file start")

			rows, err := parseFile(gctx, path, base, func(p models.ShipPatch) error {
				if _, err := svc.Create(gctx, p); err != nil {
					return err
				}
				created.Add(1)
				return nil
			})
			if err != nil {
				log.Error().Str("file", base).Int("rows", rows).Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				return err
			}
			log.Info().Int("idx", i+1).Int("total", len(files)).Str("file", base).Int("rows", rows).Dur("elapsed", time.Since(start)).Msg("file done")
			return nil
		})
	}

	err = g.Wait()
	res := Result{Files: len(files), Ships: created.Load()}
	if err != nil {
		return res, err
	}
	log.Info().Int("files", res.Files).Int64("ships", res.Ships).Msg("import completed")
	return res, nil
}
