// Command dedupe-sweep runs one catalog hygiene pass: it loads the stored
// catalog, finds duplicate groups, picks a canonical record per group, and
// deletes the rest in batches. Run it from cron or a one-off shell.
package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	"github.com/triporama/placedex/internal/config"
	"github.com/triporama/placedex/internal/domain/place"
	logpkg "github.com/triporama/placedex/internal/logger"
	"github.com/triporama/placedex/internal/metrics"
	"github.com/triporama/placedex/internal/repository/catalog"
	"github.com/triporama/placedex/internal/usecase/dedupe"
	"github.com/triporama/placedex/internal/usecase/merge"
	"github.com/triporama/placedex/internal/usecase/rank"
	"github.com/triporama/placedex/internal/version"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "plan deletions without executing them")
	flag.Parse()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting dedupe sweep",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.Bool("dry_run", *dryRun),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := catalog.New(catalog.Config{
		Addrs:     cfg.Database.Addrs,
		Password:  cfg.Database.Password,
		KeyPrefix: cfg.Database.KeyPrefix,
	})
	if err != nil {
		logger.Fatal("Failed to create catalog store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Catalog store not ready", zap.Error(err))
	}

	metrics.RegisterEngineMetrics()

	detector := dedupe.New(dedupe.Config{
		PreFilterDeg:      cfg.Engine.Dedupe.PreFilterDeg,
		NearDeg:           cfg.Engine.Dedupe.NearDeg,
		NearNameSim:       cfg.Engine.Dedupe.NearNameSim,
		ExactNameDeg:      cfg.Engine.Dedupe.ExactNameDeg,
		CategoryDeg:       cfg.Engine.Dedupe.CategoryDeg,
		CategoryNameSim:   cfg.Engine.Dedupe.CategoryNameSim,
		IncludeSingletons: cfg.Engine.Dedupe.IncludeSingletons,
	})
	ranker := rank.New()
	planner := merge.New()

	start := time.Now()

	records, err := store.ListAll(ctx)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	logger.Info("Loaded catalog", zap.Int("records", len(records)))

	groups := detector.FindGroups(records)

	byID := make(map[string]place.Record, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}
	for i := range groups {
		groups[i] = ranker.AssignCanonical(groups[i], byID)
	}

	deleteIDs := planner.PlanDeletions(groups)

	metrics.DedupeGroupsFound.Set(float64(len(groups)))
	metrics.DedupeDeletionsPlanned.Set(float64(len(deleteIDs)))

	logger.Info("Plan ready",
		zap.Int("groups", len(groups)),
		zap.Int("deletions", len(deleteIDs)),
	)

	if *dryRun {
		logger.Info("Dry run, skipping deletions")
		return
	}

	for _, batch := range merge.Chunk(deleteIDs, cfg.Database.DeleteBatchSize) {
		if err := store.BatchDelete(ctx, batch); err != nil {
			logger.Fatal("Batch delete failed", zap.Error(err), zap.Int("batch_size", len(batch)))
		}
		logger.Info("Deleted batch", zap.Int("count", len(batch)))
	}

	metrics.DedupeSweepDuration.Observe(time.Since(start).Seconds())

	logger.Info("Sweep complete",
		zap.Int("deleted", len(deleteIDs)),
		zap.Duration("took", time.Since(start)),
	)
}
