package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/corpus/pkg/corpus"
	"github.com/cognicore/corpus/pkg/corpus/casesource"
	"github.com/cognicore/corpus/pkg/corpus/config"
	"github.com/cognicore/corpus/pkg/corpus/convert"
	"github.com/cognicore/corpus/pkg/corpus/ingest"
	"github.com/cognicore/corpus/pkg/corpus/justice"
	"github.com/cognicore/corpus/pkg/corpus/store/sqlite"
)

var (
	ingestDB      string
	ingestRoot    string
	ingestLimit   int
	ingestRebuild bool
	ingestMetrics string
)

func init() {
	ingestCmd.Flags().StringVar(&ingestDB, "db", "", "SQLite database path (overrides settings)")
	ingestCmd.Flags().StringVar(&ingestRoot, "root", "", "local case tree (overrides settings)")
	ingestCmd.Flags().IntVar(&ingestLimit, "limit", -1, "stop after this many cases (0 = all)")
	ingestCmd.Flags().BoolVar(&ingestRebuild, "rebuild", false, "drop and recreate every table first")
	ingestCmd.Flags().StringVar(&ingestMetrics, "metrics", "", "write run counters to this Prometheus textfile")
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest case folders into the database",
	Long: `Ingest every case folder of the configured source, one at a time.

A failing case is skipped and counted; the run always completes.

Examples:
  # Ingest a local tree
  corpus ingest --root ./decisions --db corpus.db

  # Rebuild from an S3 bucket, first 100 cases
  CORPUS_SOURCE_TYPE=s3 CORPUS_SOURCE_BUCKET=decisions corpus ingest --rebuild --limit 100`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if ingestDB != "" {
		cfg.Database.Path = ingestDB
	}
	if ingestRoot != "" {
		cfg.Source.Type, cfg.Source.Root = config.SourceLocal, ingestRoot
	}
	if ingestLimit >= 0 {
		cfg.MaxCases = ingestLimit
	}
	if ingestRebuild {
		cfg.Rebuild = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	comp, err := loadComponents(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := newSource(ctx, cfg)
	if err != nil {
		return err
	}

	st, err := sqlite.OpenSQLite(ctx, cfg.Database.Path)
	if err != nil {
		return err
	}
	if cfg.Rebuild {
		if err := st.Reset(ctx); err != nil {
			st.Close()
			return fmt.Errorf("rebuild: %w", err)
		}
	}

	c := corpus.New(corpus.Options{
		Store:    st,
		Roster:   comp.Roster,
		Pipeline: ingest.NewPipeline(comp.Taxonomy, ingest.NewSegmenter(), convert.New()),
		Matcher:  justice.NewCachedMatcher(comp.Roster, cfg.MatchCacheTTL),
		Logger:   log.Named("ingest"),
	})
	defer c.Close()

	rep, err := c.Run(ctx, src, cfg.MaxCases)
	if err != nil {
		return err
	}
	if ingestMetrics != "" {
		if err := rep.WriteMetrics(ingestMetrics); err != nil {
			log.Warn(ctx, "metrics not written", zap.String("path", ingestMetrics), zap.Error(err))
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s: %d cases, %d stored, %d skipped\n", rep.RunID, rep.Seen, rep.Ingested, len(rep.Skips))
	for reason, n := range rep.Skipped() {
		fmt.Fprintf(out, "  %-14s %d\n", reason, n)
	}
	fmt.Fprintf(out, "ponente: %d matched, %d per curiam, %d ambiguous, %d unmatched\n",
		rep.Attributed, rep.PerCuriam, rep.Ambiguous, rep.NoMatch)
	return nil
}

func newSource(ctx context.Context, cfg *config.Settings) (casesource.Source, error) {
	if cfg.Source.Type != config.SourceS3 {
		return casesource.NewLocal(cfg.Source.Root), nil
	}
	client, err := casesource.NewS3Client(ctx, casesource.S3Config{
		Region:    cfg.Source.Region,
		Endpoint:  cfg.Source.Endpoint,
		AccessKey: cfg.Source.AccessKey,
		SecretKey: cfg.Source.SecretKey,
	})
	if err != nil {
		return nil, err
	}
	return casesource.NewS3(client, cfg.Source.Bucket, cfg.Source.Prefix), nil
}
