package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"randmodel/adapters/csvio"
	"randmodel/adapters/excel"
	"randmodel/adapters/plot"
	"randmodel/adapters/postgres"
	"randmodel/adapters/rng"
	"randmodel/app"
	"randmodel/domain/distribution"
	"randmodel/internal"
	"randmodel/internal/config"
	"randmodel/internal/errors"
	"randmodel/ports"
	"randmodel/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		internal.DefaultLogger.Debug("no .env file found, using system environment variables")
	}

	rootCmd := &cobra.Command{
		Use:   "randmodel",
		Short: "Sequence statistics, Erlang fitting and synthesis",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newGenerateCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var outDir string
	var seed int64
	var maxLag int

	cmd := &cobra.Command{
		Use:   "analyze [sequence-file]",
		Short: "Analyze a sequence, fit its distribution and synthesize a comparison run",
		Long: `Analyze an observed sequence of decimal values.

The pipeline computes convergence statistics over the prefix schedule,
classifies the distribution by coefficient of variation, and for an
Erlang verdict fits k and a, synthesizes a sequence of the same length
and writes comparison tables, plots, a report and a run manifest.

Example: randmodel analyze data/sequence.csv --out out --seed 53`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Analysis.InputFile = args[0]
			}
			if cmd.Flags().Changed("out") {
				cfg.Analysis.OutDir = outDir
			}
			if cmd.Flags().Changed("seed") {
				cfg.Analysis.Seed = seed
			}
			if cmd.Flags().Changed("max-lag") {
				cfg.Analysis.MaxLag = maxLag
			}
			return runAnalyze(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "out", "Artifact output directory")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "Random seed for the synthesis stream")
	cmd.Flags().IntVar(&maxLag, "max-lag", 10, "Highest autocorrelation lag to compute")

	return cmd
}

func runAnalyze(ctx context.Context, cfg *config.Config, out io.Writer) error {
	logger := internal.DefaultLogger

	workbook := excel.NewWorkbook(filepath.Join(cfg.Analysis.OutDir, app.WorkbookFile))
	defer workbook.Close()

	deps := app.AnalyzeDeps{
		Source:   csvio.NewSequenceReader(cfg.Analysis.InputFile, cfg.Analysis.Schedule.Full()),
		Uniforms: rng.NewStream(cfg.Analysis.Seed),
		Tables:   []ports.TableSink{csvio.NewTableSink(cfg.Analysis.OutDir), workbook},
		Plots:    plot.NewRenderer(cfg.Analysis.OutDir),
		Logger:   logger,
	}

	if cfg.Database.URL != "" {
		db, err := postgres.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer db.Close()
		archive, err := postgres.NewRunArchive(ctx, db)
		if err != nil {
			return err
		}
		deps.Archive = archive
	}

	service, err := app.NewAnalyzeService(deps)
	if err != nil {
		return err
	}

	result, err := service.Run(ctx, app.AnalyzeRequest{
		SourcePath: cfg.Analysis.InputFile,
		OutDir:     cfg.Analysis.OutDir,
		Schedule:   cfg.Analysis.Schedule,
		Seed:       cfg.Analysis.Seed,
		MaxLag:     cfg.Analysis.MaxLag,
	})
	if err != nil {
		return err
	}

	if err := workbook.Save(); err != nil {
		return err
	}

	fmt.Fprintln(out, app.DetectionLine(result.Family, result.Fit))
	if result.Fit != nil {
		fmt.Fprintf(out, "Parameter k: %s\n", result.Fit.RawShape)
		fmt.Fprintf(out, "Parameter a: %s\n", result.Fit.Rate)
		fmt.Fprintf(out, "Correlation from generator: %s\n", result.Correlation)
	}
	fmt.Fprintf(out, "Run %s: artifacts written to %s\n", result.Manifest.RunID, cfg.Analysis.OutDir)
	return nil
}

func newGenerateCmd() *cobra.Command {
	var batch int
	var infinite bool
	var seed int64
	var shape int64
	var rate string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print Erlang-distributed values from a seeded stream",
		Long: `Print pseudo-random Erlang variates, one per line.

Single-shot mode prints one batch and exits. With --infinite the command
prints the first batch immediately, then one more batch per line read
from standard input, and exits cleanly at end of input.

Example: randmodel generate --batch 300 --seed 53 > data/sequence.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("batch") {
				batch = cfg.Generator.Batch
			}
			if !cmd.Flags().Changed("seed") {
				seed = cfg.Analysis.Seed
			}
			if !cmd.Flags().Changed("k") {
				shape = cfg.Generator.Shape
			}
			if !cmd.Flags().Changed("rate") {
				rate = cfg.Generator.Rate
			}
			if batch < 1 {
				return errors.ConfigInvalid("generator batch must be at least 1")
			}
			return runGenerate(cmd.OutOrStdout(), cmd.InOrStdin(), batch, infinite, seed, shape, rate)
		},
	}

	cmd.Flags().IntVar(&batch, "batch", 1, "Values to print per batch")
	cmd.Flags().BoolVar(&infinite, "infinite", false, "Emit one batch per input line until end of input")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "Random seed for the uniform stream")
	cmd.Flags().Int64Var(&shape, "k", 3, "Erlang shape, the exponential stage count")
	cmd.Flags().StringVar(&rate, "rate", config.DefaultGeneratorRate, "Erlang rate as a decimal string")

	return cmd
}

func runGenerate(out io.Writer, in io.Reader, batch int, infinite bool, seed, shape int64, rate string) error {
	rateDec, err := decimal.NewFromString(rate)
	if err != nil {
		return errors.ConfigInvalid("generator rate is not a valid decimal: " + rate)
	}
	fit := &distribution.ErlangFit{K: shape, Rate: rateDec}
	generator, err := distribution.NewGenerator(fit, rng.NewStream(seed))
	if err != nil {
		return err
	}

	w := bufio.NewWriter(out)
	printBatch := func() error {
		for i := 0; i < batch; i++ {
			if _, err := fmt.Fprintln(w, generator.Next()); err != nil {
				return err
			}
		}
		return w.Flush()
	}

	if err := printBatch(); err != nil {
		return err
	}
	if !infinite {
		return nil
	}

	// one more batch per input line; end of input is normal termination
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := printBatch(); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func newServeCmd() *cobra.Command {
	var port string
	var outDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the latest run's report and artifacts over HTTP",
		Long: `Serve the artifact directory of the latest analysis run.

GET / renders the report, GET /api/run returns the run manifest and
GET /artifacts/ serves the raw files.

Example: randmodel serve --out out --port 8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("out") {
				cfg.Analysis.OutDir = outDir
			}

			server, err := ui.NewApp(ui.Config{
				OutDir: cfg.Analysis.OutDir,
				Logger: internal.DefaultLogger,
			})
			if err != nil {
				return err
			}
			return server.Start(cfg.Server.Port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "8080", "Listen port")
	cmd.Flags().StringVar(&outDir, "out", "out", "Artifact directory to serve")

	return cmd
}
