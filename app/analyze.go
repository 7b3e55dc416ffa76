// Package app orchestrates the analysis pipeline: load, describe,
// classify, synthesize, compare, and emit artifacts.
package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"randmodel/domain/core"
	"randmodel/domain/distribution"
	"randmodel/domain/run"
	"randmodel/domain/sample"
	"randmodel/domain/stats"
	"randmodel/internal"
	"randmodel/internal/errors"
	"randmodel/ports"
)

// Artifact file names written by the pipeline. Table sinks derive
// their own medium-specific names from the bare table names.
const (
	ReportFile   = "report.md"
	ManifestFile = "run.json"
	WorkbookFile = "report.xlsx"

	plotSourceLine      = "source-line-graph.png"
	plotSourceHistogram = "source-histogram.png"
	plotAutocorrelation = "autocorrelation.png"
	plotResultLine      = "result-line-graph.png"
	plotResultHistogram = "result-histogram.png"
)

// AnalyzeDeps wires the pipeline collaborators.
type AnalyzeDeps struct {
	Source   ports.SequenceSource
	Uniforms ports.UniformSource
	Tables   []ports.TableSink
	Plots    ports.PlotRenderer
	Archive  ports.RunArchive // nil disables archiving
	Logger   *internal.Logger
}

// AnalyzeService runs the sequence analysis pipeline end to end. The
// numeric phases run strictly sequentially; only artifact emission
// fans out.
type AnalyzeService struct {
	deps AnalyzeDeps
}

// NewAnalyzeService validates the wiring and creates the service
func NewAnalyzeService(deps AnalyzeDeps) (*AnalyzeService, error) {
	if deps.Source == nil {
		return nil, errors.ConfigInvalid("analyze service requires a sequence source")
	}
	if deps.Uniforms == nil {
		return nil, errors.ConfigInvalid("analyze service requires a uniform source")
	}
	if deps.Plots == nil {
		return nil, errors.ConfigInvalid("analyze service requires a plot renderer")
	}
	if len(deps.Tables) == 0 {
		return nil, errors.ConfigInvalid("analyze service requires at least one table sink")
	}
	if deps.Logger == nil {
		deps.Logger = internal.DefaultLogger
	}
	return &AnalyzeService{deps: deps}, nil
}

// AnalyzeRequest carries the run parameters recorded in the manifest
type AnalyzeRequest struct {
	SourcePath string
	OutDir     string
	Schedule   sample.Schedule
	Seed       int64
	MaxLag     int
}

// AnalyzeResult carries the run outcome: the command layer prints the
// verdict from it, tests inspect the rest. Synthetic fields stay nil
// when classification ends the run before generation.
type AnalyzeResult struct {
	Manifest    *run.Manifest
	Family      distribution.Family
	Fit         *distribution.ErlangFit
	FitCheck    *distribution.FitCheck
	Source      *stats.Summary
	Synthetic   *stats.Summary
	Correlation decimal.Decimal
	ReportPath  string
}

// Run executes one analysis run and writes every artifact
func (s *AnalyzeService) Run(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	log := s.deps.Logger
	if err := req.Schedule.Validate(); err != nil {
		return nil, err
	}
	if req.MaxLag < 1 {
		return nil, errors.ConfigInvalid("max lag must be at least 1")
	}

	// load and fingerprint the source sequence
	source, err := s.deps.Source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if source.Size() != req.Schedule.Full() {
		return nil, core.NewLengthError(req.Schedule.Full(), source.Size())
	}
	manifest := run.NewManifest(req.SourcePath, source.Digest(), req.Schedule, req.Seed, req.MaxLag)
	log.Info("run %s: loaded %d values from %s", manifest.RunID, source.Size(), req.SourcePath)

	// analyze source sequence against its own full statistics
	full, err := stats.Describe(source)
	if err != nil {
		return nil, err
	}
	partials, err := describePrefixes(source, req.Schedule.Prefixes(), func(int) *stats.Summary { return full })
	if err != nil {
		return nil, err
	}
	table1, err := BuildTable1(partials, full)
	if err != nil {
		return nil, err
	}

	// analyze autocorrelation for the source sequence
	sourceAC, err := full.AutocorrelationSeries(req.MaxLag)
	if err != nil {
		return nil, err
	}

	// detect distribution type
	cv, err := full.CoefficientOfVariation()
	if err != nil {
		return nil, err
	}
	family := distribution.Classify(cv)
	manifest.RecordClassification(family)
	manifest.SourceMean = full.Mean().String()

	sourceProfile, err := stats.BuildProfile(source)
	if err != nil {
		return nil, err
	}

	result := &AnalyzeResult{
		Manifest:   manifest,
		Family:     family,
		Source:     full,
		ReportPath: filepath.Join(req.OutDir, ReportFile),
	}

	if !family.Generable() {
		log.Info("run %s: %s", manifest.RunID, DetectionLine(family, nil))
		report, err := BuildReport(ReportData{
			Manifest:      manifest,
			Full:          full,
			SourceProfile: sourceProfile,
			SourceAC:      sourceAC,
			Artifacts: []string{
				"table1.csv", WorkbookFile,
				plotSourceLine, plotSourceHistogram, plotAutocorrelation,
				ManifestFile,
			},
		})
		if err != nil {
			return nil, err
		}
		err = s.emitArtifacts(ctx, req.OutDir,
			[]namedTable{{"table1", table1}},
			[]lineSpec{
				{plotSourceLine, source.Float64s(), 0},
				{plotAutocorrelation, floats(sourceAC), 1},
			},
			[]histogramSpec{{plotSourceHistogram, source.Float64s()}},
			report, manifest)
		if err != nil {
			return nil, err
		}
		if err := s.archive(ctx, manifest); err != nil {
			return nil, err
		}
		return result, nil
	}

	// fit the Erlang parameters and synthesize a sequence of the same
	// length from the injected uniform stream
	fit, err := distribution.FitErlang(full)
	if err != nil {
		return nil, err
	}
	manifest.RecordFit(fit)
	log.Info("run %s: %s", manifest.RunID, DetectionLine(family, fit))
	log.Info("run %s: parameter k %s, parameter a %s", manifest.RunID, fit.RawShape, fit.Rate)

	generator, err := distribution.NewGenerator(fit, s.deps.Uniforms)
	if err != nil {
		return nil, err
	}
	synthetic, err := generator.Sample(req.Schedule.Full())
	if err != nil {
		return nil, err
	}

	// analyze the synthetic sequence against the same-size source
	// statistics
	sources := make([]*stats.Summary, 0, len(partials)+1)
	for _, p := range partials {
		sources = append(sources, p.Current())
	}
	sources = append(sources, full)
	comparisons, err := describePrefixes(synthetic, req.Schedule, func(i int) *stats.Summary { return sources[i] })
	if err != nil {
		return nil, err
	}
	table2, err := BuildTable2(comparisons)
	if err != nil {
		return nil, err
	}

	// analyze autocorrelation for the synthetic sequence
	syntheticFull := comparisons[len(comparisons)-1]
	syntheticAC, err := syntheticFull.Current().AutocorrelationSeries(req.MaxLag)
	if err != nil {
		return nil, err
	}
	table3, err := BuildTable3(sourceAC, syntheticAC)
	if err != nil {
		return nil, err
	}

	// source to synthetic correlation and diagnostics
	correlation, err := full.CrossCorrelation(syntheticFull.Current())
	if err != nil {
		return nil, err
	}
	manifest.SyntheticMean = syntheticFull.Current().Mean().String()
	manifest.Correlation = correlation.String()
	log.Info("run %s: correlation from generator %s", manifest.RunID, correlation)

	syntheticProfile, err := stats.BuildProfile(synthetic)
	if err != nil {
		return nil, err
	}
	fitCheck, err := distribution.CheckFit(synthetic, fit)
	if err != nil {
		return nil, err
	}

	report, err := BuildReport(ReportData{
		Manifest:         manifest,
		Full:             full,
		FullComparison:   syntheticFull,
		Fit:              fit,
		FitCheck:         fitCheck,
		SourceProfile:    sourceProfile,
		SyntheticProfile: syntheticProfile,
		SourceAC:         sourceAC,
		SyntheticAC:      syntheticAC,
		Correlation:      correlation,
		Artifacts: []string{
			"table1.csv", "table2.csv", "table3.csv", WorkbookFile,
			plotSourceLine, plotSourceHistogram, plotAutocorrelation,
			plotResultLine, plotResultHistogram,
			ManifestFile,
		},
	})
	if err != nil {
		return nil, err
	}

	err = s.emitArtifacts(ctx, req.OutDir,
		[]namedTable{
			{"table1", table1},
			{"table2", table2},
			{"table3", table3},
		},
		[]lineSpec{
			{plotSourceLine, source.Float64s(), 0},
			{plotAutocorrelation, floats(sourceAC), 1},
			{plotResultLine, synthetic.Float64s(), 0},
		},
		[]histogramSpec{
			{plotSourceHistogram, source.Float64s()},
			{plotResultHistogram, synthetic.Float64s()},
		},
		report, manifest)
	if err != nil {
		return nil, err
	}

	result.Fit = fit
	result.FitCheck = fitCheck
	result.Synthetic = syntheticFull.Current()
	result.Correlation = correlation
	if err := s.archive(ctx, manifest); err != nil {
		return nil, err
	}
	return result, nil
}

// describePrefixes describes each prefix of the sequence and compares
// it against the base summary the selector resolves for its position
func describePrefixes(s *sample.Sample, sizes []int, base func(int) *stats.Summary) ([]*stats.Comparison, error) {
	comparisons := make([]*stats.Comparison, 0, len(sizes))
	for i, size := range sizes {
		prefix, err := s.Prefix(size)
		if err != nil {
			return nil, err
		}
		summary, err := stats.Describe(prefix)
		if err != nil {
			return nil, err
		}
		comparison, err := stats.Compare(summary, base(i))
		if err != nil {
			return nil, errors.Wrapf(err, "comparison for size %d", size)
		}
		comparisons = append(comparisons, comparison)
	}
	return comparisons, nil
}

type namedTable struct {
	name string
	rows [][]string
}

type lineSpec struct {
	name   string
	values []float64
	startX int
}

type histogramSpec struct {
	name   string
	values []float64
}

// emitArtifacts writes every artifact concurrently. Tables, the
// report and the manifest each own their file; plots share the
// renderer, so they render sequentially inside one goroutine.
func (s *AnalyzeService) emitArtifacts(ctx context.Context, outDir string, tables []namedTable, lines []lineSpec, histograms []histogramSpec, report string, manifest *run.Manifest) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.IOError("failed to create output directory "+outDir, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, sink := range s.deps.Tables {
		for _, table := range tables {
			g.Go(func() error {
				return sink.WriteTable(gctx, table.name, table.rows)
			})
		}
	}

	g.Go(func() error {
		for _, line := range lines {
			if err := s.deps.Plots.Line(gctx, line.name, line.values, line.startX); err != nil {
				return err
			}
		}
		for _, histogram := range histograms {
			if err := s.deps.Plots.Histogram(gctx, histogram.name, histogram.values); err != nil {
				return err
			}
		}
		return nil
	})

	g.Go(func() error {
		path := filepath.Join(outDir, ReportFile)
		if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
			return errors.IOError("failed to write "+path, err)
		}
		return nil
	})

	g.Go(func() error {
		if err := manifest.Validate(); err != nil {
			return err
		}
		payload, err := json.MarshalIndent(manifest, "", "  ")
		if err != nil {
			return errors.InternalError("failed to encode manifest: " + err.Error())
		}
		path := filepath.Join(outDir, ManifestFile)
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			return errors.IOError("failed to write "+path, err)
		}
		return nil
	})

	return g.Wait()
}

// archive saves the manifest when an archive is configured
func (s *AnalyzeService) archive(ctx context.Context, manifest *run.Manifest) error {
	if s.deps.Archive == nil {
		return nil
	}
	if err := s.deps.Archive.SaveRun(ctx, manifest); err != nil {
		return errors.Wrap(err, "failed to archive run")
	}
	s.deps.Logger.Info("run %s: archived", manifest.RunID)
	return nil
}

func floats(values []decimal.Decimal) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v.InexactFloat64()
	}
	return out
}
