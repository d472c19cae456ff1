package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"pagegen/internal/answers"
	"pagegen/internal/logging"
	"pagegen/internal/pages"
	"pagegen/internal/product"
	"pagegen/internal/questions"
)

var (
	// ErrParse wraps every fatal input-loading failure.
	ErrParse = errors.New("parse product input")
	// ErrContract wraps every assembled page that failed validation.
	ErrContract = errors.New("page contract violation")
)

// Stage names, in execution order.
const (
	StageParse          = "parse"
	StageQuestions      = "generate_questions"
	StageFAQ            = "build_faq"
	StageProductPage    = "build_product_page"
	StageComparisonPage = "build_comparison_page"
	StageWriteOutputs   = "write_outputs"
)

type Options struct {
	ProductPath    string
	ComparisonPath string
	OutputDir      string
}

// Deps are the collaborators a run needs. A nil Questions generator runs
// fallback-only; a nil Answerer uses the rule-based synthesizer.
type Deps struct {
	Questions *questions.Generator
	Answerer  answers.Answerer
	Logger    *zap.Logger
}

// Result summarizes a finished run.
type Result struct {
	RunID          string
	QuestionSource questions.Source
	Files          []string
	ReportPath     string
	Report         *Report
}

type stageCtx struct {
	name     string
	counters map[string]float64
	notes    []string
}

func (c *stageCtx) count(key string, v float64) { c.counters[key] = v }
func (c *stageCtx) note(n string)               { c.notes = append(c.notes, n) }

type stage struct {
	name   string
	reads  []StateKey
	writes []StateKey
	run    func(ctx context.Context, st *State, sc *stageCtx) error
}

// Orchestrator runs the fixed stage sequence once per Run call.
type Orchestrator struct {
	opts   Options
	deps   Deps
	logger *zap.Logger
	stages []stage

	report *Report

	buildProduct    func(product.Record) pages.ProductPage
	buildComparison func(product.Record, product.Comparison) pages.ComparisonPage
}

func New(opts Options, deps Deps) *Orchestrator {
	if deps.Questions == nil {
		deps.Questions = questions.NewGenerator(nil, questions.Options{}, deps.Logger)
	}
	if deps.Answerer == nil {
		deps.Answerer = answers.NewSynthesizer()
	}
	o := &Orchestrator{
		opts:            opts,
		deps:            deps,
		logger:          logging.OrNop(deps.Logger),
		buildProduct:    pages.BuildProductPage,
		buildComparison: pages.BuildComparisonPage,
	}
	o.stages = []stage{
		{name: StageParse, writes: []StateKey{KeyRecord, KeyComparison}, run: o.parseStage},
		{name: StageQuestions, reads: []StateKey{KeyRecord}, writes: []StateKey{KeyQuestions}, run: o.questionsStage},
		{name: StageFAQ, reads: []StateKey{KeyRecord, KeyQuestions}, writes: []StateKey{KeyFAQPage}, run: o.faqStage},
		{name: StageProductPage, reads: []StateKey{KeyRecord}, writes: []StateKey{KeyProductPage}, run: o.productPageStage},
		{name: StageComparisonPage, reads: []StateKey{KeyRecord, KeyComparison}, writes: []StateKey{KeyComparisonPage}, run: o.comparisonPageStage},
		{
			name:   StageWriteOutputs,
			reads:  []StateKey{KeyFAQPage, KeyProductPage, KeyComparisonPage},
			writes: []StateKey{KeyOutputFiles},
			run:    o.writeOutputsStage,
		},
	}
	return o
}

// StageNames lists the stages in execution order.
func (o *Orchestrator) StageNames() []string {
	names := make([]string, len(o.stages))
	for i, s := range o.stages {
		names[i] = s.name
	}
	return names
}

// validatePlan checks that every key a stage reads is written by an earlier
// stage and that no key has two writers.
func validatePlan(stages []stage) error {
	written := make(map[StateKey]string)
	for _, s := range stages {
		for _, k := range s.reads {
			if _, ok := written[k]; !ok {
				return fmt.Errorf("stage %s reads %s before any stage writes it", s.name, k)
			}
		}
		for _, k := range s.writes {
			if owner, ok := written[k]; ok {
				return fmt.Errorf("stage %s writes %s already owned by %s", s.name, k, owner)
			}
			written[k] = s.name
		}
	}
	return nil
}

// Run executes every stage in order. Parse failures wrap ErrParse and
// contract violations wrap ErrContract; agent failures never surface here.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	if err := validatePlan(o.stages); err != nil {
		return nil, err
	}

	o.report = NewReport(o.opts.OutputDir)
	st := NewState()
	o.logger.Info("pipeline started", zap.String("run_id", o.report.RunID))

	for _, s := range o.stages {
		if err := o.runStage(ctx, s, st); err != nil {
			o.saveReport()
			return nil, err
		}
	}

	reportPath := filepath.Join(o.opts.OutputDir, ReportFile)
	if err := o.report.Save(reportPath); err != nil {
		return nil, fmt.Errorf("save pipeline report: %w", err)
	}

	files, _ := getAs[[]string](st, KeyOutputFiles)
	gen, _ := getAs[questions.Result](st, KeyQuestions)
	o.logger.Info("pipeline completed", zap.Strings("files", files), zap.String("report", reportPath))
	return &Result{
		RunID:          o.report.RunID,
		QuestionSource: gen.Source,
		Files:          files,
		ReportPath:     reportPath,
		Report:         o.report,
	}, nil
}

func (o *Orchestrator) runStage(ctx context.Context, s stage, st *State) error {
	for _, k := range s.reads {
		if !st.Has(k) {
			return fmt.Errorf("stage %s: %w: %s", s.name, ErrStateKeyMissing, k)
		}
	}

	sc := &stageCtx{name: s.name, counters: map[string]float64{}}
	h := o.report.beginStage(s.name)
	o.logger.Info("stage started", zap.String("stage", s.name))

	err := s.run(ctx, st, sc)
	if err == nil {
		for _, k := range s.writes {
			if !st.Has(k) {
				err = fmt.Errorf("stage %s finished without writing %s", s.name, k)
				break
			}
		}
	}
	o.report.endStage(h, sc.counters, sc.notes, err)
	if err != nil {
		return err
	}
	o.logger.Info("stage finished", zap.String("stage", s.name))
	return nil
}

func (o *Orchestrator) parseStage(_ context.Context, st *State, sc *stageCtx) error {
	rec, err := product.Load(o.opts.ProductPath)
	if err != nil {
		o.logger.Error("failed to load product record", zap.String("path", o.opts.ProductPath), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	cmp := product.DefaultComparison()
	if strings.TrimSpace(o.opts.ComparisonPath) != "" {
		cmp, err = product.LoadComparison(o.opts.ComparisonPath)
		if err != nil {
			o.logger.Error("failed to load comparison product", zap.String("path", o.opts.ComparisonPath), zap.Error(err))
			return fmt.Errorf("%w: %w", ErrParse, err)
		}
		sc.note("comparison product loaded from " + o.opts.ComparisonPath)
	} else {
		sc.note("using built-in comparison product")
	}

	o.logger.Info("product loaded", zap.String("product", rec.Name), zap.String("comparison", cmp.Name))
	if err := st.Put(KeyRecord, rec); err != nil {
		return err
	}
	return st.Put(KeyComparison, cmp)
}

func (o *Orchestrator) questionsStage(ctx context.Context, st *State, sc *stageCtx) error {
	rec, err := getAs[product.Record](st, KeyRecord)
	if err != nil {
		return err
	}

	res := o.deps.Questions.Generate(ctx, rec)
	sc.count("questions", float64(res.Set.Total()))
	sc.note("source: " + string(res.Source))
	if res.Source == questions.SourceFallback {
		severity := SeverityWarning
		if !res.AgentAttempted {
			severity = SeverityInfo
		}
		o.report.AddSignal(SignalQuestionFallback, sc.name, severity, "deterministic questions used: "+res.FallbackReason, float64(res.Set.Total()))
	}
	o.report.Summary.QuestionSource = string(res.Source)
	return st.Put(KeyQuestions, res)
}

func (o *Orchestrator) faqStage(ctx context.Context, st *State, sc *stageCtx) error {
	rec, err := getAs[product.Record](st, KeyRecord)
	if err != nil {
		return err
	}
	gen, err := getAs[questions.Result](st, KeyQuestions)
	if err != nil {
		return err
	}

	page, stats := pages.NewFAQAssembler(o.deps.Answerer).Build(ctx, rec, gen.Set)
	sc.count("items", float64(page.TotalQuestions))
	sc.count("agent_answers", float64(stats.AgentAnswers))
	sc.count("rule_answers", float64(stats.RuleAnswers))
	if stats.AnswerFallbacks > 0 {
		o.report.AddSignal(SignalAnswerFallback, sc.name, SeverityWarning,
			fmt.Sprintf("%d answers fell back to rule-based text", stats.AnswerFallbacks), float64(stats.AnswerFallbacks))
	}

	if err := o.checkContract(sc.name, pages.KindFAQ, page); err != nil {
		return err
	}
	return st.Put(KeyFAQPage, page)
}

func (o *Orchestrator) productPageStage(_ context.Context, st *State, sc *stageCtx) error {
	rec, err := getAs[product.Record](st, KeyRecord)
	if err != nil {
		return err
	}
	page := o.buildProduct(rec)
	sc.count("key_features", float64(len(page.KeyFeatures)))
	if err := o.checkContract(sc.name, pages.KindProduct, page); err != nil {
		return err
	}
	return st.Put(KeyProductPage, page)
}

func (o *Orchestrator) comparisonPageStage(_ context.Context, st *State, sc *stageCtx) error {
	rec, err := getAs[product.Record](st, KeyRecord)
	if err != nil {
		return err
	}
	cmp, err := getAs[product.Comparison](st, KeyComparison)
	if err != nil {
		return err
	}
	page := o.buildComparison(rec, cmp)
	sc.count("comparison_rows", float64(len(page.ComparisonTable)))
	sc.count("shared_ingredients", float64(len(page.IngredientComparison.Overlap)))
	if err := o.checkContract(sc.name, pages.KindComparison, page); err != nil {
		return err
	}
	return st.Put(KeyComparisonPage, page)
}

func (o *Orchestrator) writeOutputsStage(_ context.Context, st *State, sc *stageCtx) error {
	outputs := []struct {
		name string
		key  StateKey
	}{
		{FAQFile, KeyFAQPage},
		{ProductPageFile, KeyProductPage},
		{ComparisonPageFile, KeyComparisonPage},
	}

	w := outputWriter{dir: o.opts.OutputDir}
	files := make([]string, 0, len(outputs))
	for _, out := range outputs {
		page, err := st.Get(out.key)
		if err != nil {
			return err
		}
		path, err := w.write(out.name, page)
		if err != nil {
			return err
		}
		files = append(files, path)
	}
	sc.count("files", float64(len(files)))
	o.report.Summary.OutputFiles = files
	return st.Put(KeyOutputFiles, files)
}

func (o *Orchestrator) checkContract(stageName string, kind pages.Kind, page any) error {
	err := pages.Validate(kind, page)
	if err == nil {
		return nil
	}
	o.logger.Error("assembled page violates its contract",
		zap.String("stage", stageName),
		zap.String("page", string(kind)),
		zap.Error(err),
	)
	o.report.AddSignal(SignalContractViolation, stageName, SeverityCritical, err.Error(), 0)
	return fmt.Errorf("%w: %w", ErrContract, err)
}

func (o *Orchestrator) saveReport() {
	if strings.TrimSpace(o.opts.OutputDir) == "" {
		return
	}
	path := filepath.Join(o.opts.OutputDir, ReportFile)
	if err := o.report.Save(path); err != nil {
		o.logger.Warn("failed to save pipeline report", zap.String("path", path), zap.Error(err))
	}
}
