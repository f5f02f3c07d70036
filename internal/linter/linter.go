// Package linter runs registered rules over stylesheets: it maps rule
// findings to line and column, honors disable comments, applies fixes and
// lints many documents in parallel.
package linter

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"runtime"
	"slices"
	"sort"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/csslint/internal/rule"
	"github.com/yacobolo/csslint/internal/stylesheet"
)

// Warning is a rule finding located in a document
type Warning struct {
	Rule     string
	Kind     rule.Kind
	Severity string
	Message  string
	// Line and Column are 1-based; both are zero for warnings about the
	// run rather than a place in the document
	Line      int
	Column    int
	EndLine   int
	EndColumn int
	Fixable   bool

	offset    int
	endOffset int
}

// Result is the outcome of linting one document
type Result struct {
	Name   string
	Source string
	// Output is the fixed source in fix mode and Source otherwise
	Output   string
	Warnings []Warning
	// Fixed counts the warnings resolved by applied fixes
	Fixed       int
	ParseErrors []error
}

// Changed reports whether fixes modified the document
func (r *Result) Changed() bool { return r.Output != r.Source }

// Option configures a Linter
type Option func(*Linter)

// WithLogger sets the logger; nil keeps the no-op logger
func WithLogger(log *zap.Logger) Option {
	return func(l *Linter) {
		if log != nil {
			l.log = log
		}
	}
}

type enabledRule struct {
	rule   *rule.Rule
	config RuleConfig
}

// Linter runs one fixed rule configuration. It is safe for concurrent use.
type Linter struct {
	rules []enabledRule
	fix   bool
	jobs  int
	log   *zap.Logger
	parse func(string) *stylesheet.Root
}

// hostRule names warnings raised by the linter itself rather than a rule
const hostRule = "csslint"

// New resolves the configured rules against registry. Unknown rule names
// are reported together.
func New(registry *rule.Registry, cfg Config, opts ...Option) (*Linter, error) {
	l := &Linter{
		fix:   cfg.Fix,
		jobs:  cfg.Jobs,
		log:   zap.NewNop(),
		parse: stylesheet.Parse,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.Named("linter")

	var err error
	for name := range cfg.Rules {
		if _, ok := registry.Get(name); !ok {
			err = multierr.Append(err, fmt.Errorf("unknown rule %q", name))
		}
	}
	if err != nil {
		return nil, err
	}

	// Registry order keeps fix mode deterministic
	for _, rl := range registry.Rules() {
		if rc, ok := cfg.Rules[rl.Name]; ok {
			l.rules = append(l.rules, enabledRule{rule: rl, config: rc})
		}
	}
	if l.jobs <= 0 {
		l.jobs = runtime.GOMAXPROCS(0)
	}
	return l, nil
}

// RuleNames returns the enabled rules in the order they run
func (l *Linter) RuleNames() []string {
	names := make([]string, len(l.rules))
	for i, er := range l.rules {
		names[i] = er.rule.Name
	}
	return names
}

// LintSource lints one document held in memory
func (l *Linter) LintSource(ctx context.Context, name, src string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := l.log.With(zap.String("document", name))
	log.Debug("linting", zap.Int("rules", len(l.rules)), zap.Bool("fix", l.fix))

	res := &Result{Name: name, Source: src, Output: src}
	if l.fix {
		out, fixed, err := l.applyFixes(ctx, log, src)
		if err != nil {
			return nil, err
		}
		res.Output, res.Fixed = out, fixed
	}

	var root *stylesheet.Root
	if fault := guard(log, "parse", func() { root = l.parse(res.Output) }); fault != nil {
		res.Warnings = []Warning{*fault}
		return res, nil
	}
	for _, perr := range root.Errors {
		log.Warn("parse problem", zap.Error(perr))
	}
	res.ParseErrors = root.Errors

	raw, err := l.collect(ctx, log, root)
	if err != nil {
		return nil, err
	}
	if fault := guard(log, "locate", func() { res.Warnings = l.locate(root, raw) }); fault != nil {
		res.Warnings = []Warning{*fault}
	}
	log.Debug("linted", zap.Int("warnings", len(res.Warnings)), zap.Int("fixed", res.Fixed))
	return res, nil
}

// LintFiles lints documents in parallel. Results keep the order of paths;
// unreadable files are skipped and their errors returned combined.
func (l *Linter) LintFiles(ctx context.Context, paths []string) ([]*Result, error) {
	results := make([]*Result, len(paths))

	var (
		mu      sync.Mutex
		readErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				mu.Lock()
				readErr = multierr.Append(readErr, fmt.Errorf("failed to read %s: %w", path, err))
				mu.Unlock()
				return nil
			}
			res, err := l.LintSource(gctx, path, string(data))
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := results[:0]
	for _, res := range results {
		if res != nil {
			out = append(out, res)
		}
	}
	return out, readErr
}

// collect runs every rule concurrently over a read-only tree
func (l *Linter) collect(ctx context.Context, log *zap.Logger, root *stylesheet.Root) ([]tagged, error) {
	perRule := make([][]rule.Warning, len(l.rules))

	g, gctx := errgroup.WithContext(ctx)
	for i, er := range l.rules {
		i, er := i, er
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var mu sync.Mutex
			sink := rule.SinkFunc(func(w rule.Warning) {
				mu.Lock()
				perRule[i] = append(perRule[i], w)
				mu.Unlock()
			})
			l.run(log, er, root, sink)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []tagged
	for i, ws := range perRule {
		for _, w := range ws {
			all = append(all, tagged{Warning: w, config: l.rules[i].config})
		}
	}
	return all, nil
}

// applyFixes runs the rules one by one, reparsing between rules so every
// rule sees the edits of the previous ones
func (l *Linter) applyFixes(ctx context.Context, log *zap.Logger, src string) (string, int, error) {
	fixed := 0
	for _, er := range l.rules {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		if !er.rule.Meta.Fixable || er.config.FixDisabled() {
			continue
		}

		var root *stylesheet.Root
		if fault := guard(log, "parse", func() { root = l.parse(src) }); fault != nil {
			// The report pass parses the same text and surfaces the fault
			return src, fixed, nil
		}
		var warnings []rule.Warning
		l.run(log, er, root, rule.SinkFunc(func(w rule.Warning) {
			warnings = append(warnings, w)
		}))

		d := newDisables(root)
		sort.SliceStable(warnings, func(i, j int) bool {
			return absolute(warnings[i]) < absolute(warnings[j])
		})

		// A fix shared by several warnings edits all of their nodes, so one
		// suppressed warning holds the whole fix back
		held := make(map[*rule.Fix]bool)
		for _, w := range warnings {
			if w.Fix == nil || w.Kind != rule.KindViolation {
				continue
			}
			offset := absolute(w)
			line, _ := root.Position(offset)
			if d.suppressed(w.Rule, offset, line) {
				held[w.Fix] = true
			}
		}

		applied := make(map[*rule.Fix]bool)
		for _, w := range warnings {
			if w.Fix == nil || w.Kind != rule.KindViolation || held[w.Fix] {
				continue
			}
			if w.Fix.Apply() {
				applied[w.Fix] = true
			}
			if applied[w.Fix] {
				fixed++
			}
		}
		if len(applied) > 0 {
			log.Debug("applied fixes", zap.String("rule", er.rule.Name), zap.Int("fixes", len(applied)))
			src = root.String()
		}
	}
	return src, fixed, nil
}

// run invokes one rule, turning a panic into an internal warning
func (l *Linter) run(log *zap.Logger, er enabledRule, root *stylesheet.Root, sink rule.Sink) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("rule failed", zap.String("rule", er.rule.Name), zap.Any("panic", r))
			sink.Warn(rule.Warning{
				Rule:    er.rule.Name,
				Kind:    rule.KindInternal,
				Message: fmt.Sprintf("rule %s failed: %v", er.rule.Name, r),
			})
		}
	}()
	log.Debug("running rule", zap.String("rule", er.rule.Name))
	er.rule.Factory(er.config.Primary, er.config.Secondary)(root, sink)
}

// guard runs one stage of linting a document and turns a panic into an
// internal warning
func guard(log *zap.Logger, stage string, fn func()) (fault *Warning) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("lint stage failed", zap.String("stage", stage), zap.Any("panic", r))
			fault = &Warning{
				Rule:      hostRule,
				Kind:      rule.KindInternal,
				Severity:  SeverityError,
				Message:   fmt.Sprintf("%s failed: %v", stage, r),
				offset:    -1,
				endOffset: -1,
			}
		}
	}()
	fn()
	return nil
}

type tagged struct {
	rule.Warning
	config RuleConfig
}

// absolute returns the document offset of a warning, or -1 without a node
func absolute(w rule.Warning) int {
	if w.Node == nil {
		return -1
	}
	return w.Node.Span().Start + w.Index
}

// locate maps warnings to positions, drops suppressed and duplicate ones
// and sorts the rest by position
func (l *Linter) locate(root *stylesheet.Root, raw []tagged) []Warning {
	d := newDisables(root)
	seen := make(map[Warning]bool)

	var out []Warning
	for _, t := range raw {
		w := Warning{
			Rule:      t.Rule,
			Kind:      t.Kind,
			Severity:  t.config.Severity(),
			Message:   t.Message,
			Fixable:   t.Fix != nil,
			offset:    -1,
			endOffset: -1,
		}
		if t.Kind == rule.KindViolation {
			if msg := t.config.Message(); msg != "" {
				w.Message = msg
			}
		}
		if t.Node != nil {
			start := t.Node.Span().Start
			w.offset = start + t.Index
			w.endOffset = start + max(t.EndIndex, t.Index)
			w.Line, w.Column = root.Position(w.offset)
			w.EndLine, w.EndColumn = root.Position(w.endOffset)
		}

		if t.Kind == rule.KindViolation && w.Line > 0 && d.suppressed(w.Rule, w.offset, w.Line) {
			continue
		}
		if seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}

	slices.SortStableFunc(out, func(a, b Warning) int {
		return cmp.Compare(a.offset, b.offset)
	})
	return out
}
