package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/tailored-agentic-units/formkit/drafts"
	"github.com/tailored-agentic-units/formkit/form"
	"github.com/tailored-agentic-units/formkit/metrics"
	"github.com/tailored-agentic-units/formkit/observability"
	"github.com/tailored-agentic-units/formkit/rules"
	"github.com/tailored-agentic-units/formkit/store"
)

var errInvalid = errors.New("form is invalid")

type options struct {
	configFile string
	stateFile  string
	sets       []string
	draftDir   string
	draft      string
	verbose    bool
	logLevel   string
	metrics    bool
}

type assignment struct {
	path  string
	value any
}

func run(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	cfg, err := form.LoadConfig(opts.configFile)
	if err != nil {
		return err
	}

	var draftStore drafts.Store
	if opts.draft != "" {
		if opts.draftDir == "" {
			return errors.New("--draft requires --draft-dir")
		}
		draftStore = drafts.NewFileStore(opts.draftDir)
	}

	initial := store.State{}
	switch {
	case opts.stateFile != "":
		if initial, err = loadState(opts.stateFile); err != nil {
			return err
		}
	case draftStore != nil:
		saved, err := draftStore.Load(ctx, opts.draft)
		switch {
		case err == nil:
			initial = saved
		case !errors.Is(err, drafts.ErrNotFound):
			return err
		}
	}

	assignments, err := parseAssignments(opts.sets)
	if err != nil {
		return err
	}

	var (
		mu       sync.Mutex
		asyncErr error
	)
	formOpts := []form.Option{form.WithErrorHandler(func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if asyncErr == nil {
			asyncErr = err
		}
	})}
	var observers []observability.Observer
	if opts.verbose {
		level := observability.LevelVerbose
		if opts.logLevel != "" {
			if level, err = observability.ParseLevel(opts.logLevel); err != nil {
				return err
			}
		}
		logger := newLogger(stderr)
		defer func() { _ = logger.Sync() }()

		observers = append(observers, observability.NewLevelFilter(level, observability.NewZapObserver(logger)))
	}
	if opts.metrics {
		reg := prometheus.NewRegistry()
		observers = append(observers, metrics.NewObserver(reg))
		defer func() { _ = writeMetrics(stderr, reg) }()
	}

	var enhancers []store.Enhancer
	if len(observers) > 0 {
		observer := observability.NewMultiObserver(observers...)
		formOpts = append(formOpts, form.WithObserver(observer))
		enhancers = append(enhancers, store.WithObserver(observer))
	}

	reducer := form.Reducer
	if cfg.ReducerName != "" {
		reducer = store.Combine(map[string]store.Reducer{cfg.ReducerName: form.Reducer})
		initial = store.State{cfg.ReducerName: initial}
	}
	factory := store.Compose(enhancers...)(store.NewFactory(reducer, initial))

	f, err := form.Enhance(ctx, factory, *cfg, formOpts...)
	if err != nil {
		return fmt.Errorf("failed to create form: %w", err)
	}
	defer f.Unsubscribe()

	if _, err := rules.Register(f, cfg.Fields); err != nil {
		return fmt.Errorf("failed to register rules: %w", err)
	}

	if draftStore != nil {
		drafts.Autosave(f, draftStore, opts.draft)
	}

	for _, a := range assignments {
		f.Dispatch(form.Value(a.path, a.value))
	}

	mu.Lock()
	err = asyncErr
	mu.Unlock()
	if err != nil {
		return err
	}

	var submitted store.State
	f.AddSubmitListener(form.Notify(func(state store.State) {
		submitted = state
	}), false)

	ok, err := f.Submit(ctx)
	if err != nil {
		return err
	}
	if !ok {
		printErrors(stdout, form.Errors(f.FormState()))
		return errInvalid
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(submitted)
}

func loadState(filename string) (store.State, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var state store.State
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &state)
	default:
		err = json.Unmarshal(data, &state)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	if state == nil {
		state = store.State{}
	}
	return state, nil
}

func parseAssignments(sets []string) ([]assignment, error) {
	out := make([]assignment, 0, len(sets))
	for _, raw := range sets {
		path, text, found := strings.Cut(raw, "=")
		if !found || path == "" {
			return nil, fmt.Errorf("invalid --set %q: want path=value", raw)
		}

		var value any
		if err := json.Unmarshal([]byte(text), &value); err != nil {
			value = text
		}
		out = append(out, assignment{path: path, value: value})
	}
	return out, nil
}

func printErrors(w io.Writer, errs map[string]any) {
	paths := make([]string, 0, len(errs))
	for path := range errs {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	for _, path := range paths {
		fmt.Fprintf(w, "%s: %v\n", path, errs[path])
	}
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(w io.Writer) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), zapcore.DebugLevel)
	return zap.New(core)
}
