// Package scripted loads script definitions by evaluating a Risor descriptor
// script with go-polyscript.
//
// The descriptor receives the load request through the script's ctx map
// (template_class, classpath, supplementary_classpath, resolver) and returns a
// list of maps, one per definition:
//
//	[{"name": "...", "class": "...", "file_pattern": "...", "legacy_location": "..."}]
//
// Entries whose class does not match the requested template are ignored, so a
// single descriptor can serve every template class.
package scripted

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gradlekit/scriptdefs/internal/definition"
	"github.com/gradlekit/scriptdefs/internal/loader"
	"github.com/robbyt/go-polyscript/engines/risor"
	"github.com/robbyt/go-polyscript/platform"
	"github.com/robbyt/go-polyscript/platform/constants"
	"github.com/robbyt/go-polyscript/platform/data"
	polyloader "github.com/robbyt/go-polyscript/platform/script/loader"
)

// DefaultEvalTimeout bounds one descriptor evaluation.
const DefaultEvalTimeout = 1 * time.Minute

var _ loader.TemplateLoader = (*Loader)(nil)

// Loader evaluates a compiled Risor descriptor script per load request.
type Loader struct {
	evaluator platform.Evaluator
	timeout   time.Duration
	logger    *slog.Logger
}

type Option func(*Loader)

// WithTimeout overrides the per-evaluation timeout.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// NewFromFile compiles the descriptor script at the given path.
func NewFromFile(handler slog.Handler, path string, opts ...Option) (*Loader, error) {
	scriptLoader, err := polyloader.NewFromDisk(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create script loader: %w", err)
	}
	return newLoader(handler, scriptLoader, opts...)
}

// NewFromString compiles an inline descriptor script.
func NewFromString(handler slog.Handler, code string, opts ...Option) (*Loader, error) {
	scriptLoader, err := polyloader.NewFromString(code)
	if err != nil {
		return nil, fmt.Errorf("failed to create script loader: %w", err)
	}
	return newLoader(handler, scriptLoader, opts...)
}

func newLoader(handler slog.Handler, scriptLoader polyloader.Loader, opts ...Option) (*Loader, error) {
	evaluator, err := risor.FromRisorLoader(handler, scriptLoader)
	if err != nil {
		return nil, fmt.Errorf("descriptor script compilation failed: %w", err)
	}

	l := &Loader{
		evaluator: evaluator,
		timeout:   DefaultEvalTimeout,
		logger:    slog.New(handler).WithGroup("scripted.Loader"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Load implements the loader.TemplateLoader interface.
func (l *Loader) Load(ctx context.Context, req loader.Request) ([]loader.Loaded, error) {
	evalCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	contextProvider := data.NewContextProvider(constants.EvalData)
	enrichedCtx, err := contextProvider.AddDataToContext(evalCtx, requestData(req))
	if err != nil {
		return nil, fmt.Errorf("failed to add request data: %w", err)
	}

	start := time.Now()
	result, err := l.evaluator.Eval(enrichedCtx)
	if err != nil {
		return nil, fmt.Errorf("descriptor evaluation failed: %w", err)
	}
	l.logger.Debug("Descriptor evaluated", "template", req.TemplateClass, "duration", time.Since(start))

	return mapResult(result.Interface(), req)
}

// requestData flattens the load request into the script's ctx map.
func requestData(req loader.Request) map[string]any {
	env := make(map[string]any, len(req.Resolver.Environment))
	for k, v := range req.Resolver.Environment {
		env[k] = v
	}

	return map[string]any{
		"template_class":          req.TemplateClass,
		"classpath":               toAnySlice(req.Classpath),
		"supplementary_classpath": toAnySlice(req.SupplementaryClasspath),
		"resolver": map[string]any{
			"gradle_home":  req.Resolver.GradleHome,
			"java_home":    req.Resolver.JavaHome,
			"project_root": req.Resolver.ProjectRoot,
			"jvm_options":  toAnySlice(req.Resolver.JVMOptions),
			"environment":  env,
		},
	}
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

// mapResult converts the script's return value into loaded definitions.
func mapResult(value any, req loader.Request) ([]loader.Loaded, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("descriptor must return a list, got %T", value)
	}

	var loaded []loader.Loaded
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("descriptor entry %d must be a map, got %T", i, item)
		}

		class := stringField(entry, "class")
		if class == "" {
			class = req.TemplateClass
		}
		if class != req.TemplateClass {
			continue
		}

		loaded = append(loaded, loader.Loaded{
			Definition: definition.ScriptDefinition{
				Name:          stringField(entry, "name"),
				TemplateClass: class,
				Classpath:     req.Classpath,
				FilePattern:   stringField(entry, "file_pattern"),
			},
			Legacy: definition.LegacyLocation(stringField(entry, "legacy_location")),
		})
	}

	return loaded, nil
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
