package toolkit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"
)

// Dispatcher routes invocation requests through a catalog. It validates
// arguments against the tool's schema before the handler runs and converts
// every handler outcome, including panics, into a Result so the hosting
// process never crashes on a bad tool.
type Dispatcher struct {
	catalog *Catalog
	timeout time.Duration
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTimeout abandons in-flight handler calls after d and reports them as
// timeout failures. Zero (the default) imposes no dispatcher timeout.
func WithTimeout(d time.Duration) Option {
	return func(dp *Dispatcher) {
		dp.timeout = d
	}
}

// NewDispatcher creates a dispatcher over the given catalog.
func NewDispatcher(catalog *Catalog, opts ...Option) *Dispatcher {
	d := &Dispatcher{catalog: catalog}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Invoke executes a single request and returns its result. Safe for
// concurrent use once the catalog is frozen.
func (d *Dispatcher) Invoke(ctx context.Context, req Request) Result {
	startTime := time.Now()

	def, err := d.catalog.Lookup(req.Tool)
	if err != nil {
		log.Warn().Str("tool", req.Tool).Msg("Unknown tool requested")
		return Result{
			Success: false,
			Kind:    KindToolNotFound,
			Error:   err.Error(),
		}
	}

	args := req.Arguments
	if args == nil {
		args = map[string]interface{}{}
	}
	args = applyDefaults(def, args)

	if err := d.validate(req.Tool, args); err != nil {
		log.Warn().Str("tool", req.Tool).Err(err).Msg("Argument validation failed")
		return Result{
			Success: false,
			Kind:    KindInvalidArguments,
			Error:   err.Error(),
		}
	}

	callCtx := ctx
	var cancel context.CancelFunc
	if d.timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	log.Debug().Str("tool", req.Tool).Msg("Dispatching tool")

	resultChan := make(chan interface{}, 1)
	errChan := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				errChan <- fmt.Errorf("handler panic: %v", r)
			}
		}()
		output, err := def.Handler(callCtx, args)
		if err != nil {
			errChan <- err
		} else {
			resultChan <- output
		}
	}()

	select {
	case output := <-resultChan:
		duration := time.Since(startTime)
		log.Debug().Str("tool", req.Tool).Dur("duration", duration).Msg("Tool completed")
		return Result{
			Success:  true,
			Output:   output,
			Metadata: map[string]interface{}{"duration_ms": duration.Milliseconds()},
		}

	case err := <-errChan:
		duration := time.Since(startTime)
		log.Error().Str("tool", req.Tool).Dur("duration", duration).Err(err).Msg("Tool failed")
		return d.failureResult(err, duration)

	case <-callCtx.Done():
		duration := time.Since(startTime)
		kind := KindCancelled
		msg := fmt.Sprintf("tool %s cancelled", req.Tool)
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			kind = KindTimeout
			msg = fmt.Sprintf("tool %s timed out after %v", req.Tool, d.timeout)
		}
		log.Error().Str("tool", req.Tool).Dur("duration", duration).Msg(msg)
		return Result{
			Success:  false,
			Kind:     kind,
			Error:    msg,
			Metadata: map[string]interface{}{"duration_ms": duration.Milliseconds()},
		}
	}
}

func (d *Dispatcher) validate(name string, args map[string]interface{}) error {
	schema := d.catalog.schema(name)
	if schema == nil {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return err
	}
	if !result.Valid() {
		details := []string{}
		for _, verr := range result.Errors() {
			details = append(details, verr.String())
		}
		return fmt.Errorf("validation errors: %v", details)
	}
	return nil
}

func (d *Dispatcher) failureResult(err error, duration time.Duration) Result {
	metadata := map[string]interface{}{"duration_ms": duration.Milliseconds()}

	var subtyped SubtypedError
	if errors.As(err, &subtyped) {
		metadata["subtype"] = subtyped.FailureSubtype()
	}

	return Result{
		Success:  false,
		Kind:     KindUpstreamError,
		Error:    err.Error(),
		Metadata: metadata,
	}
}

// applyDefaults fills absent optional parameters with their declared
// defaults so handlers always see a complete argument bag.
func applyDefaults(def *ToolDefinition, args map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(args))
	for k, v := range args {
		out[k] = v
	}
	for _, param := range def.Parameters {
		if param.Default == nil {
			continue
		}
		if _, present := out[param.Name]; !present {
			out[param.Name] = param.Default
		}
	}
	return out
}
