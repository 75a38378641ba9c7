package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Engine runs reconcile passes for one adapter.
type Engine struct {
	spec   Spec
	logger *zap.Logger
	sf     singleflight.Group
}

// NewEngine creates an engine for the given spec.
func NewEngine(spec Spec, logger *zap.Logger) *Engine {
	if spec.Concurrency < 1 {
		spec.Concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{spec: spec, logger: logger.With(zap.String("adapter", spec.Adapter.Name()))}
}

// Reconcile plans and, unless opts forbid it, applies a pass over scope.
// Concurrent calls for the same scope and options share a single pass. The
// shared pass is detached from the caller that started it; each caller stops
// waiting when its own ctx ends, and the pass itself stays bounded by the
// probe timeout.
func (e *Engine) Reconcile(ctx context.Context, scope Scope, opts ReconcileOptions) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s|%t|%t", scope, opts.DryRun, opts.Confirmed)
	ch := e.sf.DoChan(key, func() (interface{}, error) {
		passCtx := context.WithoutCancel(ctx)
		plan, err := e.Plan(passCtx, scope)
		if err != nil {
			return nil, err
		}
		return e.Apply(passCtx, plan, opts), nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			e.logger.Debug("Joined in-flight reconcile", zap.String("scope", string(scope)))
		}
		return res.Val.(*Report), nil
	}
}

// Plan probes every item in scope and returns the cleanup actions it would take.
// It does NOT execute actions; use Apply for that.
func (e *Engine) Plan(ctx context.Context, scope Scope) (*ReconcilePlan, error) {
	items, err := e.spec.Adapter.LoadIndex(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}

	outcomes := make([]Presence, len(items))
	reasons := make([]string, len(items))

	g := new(errgroup.Group)
	g.SetLimit(e.spec.Concurrency)
	for i := range items {
		if ctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			outcomes[i], reasons[i] = e.probe(ctx, items[i])
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plan := &ReconcilePlan{Scope: scope, Actions: []Action{}, Errors: []ProbeError{}}
	plan.Summary.Checked = len(items)
	for i, item := range items {
		switch outcomes[i] {
		case PresencePresent:
			plan.Summary.Present++
		case PresenceMissing:
			plan.Summary.Orphaned++
			plan.Actions = append(plan.Actions, Action{
				Type:   ActionClean,
				Key:    item.Key,
				Reason: "backing object missing",
				Item:   item,
			})
		default:
			plan.Summary.Unknown++
			plan.Errors = append(plan.Errors, ProbeError{Key: item.Key, Locator: item.Locator, Reason: reasons[i]})
		}
	}

	e.logger.Info("Reconcile plan built",
		zap.String("scope", string(scope)),
		zap.Int("checked", plan.Summary.Checked),
		zap.Int("orphaned", plan.Summary.Orphaned),
		zap.Int("unknown", plan.Summary.Unknown),
	)
	return plan, nil
}

func (e *Engine) probe(ctx context.Context, item Item) (Presence, string) {
	pctx := ctx
	if e.spec.ProbeTimeout > 0 {
		var cancel context.CancelFunc
		pctx, cancel = context.WithTimeout(ctx, e.spec.ProbeTimeout)
		defer cancel()
	}

	presence, err := e.spec.Adapter.Probe(pctx, item)
	if errors.Is(pctx.Err(), context.DeadlineExceeded) {
		return PresenceUnknown, "probe timed out"
	}
	if err != nil {
		return PresenceUnknown, err.Error()
	}
	if presence == PresenceUnknown {
		return PresenceUnknown, "probe inconclusive"
	}
	return presence, ""
}

// Apply executes the actions in a reconcile plan.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
// Individual failures are recorded in the report, never returned.
func (e *Engine) Apply(ctx context.Context, plan *ReconcilePlan, opts ReconcileOptions) *Report {
	report := &Report{
		Checked:  plan.Summary.Checked,
		Orphaned: plan.Summary.Orphaned,
		Errors:   append([]ProbeError{}, plan.Errors...),
	}

	// Safety check: do not execute if not confirmed or dry-run
	if !opts.Confirmed || opts.DryRun {
		report.DryRun = true
		return report
	}

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(e.spec.Concurrency)
	for _, action := range plan.Actions {
		if ctx.Err() != nil {
			break
		}
		action := action
		g.Go(func() error {
			cleaned, err := e.spec.Adapter.Clean(ctx, action.Item)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				e.logger.Warn("Clean failed", zap.String("key", action.Key), zap.Error(err))
				report.Errors = append(report.Errors, ProbeError{Key: action.Key, Locator: action.Item.Locator, Reason: err.Error()})
			case cleaned:
				report.Cleaned++
			default:
				e.logger.Debug("Clean skipped, state changed since probe", zap.String("key", action.Key))
			}
			return nil
		})
	}
	_ = g.Wait()

	e.logger.Info("Reconcile applied",
		zap.String("scope", string(plan.Scope)),
		zap.Int("cleaned", report.Cleaned),
		zap.Int("errors", len(report.Errors)),
	)
	return report
}
