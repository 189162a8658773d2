package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphsig/pkg/cache"
	errs "github.com/matzehuels/graphsig/pkg/errors"
	"github.com/matzehuels/graphsig/pkg/graph"
	"github.com/matzehuels/graphsig/pkg/observability"
	"github.com/matzehuels/graphsig/pkg/signature"
	"github.com/matzehuels/graphsig/pkg/symmetry"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-result cache lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// GraphHash returns the content hash of g used in cache keys.
func GraphHash(g *graph.Graph) (string, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("serialize graph for cache key: %w", err)
	}
	return cache.Hash(data), nil
}

// =============================================================================
// Signature
// =============================================================================

// SignatureWithCacheInfo computes the signature of root with caching and
// returns cache hit info. opts.Raw selects the uncolored string.
func (r *Runner) SignatureWithCacheInfo(ctx context.Context, g *graph.Graph, root int, opts Options) (*SignatureResult, bool, error) {
	if err := r.prepare(g, &opts); err != nil {
		return nil, false, err
	}
	if err := errs.ValidateRoot(root, g.VertexCount()); err != nil {
		return nil, false, err
	}

	hash, err := GraphHash(g)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.SignatureKey(hash, opts.SignatureKeyOpts(root))

	var res SignatureResult
	if r.load(ctx, OpSignature, key, opts.Refresh, &res) {
		return &res, true, nil
	}

	sig, str, err := r.compute(ctx, OpSignature, g, root, opts)
	if err != nil {
		return nil, false, err
	}
	res = SignatureResult{
		Root:        root,
		Height:      sig.Height(),
		Signature:   str,
		Canonical:   !opts.Raw,
		VertexCount: sig.GetVertexCount(),
		SearchSteps: sig.SearchSteps(),
	}

	r.store(ctx, OpSignature, key, &res, r.ttl(cache.TTLSignature))
	r.Logger.Debug("computed signature",
		"root", root,
		"height", opts.Height,
		"vertices", res.VertexCount,
		"steps", res.SearchSteps)
	return &res, false, nil
}

// Signature is a convenience wrapper that calls SignatureWithCacheInfo and discards the cache hit info.
func (r *Runner) Signature(ctx context.Context, g *graph.Graph, root int, opts Options) (*SignatureResult, error) {
	res, _, err := r.SignatureWithCacheInfo(ctx, g, root, opts)
	return res, err
}

// =============================================================================
// Labelling
// =============================================================================

// LabellingWithCacheInfo computes the canonical labelling induced by root
// with caching and returns cache hit info.
func (r *Runner) LabellingWithCacheInfo(ctx context.Context, g *graph.Graph, root int, opts Options) (*LabellingResult, bool, error) {
	opts.Raw = false
	if err := r.prepare(g, &opts); err != nil {
		return nil, false, err
	}
	if err := errs.ValidateRoot(root, g.VertexCount()); err != nil {
		return nil, false, err
	}

	hash, err := GraphHash(g)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.LabellingKey(hash, opts.LabellingKeyOpts(root))

	var res LabellingResult
	if r.load(ctx, OpLabelling, key, opts.Refresh, &res) {
		return &res, true, nil
	}

	sig, str, err := r.compute(ctx, OpLabelling, g, root, opts)
	if err != nil {
		return nil, false, err
	}
	res = LabellingResult{
		Root:      root,
		Height:    sig.Height(),
		Signature: str,
		Labelling: sig.GetCanonicalLabelling(g.VertexCount()),
	}

	r.store(ctx, OpLabelling, key, &res, r.ttl(cache.TTLLabelling))
	return &res, false, nil
}

// Labelling is a convenience wrapper that calls LabellingWithCacheInfo and discards the cache hit info.
func (r *Runner) Labelling(ctx context.Context, g *graph.Graph, root int, opts Options) (*LabellingResult, error) {
	res, _, err := r.LabellingWithCacheInfo(ctx, g, root, opts)
	return res, err
}

// =============================================================================
// Classify
// =============================================================================

// ClassifyWithCacheInfo partitions the vertices of g into symmetry classes
// with caching and returns cache hit info.
func (r *Runner) ClassifyWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (*ClassesResult, bool, error) {
	if err := r.prepare(g, &opts); err != nil {
		return nil, false, err
	}

	hash, err := GraphHash(g)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.ClassesKey(hash, opts.ClassesKeyOpts())

	var res ClassesResult
	if r.load(ctx, OpClassify, key, opts.Refresh, &res) {
		return &res, true, nil
	}

	n := g.VertexCount()
	start := time.Now()
	observability.Signature().OnSignatureStart(ctx, OpClassify, n)
	p, err := symmetry.Classify(ctx, g, n, symmetry.Options{
		Height:    opts.Height,
		Workers:   opts.Workers,
		Signature: opts.SignatureOptions(),
	})
	ev := observability.SignatureEvent{
		Op:          OpClassify,
		Height:      opts.Height,
		VertexCount: n,
		Duration:    time.Since(start),
		Err:         err,
	}
	if p != nil {
		ev.Classes = p.Len()
	}
	observability.Signature().OnSignatureComplete(ctx, ev)
	if err != nil {
		return nil, false, errs.FromSignatureError(err)
	}

	res = *newClassesResult(opts.Height, p)
	r.store(ctx, OpClassify, key, &res, r.ttl(cache.TTLClasses))
	r.Logger.Debug("classified vertices",
		"vertices", n,
		"classes", p.Len(),
		"workers", opts.Workers,
		"duration", ev.Duration)
	return &res, false, nil
}

// Classify is a convenience wrapper that calls ClassifyWithCacheInfo and discards the cache hit info.
func (r *Runner) Classify(ctx context.Context, g *graph.Graph, opts Options) (*ClassesResult, error) {
	res, _, err := r.ClassifyWithCacheInfo(ctx, g, opts)
	return res, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// prepare validates opts and applies the runner's logger.
func (r *Runner) prepare(g *graph.Graph, opts *Options) error {
	if g == nil || g.VertexCount() == 0 {
		return errs.New(errs.ErrCodeInvalidGraph, "graph has no vertices")
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	return opts.Validate()
}

// compute builds and renders one signature, reporting to the signature
// hooks.
func (r *Runner) compute(ctx context.Context, op string, g *graph.Graph, root int, opts Options) (*signature.VertexSignature, string, error) {
	start := time.Now()
	observability.Signature().OnSignatureStart(ctx, op, g.VertexCount())

	var str string
	sig, err := signature.Create(g, root, g.VertexCount(), opts.Height, signature.WithOptions(opts.SignatureOptions()))
	if err == nil {
		if opts.Raw {
			str = sig.ToString()
		} else {
			str, err = sig.CanonicalString(ctx)
		}
	}

	ev := observability.SignatureEvent{
		Op:       op,
		Height:   opts.Height,
		Duration: time.Since(start),
		Err:      err,
	}
	if sig != nil {
		ev.VertexCount = sig.GetVertexCount()
		ev.SearchSteps = sig.SearchSteps()
	}
	observability.Signature().OnSignatureComplete(ctx, ev)

	if err != nil {
		return nil, "", errs.FromSignatureError(err)
	}
	return sig, str, nil
}

// load decodes a cached result into v. Decode failures count as misses.
func (r *Runner) load(ctx context.Context, keyType, key string, refresh bool, v any) bool {
	if refresh {
		return false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "error", err)
	}
	if err == nil && hit && json.Unmarshal(data, v) == nil {
		observability.Cache().OnCacheHit(ctx, keyType)
		return true
	}
	observability.Cache().OnCacheMiss(ctx, keyType)
	return false
}

// store caches v. Write failures are logged and otherwise ignored.
func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

func (r *Runner) store(ctx context.Context, keyType, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
