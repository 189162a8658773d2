// Package pipeline runs signature computations for the CLI and the HTTP API.
//
// This package centralizes option defaults, validation and result caching
// so every entry point computes signatures, labellings and symmetry classes
// the same way.
//
// # Stages
//
// The pipeline offers four operations over a host [graph.Graph]:
//
//  1. Signature: the (canonical) signature of one root vertex
//  2. Labelling: the canonical labelling induced by a root vertex
//  3. Classify: the symmetry classes of every vertex
//  4. Render: a Graphviz drawing of a signature DAG, tree or graph
//
// plus [ParseSignature], which reads a signature string back into a tree
// and optionally a graph.
//
// # Usage
//
// Create a Runner and run a stage:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Height = 3
//	res, err := runner.Signature(ctx, g, 0, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Signature)
//
// Every stage has a WithCacheInfo variant that also reports whether the
// result came from the cache.
package pipeline

import (
	"io"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphsig/pkg/cache"
	errs "github.com/matzehuels/graphsig/pkg/errors"
	"github.com/matzehuels/graphsig/pkg/signature"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultHeight selects the maximum height (the whole component).
	DefaultHeight = -1

	// DefaultInvariantType seeds invariants from vertex symbols.
	DefaultInvariantType = "string"

	// DefaultMaxSteps leaves the canonization search unbounded.
	DefaultMaxSteps = 0

	// DefaultFormat is the default render output format.
	DefaultFormat = FormatSVG
)

// Format constants for render outputs.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatDOT = "dot"
)

// Operation names reported to observability hooks and used as cache key
// types.
const (
	OpSignature = "signature"
	OpLabelling = "labelling"
	OpClassify  = "classify"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests; decode into
// the value returned by [DefaultOptions] so omitted fields keep defaults.
type Options struct {
	// Signature options
	Height        int    `json:"height"`
	InvariantType string `json:"invariant,omitempty"`
	MaxSteps      int    `json:"max_steps,omitempty"`
	Raw           bool   `json:"raw,omitempty"` // uncolored ToString output instead of canonical
	Refresh       bool   `json:"refresh,omitempty"`

	// Classify options
	Workers int `json:"workers,omitempty"`

	// Render options
	Format   string `json:"format,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// DefaultOptions returns options with every default applied except
// Workers, which SetDefaults resolves at run time.
func DefaultOptions() Options {
	return Options{
		Height:        DefaultHeight,
		InvariantType: DefaultInvariantType,
		MaxSteps:      DefaultMaxSteps,
		Format:        DefaultFormat,
	}
}

// SetDefaults fills zero-valued fields. Height is left alone because zero
// is a valid height.
func (o *Options) SetDefaults() {
	if o.InvariantType == "" {
		o.InvariantType = DefaultInvariantType
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks every field.
func (o *Options) Validate() error {
	o.SetDefaults()
	if _, err := signature.ParseInvariantType(o.InvariantType); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInvariantType, err, "invalid invariant type %q (must be one of: string, int)", o.InvariantType)
	}
	if err := errs.ValidateHeight(o.Height); err != nil {
		return err
	}
	if o.MaxSteps < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "max_steps %d must be >= 0", o.MaxSteps)
	}
	return errs.ValidateOutputFormat(o.Format)
}

// SignatureOptions converts o into options for [signature.Create]. It
// assumes o has been validated.
func (o *Options) SignatureOptions() signature.Options {
	it, _ := signature.ParseInvariantType(o.InvariantType)
	return signature.Options{
		Invariant:       it,
		ValidateAdapter: true,
		MaxSteps:        o.MaxSteps,
	}
}

// SignatureKeyOpts returns cache key options for a signature of root.
func (o *Options) SignatureKeyOpts(root int) cache.SignatureKeyOpts {
	return cache.SignatureKeyOpts{
		Root:      root,
		Height:    o.Height,
		Invariant: o.InvariantType,
		Canonical: !o.Raw,
	}
}

// LabellingKeyOpts returns cache key options for a labelling from root.
func (o *Options) LabellingKeyOpts(root int) cache.LabellingKeyOpts {
	return cache.LabellingKeyOpts{
		Root:      root,
		Height:    o.Height,
		Invariant: o.InvariantType,
	}
}

// ClassesKeyOpts returns cache key options for a symmetry partition.
func (o *Options) ClassesKeyOpts() cache.ClassesKeyOpts {
	return cache.ClassesKeyOpts{
		Height:    o.Height,
		Invariant: o.InvariantType,
	}
}
