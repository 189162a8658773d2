package signature

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// Options configures signature construction.
type Options struct {
	// Invariant selects the label that seeds vertex invariants.
	Invariant InvariantType
	// ValidateAdapter checks host connectivity symmetry, neighbour ranges
	// and self loops while building.
	ValidateAdapter bool
	// MaxSteps bounds the canonization search of CanonicalString.
	// Zero means unbounded.
	MaxSteps int
}

// DefaultOptions returns string invariants with adapter validation and an
// unbounded search.
func DefaultOptions() Options {
	return Options{Invariant: StringInvariant, ValidateAdapter: true}
}

// Option modifies Options.
type Option func(*Options)

// WithInvariantType selects the invariant seed.
func WithInvariantType(t InvariantType) Option {
	return func(o *Options) { o.Invariant = t }
}

// WithAdapterValidation enables or disables host adapter checks.
func WithAdapterValidation(on bool) Option {
	return func(o *Options) { o.ValidateAdapter = on }
}

// WithMaxSteps bounds the canonization search.
func WithMaxSteps(n int) Option {
	return func(o *Options) { o.MaxSteps = n }
}

// WithOptions replaces all options at once.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

// VertexSignature is the signature of one root vertex up to a height.
// Topology is fixed by [Create]; canonization never modifies it.
// A VertexSignature is safe for concurrent use.
type VertexSignature struct {
	opts       Options
	root       int
	height     int
	dag        *DAG
	mapping    *VertexMapping
	symbols    []string // per internal vertex
	edgeLabels map[arc]string
	seed       State

	mu        sync.Mutex
	plain     string
	canonical string
	best      State
	steps     int
	done      bool
}

// CreateMaximumHeight builds the signature of root over its whole
// connected component.
func CreateMaximumHeight(g Graph, root, vertexCount int, opts ...Option) (*VertexSignature, error) {
	return Create(g, root, vertexCount, -1, opts...)
}

// Create builds the signature DAG of root up to height layers
// (-1 = unbounded, 0 = the root alone). vertexCount is the number of
// vertices of the host graph.
func Create(g Graph, root, vertexCount, height int, opts ...Option) (*VertexSignature, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Invariant.Validate(); err != nil {
		return nil, err
	}
	if root < 0 || root >= vertexCount {
		return nil, errors.Wrapf(ErrInvalidRoot, "root %d, vertex count %d", root, vertexCount)
	}
	if height < -1 {
		return nil, errors.Wrapf(ErrInvalidHeight, "got %d", height)
	}

	b := newBuilder(g, root, vertexCount, o.ValidateAdapter)
	if err := b.build(height); err != nil {
		return nil, errors.Wrapf(err, "build signature of vertex %d", root)
	}

	n := b.mapping.Len()
	symbols := make([]string, n)
	labels := make([]int, n)
	for v := range n {
		ext := b.mapping.External(v)
		symbols[v] = g.VertexSymbol(ext)
		labels[v] = g.IntLabel(ext)
		if err := checkReserved("vertex symbol", symbols[v]); err != nil {
			return nil, errors.Wrapf(err, "vertex %d", ext)
		}
	}

	seed, err := b.dag.Seed(o.Invariant, symbols, labels)
	if err != nil {
		return nil, err
	}

	return &VertexSignature{
		opts:       o,
		root:       root,
		height:     height,
		dag:        b.dag,
		mapping:    b.mapping,
		symbols:    symbols,
		edgeLabels: b.edgeLabels,
		seed:       seed,
	}, nil
}

// Root returns the external index of the root vertex.
func (s *VertexSignature) Root() int { return s.root }

// Height returns the requested height (-1 = unbounded).
func (s *VertexSignature) Height() int { return s.height }

// DAG returns the underlying DAG. It must not be modified.
func (s *VertexSignature) DAG() *DAG { return s.dag }

// GetVertexCount returns the number of vertices visited while building.
func (s *VertexSignature) GetVertexCount() int { return s.mapping.Len() }

// GetOriginalVertexIndex returns the external index of internal vertex i.
func (s *VertexSignature) GetOriginalVertexIndex(i int) int { return s.mapping.External(i) }

// Symbol returns the symbol of internal vertex i.
func (s *VertexSignature) Symbol(i int) string { return s.symbols[i] }

// EdgeLabel returns the label of the edge between internal vertices u and v.
func (s *VertexSignature) EdgeLabel(u, v int) string { return s.edgeLabels[newArc(u, v)] }

// ToString renders the refined but uncolored signature. Vertices printed
// more than once carry no color here, so the string is not canonical for
// graphs with rings.
func (s *VertexSignature) ToString() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.plain == "" {
		s.plain = s.render(s.dag.RefineInvariants(s.seed))
	}
	return s.plain
}

// ToCanonicalString returns the lexicographically greatest signature over
// all symmetry-breaking colorings. The search is unbounded.
func (s *VertexSignature) ToCanonicalString() string {
	str, _ := s.canonize(context.Background(), 0)
	return str
}

// CanonicalString is ToCanonicalString bounded by ctx and Options.MaxSteps.
// It returns ErrSearchBudgetExceeded or the context error when the search
// is cut short.
func (s *VertexSignature) CanonicalString(ctx context.Context) (string, error) {
	return s.canonize(ctx, s.opts.MaxSteps)
}

// SearchSteps returns the number of search nodes visited by the last
// completed canonization.
func (s *VertexSignature) SearchSteps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps
}

// GetCanonicalLabelling returns, for each external index below
// totalVertexCount, the rank of that vertex in canonical print order, or -1
// for vertices the signature never visited.
func (s *VertexSignature) GetCanonicalLabelling(totalVertexCount int) []int {
	s.ToCanonicalString()

	s.mu.Lock()
	best := s.best
	s.mu.Unlock()

	lv := &labelVisitor{d: s.dag, labels: make([]int, s.dag.vertexCount)}
	for i := range lv.labels {
		lv.labels[i] = -1
	}
	s.dag.walk(best, lv)

	out := make([]int, totalVertexCount)
	for i := range out {
		out[i] = -1
	}
	for v, l := range lv.labels {
		if ext := s.mapping.External(v); ext < totalVertexCount {
			out[ext] = l
		}
	}
	return out
}

func (s *VertexSignature) canonize(ctx context.Context, maxSteps int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return s.canonical, nil
	}

	x := &search{sig: s, ctx: ctx, maxSteps: maxSteps}
	if err := x.run(s.seed, 1); err != nil {
		return x.best, err
	}
	s.canonical, s.best, s.steps, s.done = x.best, x.bestState, x.steps, true
	return s.canonical, nil
}

// search is one run of the individualize-and-refine canonization.
type search struct {
	sig       *VertexSignature
	ctx       context.Context
	maxSteps  int
	steps     int
	best      string
	bestState State
}

func (x *search) run(s State, color int) error {
	x.steps++
	if err := x.ctx.Err(); err != nil {
		return err
	}
	if x.maxSteps > 0 && x.steps > x.maxSteps {
		return errors.Wrapf(ErrSearchBudgetExceeded, "after %d steps", x.maxSteps)
	}

	d := x.sig.dag
	s = d.RefineInvariants(s)
	counts, _ := d.Occurrences(s)

	orbit := d.FindOrbit(s, counts)
	if len(orbit) < 2 {
		for _, v := range d.repeatedUncolored(s, counts) {
			s.colors[v] = color
			color++
		}
		if str := x.sig.render(s); str > x.best {
			x.best, x.bestState = str, s
		}
		return nil
	}

	for _, v := range orbit {
		if err := x.run(d.Color(s, v, color), color+1); err != nil {
			return err
		}
	}
	return nil
}
