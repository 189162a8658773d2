package symmetry

import (
	"context"
	"runtime"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/graphsig/pkg/signature"
)

// Options configures [Classify].
type Options struct {
	// Height is the signature height; -1 means maximum height.
	Height int
	// Workers bounds concurrent signature computations; <= 0 uses GOMAXPROCS.
	Workers int
	// Signature is passed to every [signature.Create] call.
	Signature signature.Options
}

// DefaultOptions returns maximum-height classification with default
// signature options.
func DefaultOptions() Options {
	return Options{Height: -1, Signature: signature.DefaultOptions()}
}

// Partition is the result of [Classify].
type Partition struct {
	classes    []*Class
	classOf    []int
	signatures []string
}

// Classes returns the classes ordered by signature.
func (p *Partition) Classes() []*Class { return p.classes }

// ClassOf returns the class containing vertex v, or nil.
func (p *Partition) ClassOf(v int) *Class {
	if v < 0 || v >= len(p.classOf) {
		return nil
	}
	return p.classes[p.classOf[v]]
}

// Len returns the number of classes.
func (p *Partition) Len() int { return len(p.classes) }

// Signatures returns the canonical signature of every vertex by index.
func (p *Partition) Signatures() []string { return p.signatures }

// Classify computes the canonical signature of each of the first
// vertexCount vertices of g and groups equal signatures. The first error
// cancels the remaining work.
func Classify(ctx context.Context, g signature.Graph, vertexCount int, opts Options) (*Partition, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	sigs := make([]string, vertexCount)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for v := range vertexCount {
		eg.Go(func() error {
			s, err := signature.Create(g, v, vertexCount, opts.Height, signature.WithOptions(opts.Signature))
			if err != nil {
				return errors.Wrapf(err, "vertex %d", v)
			}
			str, err := s.CanonicalString(ctx)
			if err != nil {
				return errors.Wrapf(err, "vertex %d", v)
			}
			sigs[v] = str
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return group(sigs), nil
}

// FromSignatures groups precomputed per-vertex signatures.
func FromSignatures(sigs []string) *Partition { return group(sigs) }

func group(sigs []string) *Partition {
	m := treemap.NewWithStringComparator()
	for v, s := range sigs {
		c, ok := m.Get(s)
		if !ok {
			c = NewClass(s)
			m.Put(s, c)
		}
		c.(*Class).Add(v)
	}

	p := &Partition{classOf: make([]int, len(sigs)), signatures: sigs}
	it := m.Iterator()
	for it.Next() {
		c := it.Value().(*Class)
		for _, v := range c.Members() {
			p.classOf[v] = len(p.classes)
		}
		p.classes = append(p.classes, c)
	}
	return p
}
