// Package signature computes canonical vertex signatures of labeled,
// colored multigraphs.
//
// # Overview
//
// A vertex signature is a string describing the neighbourhood of one root
// vertex up to a height. Two vertices related by a graph automorphism get
// the same canonical signature no matter how the host numbers its vertices,
// which makes signatures usable for symmetry detection, canonical labelling
// and deduplication.
//
// # Construction
//
// [Create] walks the host graph breadth first through the [Graph] adapter
// and builds a layered [DAG]. A vertex reached from several parents in one
// layer becomes a single shared [Node] that remembers every incoming edge
// color. Each edge is crossed at most once in each direction, and an edge
// used in an earlier layer is never crossed again:
//
//	sig, err := signature.Create(g, root, g.VertexCount(), 3)
//	sig, err := signature.CreateMaximumHeight(g, root, g.VertexCount())
//
// # Canonization
//
// [VertexSignature.ToCanonicalString] runs an individualize-and-refine
// search. Invariants are refined bottom up and top down; vertices printed
// more than once that are still tied form an orbit, and each orbit member
// is tried with the next free color. At every leaf the remaining repeated
// vertices are colored in invariant order and the string is rendered; the
// greatest string wins. Branches work on copies of a [State], so the DAG is
// never mutated.
//
// # String Format
//
//	node     := edgeLabel? '[' symbol (',' color)? ']' children?
//	children := '(' node+ ')'
//
// Symbols and edge labels must not contain ( ) [ ] or , and [Create]
// rejects them with [ErrReservedCharacter]. [Parse] reads a string back
// into a [ColoredTree]; malformed input yields a [*ParseError] carrying the
// byte offset and expected token.
//
// # Concurrency
//
// A [VertexSignature] caches its canonical string behind a mutex and is safe
// for concurrent use. Distinct signatures share nothing and may be computed
// in parallel.
package signature
