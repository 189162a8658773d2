package signature

import (
	"strconv"
	"strings"
)

// Structural characters of the signature grammar:
//
//	node     := edgeLabel? '[' symbol (',' color)? ']' children?
//	children := '(' node+ ')'
const (
	startNode   = '['
	endNode     = ']'
	startBranch = '('
	endBranch   = ')'
	colorSep    = ','
)

// renderVisitor writes the signature string during a DAG walk.
type renderVisitor struct {
	sig *VertexSignature
	s   State
	buf strings.Builder
}

func (r *renderVisitor) enter(h, parent int) {
	n := r.sig.dag.nodes[h]
	if parent >= 0 {
		pv := r.sig.dag.nodes[parent].Vertex
		r.buf.WriteString(r.sig.edgeLabels[newArc(pv, n.Vertex)])
	}
	r.buf.WriteByte(startNode)
	r.buf.WriteString(r.sig.symbols[n.Vertex])
	if c := r.s.colors[n.Vertex]; c >= 0 {
		r.buf.WriteByte(colorSep)
		r.buf.WriteString(strconv.Itoa(c))
	}
	r.buf.WriteByte(endNode)
}

func (r *renderVisitor) openBranch()  { r.buf.WriteByte(startBranch) }
func (r *renderVisitor) closeBranch() { r.buf.WriteByte(endBranch) }
func (r *renderVisitor) leave(int)    {}

// render writes the signature of s.
func (sig *VertexSignature) render(s State) string {
	r := &renderVisitor{sig: sig, s: s}
	sig.dag.walk(s, r)
	return r.buf.String()
}

// labelVisitor numbers vertices in order of first appearance.
type labelVisitor struct {
	d      *DAG
	labels []int
	next   int
}

func (l *labelVisitor) enter(h, _ int) {
	v := l.d.nodes[h].Vertex
	if l.labels[v] < 0 {
		l.labels[v] = l.next
		l.next++
	}
}

func (l *labelVisitor) openBranch()  {}
func (l *labelVisitor) closeBranch() {}
func (l *labelVisitor) leave(int)    {}
