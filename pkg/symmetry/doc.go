// Package symmetry groups vertices into equivalence classes by canonical
// signature.
//
// Two vertices in the same [Class] are indistinguishable up to the chosen
// signature height; at maximum height the classes are the orbits of the
// graph's automorphism group.
//
//	p, err := symmetry.Classify(ctx, g, g.VertexCount(), symmetry.DefaultOptions())
//	for _, c := range p.Classes() {
//	    fmt.Println(c.Signature, c.Members())
//	}
//
// [Classify] computes one signature per vertex on a bounded pool of
// goroutines. Signatures share no state, so the result does not depend on
// scheduling.
package symmetry
