package cache

// SignatureKeyOpts are the options that change a signature result.
type SignatureKeyOpts struct {
	Root      int    `json:"root"`
	Height    int    `json:"height"`
	Invariant string `json:"invariant"`
	Canonical bool   `json:"canonical"`
}

// LabellingKeyOpts are the options that change a canonical labelling.
type LabellingKeyOpts struct {
	Root      int    `json:"root"`
	Height    int    `json:"height"`
	Invariant string `json:"invariant"`
}

// ClassesKeyOpts are the options that change a symmetry partition.
type ClassesKeyOpts struct {
	Height    int    `json:"height"`
	Invariant string `json:"invariant"`
}

// Keyer builds cache keys from a graph hash and result options.
type Keyer interface {
	SignatureKey(graphHash string, opts SignatureKeyOpts) string
	LabellingKey(graphHash string, opts LabellingKeyOpts) string
	ClassesKey(graphHash string, opts ClassesKeyOpts) string
}

// DefaultKeyer produces keys of the form "kind:sha256(graphHash, opts)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SignatureKey implements Keyer.
func (DefaultKeyer) SignatureKey(graphHash string, opts SignatureKeyOpts) string {
	return hashKey("signature", graphHash, opts)
}

// LabellingKey implements Keyer.
func (DefaultKeyer) LabellingKey(graphHash string, opts LabellingKeyOpts) string {
	return hashKey("labelling", graphHash, opts)
}

// ClassesKey implements Keyer.
func (DefaultKeyer) ClassesKey(graphHash string, opts ClassesKeyOpts) string {
	return hashKey("classes", graphHash, opts)
}

var _ Keyer = DefaultKeyer{}
