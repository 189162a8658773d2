package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants or tool
// versions can share one backend without colliding.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v2:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer defaults
// to DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SignatureKey implements Keyer.
func (k *ScopedKeyer) SignatureKey(graphHash string, opts SignatureKeyOpts) string {
	return k.prefix + k.inner.SignatureKey(graphHash, opts)
}

// LabellingKey implements Keyer.
func (k *ScopedKeyer) LabellingKey(graphHash string, opts LabellingKeyOpts) string {
	return k.prefix + k.inner.LabellingKey(graphHash, opts)
}

// ClassesKey implements Keyer.
func (k *ScopedKeyer) ClassesKey(graphHash string, opts ClassesKeyOpts) string {
	return k.prefix + k.inner.ClassesKey(graphHash, opts)
}
