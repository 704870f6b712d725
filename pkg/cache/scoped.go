package cache

// ScopedKeyer wraps a Keyer with a prefix so separate deployments can
// share one backend without colliding. The HTTP service scopes its keys
// this way when several tools point at the same Redis instance.
//
// Example usage:
//
//	// Service-specific namespace
//	srvKeyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "serve:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ConvertKey generates a prefixed key for a conversion result.
func (k *ScopedKeyer) ConvertKey(input []byte, opts ConvertKeyOpts) string {
	return k.prefix + k.inner.ConvertKey(input, opts)
}

// PreviewKey generates a prefixed key for a rendered preview.
func (k *ScopedKeyer) PreviewKey(layoutHash string, opts PreviewKeyOpts) string {
	return k.prefix + k.inner.PreviewKey(layoutHash, opts)
}
