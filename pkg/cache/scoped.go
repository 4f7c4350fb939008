package cache

// ScopedKeyer prefixes every key of an inner [Keyer]. The API uses it to
// keep deployments that share a Redis or Mongo backend apart.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (nil means [DefaultKeyer]) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

func (k *ScopedKeyer) TreeKey(subject string, repos []string, opts TreeKeyOpts) string {
	return k.prefix + k.inner.TreeKey(subject, repos, opts)
}

func (k *ScopedKeyer) VersionsKey(group, artifact string) string {
	return k.prefix + k.inner.VersionsKey(group, artifact)
}

func (k *ScopedKeyer) InfoKey(group, artifact, version string) string {
	return k.prefix + k.inner.InfoKey(group, artifact, version)
}

func (k *ScopedKeyer) SearchKey(query string, page, size int) string {
	return k.prefix + k.inner.SearchKey(query, page, size)
}
