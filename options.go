package xmltree

// Option configures a Parse call. Parse folds the supplied options left to
// right into a config, the standard "functional options over a private
// struct" shape, sized for a handful of independent knobs rather than a
// streaming decoder's full buffering/limits surface.
type Option func(*config)

type config struct {
	ignoreUndefinedEntities bool
	preserveCDATA           bool
	preserveComments        bool
	preserveDocumentType    bool
	resolveUndefinedEntity  func(name string) (string, bool)
}

func defaultConfig() config {
	return config{preserveComments: true}
}

// IgnoreUndefinedEntities controls whether an unknown "&name;" reference is
// preserved verbatim (true) instead of raising UndefinedEntity (the
// default, false).
func IgnoreUndefinedEntities(value bool) Option {
	return func(c *config) { c.ignoreUndefinedEntities = value }
}

// PreserveCDATA controls whether CDATA sections produce a distinct CDATA
// node instead of being coalesced into ordinary Text (default false).
func PreserveCDATA(value bool) Option {
	return func(c *config) { c.preserveCDATA = value }
}

// PreserveComments controls whether Comment nodes are emitted into the tree
// (default true).
func PreserveComments(value bool) Option {
	return func(c *config) { c.preserveComments = value }
}

// PreserveDocumentType is reserved: the doctype is always discarded in the
// current design (no DTD semantics are implemented), but the option is
// accepted for forward compatibility with a future release that records the
// doctype name without processing its internal subset.
func PreserveDocumentType(value bool) Option {
	return func(c *config) { c.preserveDocumentType = value }
}

// ResolveUndefinedEntity registers a hook consulted before IgnoreUndefinedEntities
// or the UndefinedEntity error: returning (replacement, true) expands the
// reference to replacement; returning ("", false) falls through to the
// default policy.
func ResolveUndefinedEntity(fn func(name string) (string, bool)) Option {
	return func(c *config) { c.resolveUndefinedEntity = fn }
}

func applyOptions(opts []Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}
