package fieldslist

// options collects the per-call configuration shared by all entry
// points. Every field is optional; the zero value with directive
// evaluation enabled is the default.
type options struct {
	path            string
	transform       map[string]string
	directives      bool
	skip            []string
	keepParentField bool
}

// Option configures a single extraction call.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{directives: true}
	for _, f := range opts {
		f(o)
	}
	return o
}

// WithPath navigates into the built tree along a dot-separated path
// before producing output. An invalid path yields an empty result.
func WithPath(path string) Option {
	return func(o *options) { o.path = path }
}

// WithTransform installs a rename table. List view matches exact field
// names, projection view matches exact leaf dot paths; the map view
// ignores it.
func WithTransform(transform map[string]string) Option {
	return func(o *options) { o.transform = transform }
}

// WithDirectives toggles @skip/@include evaluation. The default is
// enabled; pass false to treat every node as included.
func WithDirectives(enabled bool) Option {
	return func(o *options) { o.directives = enabled }
}

// WithSkip appends exclusion patterns. Patterns are dot paths resolved
// against the unnavigated tree root; a segment may carry the *
// wildcard, and a trailing * (or a bare terminal segment) prunes the
// whole remaining subtree.
func WithSkip(patterns ...string) Option {
	return func(o *options) { o.skip = append(o.skip, patterns...) }
}

// WithKeepParentField makes the projection view emit branch paths in
// addition to leaf paths.
func WithKeepParentField() Option {
	return func(o *options) { o.keepParentField = true }
}
