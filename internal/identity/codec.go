package identity

import (
	"path/filepath"
	"strings"
)

// DefaultScheme is the scheme token used for synthetic identifiers.
const DefaultScheme = "nb"

// FallbackResolver resolves a display name to a canonical location when the
// registry has no entry for it. The notebook registry implements this by
// scanning open notebooks for a matching facade filename.
type FallbackResolver interface {
	ResolveDisplayName(name string) (location string, ok bool)
}

// FallbackFunc adapts a function to the FallbackResolver interface.
type FallbackFunc func(name string) (string, bool)

// ResolveDisplayName implements FallbackResolver.
func (f FallbackFunc) ResolveDisplayName(name string) (string, bool) {
	return f(name)
}

// Codec builds synthetic identifiers from canonical locations and parses
// them back. All methods are safe for concurrent use; parsing never panics.
type Codec struct {
	scheme   string
	registry *Registry
	fallback FallbackResolver
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithScheme overrides the scheme token. The token must not contain "://".
func WithScheme(scheme string) CodecOption {
	return func(c *Codec) {
		if scheme != "" && !strings.Contains(scheme, "://") {
			c.scheme = scheme
		}
	}
}

// NewCodec creates a codec backed by the given registry. The fallback
// resolver may be nil, in which case registry misses degrade immediately.
func NewCodec(registry *Registry, fallback FallbackResolver, opts ...CodecOption) *Codec {
	c := &Codec{
		scheme:   DefaultScheme,
		registry: registry,
		fallback: fallback,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Scheme returns the scheme token.
func (c *Codec) Scheme() string {
	return c.scheme
}

// Registry returns the backing registry.
func (c *Codec) Registry() *Registry {
	return c.registry
}

// Mint returns the synthetic identifier for a canonical location, recording
// the display-name mapping in the registry. Repeated calls for the same
// location return the same identifier. A later mint for a different location
// sharing the same display name overwrites the earlier mapping.
func (c *Codec) Mint(location string) string {
	location = normalize(location)
	name := filepath.Base(location)
	c.registry.Put(name, location)
	return c.prefix() + name
}

// Parse resolves a synthetic identifier back to a canonical location.
//
// It returns ("", false) if the candidate is not under the synthetic scheme.
// On a registry miss it consults the fallback resolver and caches a hit back
// into the registry. If neither resolves, it returns the bare display name
// with ok=false; callers must treat that as "no known facade" and take no
// further action.
func (c *Codec) Parse(candidate string) (location string, ok bool) {
	if !c.IsSynthetic(candidate) {
		return "", false
	}

	name := strings.TrimPrefix(candidate, c.prefix())

	if loc, ok := c.registry.Get(name); ok {
		return loc, true
	}

	if c.fallback != nil {
		if loc, ok := c.fallback.ResolveDisplayName(name); ok {
			loc = normalize(loc)
			c.registry.Put(name, loc)
			return loc, true
		}
	}

	return name, false
}

// IsSynthetic reports whether the candidate starts with the synthetic scheme
// prefix. Identifiers that merely contain the scheme token elsewhere do not
// match.
func (c *Codec) IsSynthetic(candidate string) bool {
	return strings.HasPrefix(candidate, c.prefix())
}

func (c *Codec) prefix() string {
	return c.scheme + "://"
}

// normalize converts a location to cleaned absolute form. Locations that
// cannot be made absolute (no working directory) are cleaned in place.
func normalize(location string) string {
	if abs, err := filepath.Abs(location); err == nil {
		return abs
	}
	return filepath.Clean(location)
}
