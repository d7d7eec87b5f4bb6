package domain

import "net/url"

const (
	// DefaultURL is opened when a suite does not declare a url.
	DefaultURL = "/"
	// DefaultSelector captures the whole page.
	DefaultSelector = "*"
)

// URL is the page a suite opens: either a raw string or structured parts that
// are serialized before use. The zero value means "not set".
type URL struct {
	raw   string
	parts *url.URL
}

// RawURL returns a URL holding s verbatim. An empty string is treated as unset.
func RawURL(s string) URL {
	return URL{raw: s}
}

// URLFromParts returns a URL built from structured parts. The parts are copied.
func URLFromParts(u url.URL) URL {
	if u.User != nil {
		user := *u.User
		u.User = &user
	}
	return URL{parts: &u}
}

// IsSet reports whether a url was declared.
func (u URL) IsSet() bool {
	return u.raw != "" || u.parts != nil
}

// IsStructured reports whether the url still holds unserialized parts.
func (u URL) IsStructured() bool {
	return u.parts != nil
}

// String serializes the url. Structured parts use net/url formatting.
func (u URL) String() string {
	if u.parts != nil {
		return u.parts.String()
	}
	return u.raw
}

// Normalize returns the raw-string form of u.
func (u URL) Normalize() URL {
	if u.parts == nil {
		return u
	}
	return RawURL(u.parts.String())
}

// Selectors is an ordered list of CSS selectors. An empty list means "not set".
type Selectors []string

// Clone returns a copy that shares no backing array with s.
func (s Selectors) Clone() Selectors {
	if s == nil {
		return nil
	}
	out := make(Selectors, len(s))
	copy(out, s)
	return out
}

// IsSet reports whether at least one selector was declared.
func (s Selectors) IsSet() bool {
	return len(s) > 0
}

// SuiteOptions is the declarative description of one suite and its children.
type SuiteOptions struct {
	SuiteName string

	// URL to open. Defaults to DefaultURL.
	URL URL

	// Selector lists the DOM nodes to capture. Defaults to DefaultSelector.
	Selector Selectors

	// Ignore lists DOM nodes excluded from comparison (optional).
	Ignore Selectors

	Capture Capture

	// Before runs after the url is opened and before capture; After runs after capture.
	Before ActionFunc
	After  ActionFunc

	Browsers BrowserMatcher
	Skip     Skip

	ChildSuites []SuiteOptions
}

// Clone returns a deep copy of the option tree. Functions are shared.
func (o SuiteOptions) Clone() SuiteOptions {
	out := o
	out.Selector = o.Selector.Clone()
	out.Ignore = o.Ignore.Clone()
	out.Capture = o.Capture.clone()
	out.Browsers = o.Browsers.clone()
	out.Skip = o.Skip.clone()

	if o.ChildSuites != nil {
		out.ChildSuites = make([]SuiteOptions, len(o.ChildSuites))
		for i, c := range o.ChildSuites {
			out.ChildSuites[i] = c.Clone()
		}
	}
	return out
}

// SuiteRef is a lightweight reference to a suite file on disk.
type SuiteRef struct {
	Name string
	Path string
}
