package domain

// PlainCapture is the capture name used when a suite declares a single capture function.
const PlainCapture = "plain"

// CaptureKind tags which shape a Capture holds.
type CaptureKind int

const (
	CaptureNone CaptureKind = iota
	CaptureSingle
	CaptureNamed
)

func (k CaptureKind) String() string {
	switch k {
	case CaptureSingle:
		return "single"
	case CaptureNamed:
		return "named"
	default:
		return "none"
	}
}

// NamedCapture binds a capture function to its name.
type NamedCapture struct {
	Name string
	Fn   ActionFunc
}

// Capture is either a single unnamed capture function, an ordered set of named
// ones, or nothing (the framework default capture applies).
type Capture struct {
	kind   CaptureKind
	single ActionFunc
	named  []NamedCapture
}

// SingleCapture registers fn under PlainCapture. A nil fn yields an unset Capture.
func SingleCapture(fn ActionFunc) Capture {
	if fn == nil {
		return Capture{}
	}
	return Capture{kind: CaptureSingle, single: fn}
}

// NamedCaptures keeps the given captures in declared order.
func NamedCaptures(captures ...NamedCapture) Capture {
	if len(captures) == 0 {
		return Capture{}
	}
	named := make([]NamedCapture, len(captures))
	copy(named, captures)
	return Capture{kind: CaptureNamed, named: named}
}

// Kind reports the shape of c.
func (c Capture) Kind() CaptureKind {
	return c.kind
}

// Entries resolves c into the (name, fn) pairs to register, in order.
// Entries with a nil function are left out.
func (c Capture) Entries() []NamedCapture {
	switch c.kind {
	case CaptureSingle:
		return []NamedCapture{{Name: PlainCapture, Fn: c.single}}
	case CaptureNamed:
		out := make([]NamedCapture, 0, len(c.named))
		for _, nc := range c.named {
			if nc.Fn == nil {
				continue
			}
			out = append(out, nc)
		}
		return out
	default:
		return nil
	}
}

func (c Capture) clone() Capture {
	if c.named != nil {
		named := make([]NamedCapture, len(c.named))
		copy(named, c.named)
		c.named = named
	}
	return c
}
