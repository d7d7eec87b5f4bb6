package usecase

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aalvaropc/shotsuite/internal/domain"
	"github.com/aalvaropc/shotsuite/internal/ports"
)

// CreateSuite translates SuiteOptions into registrations against a SuiteRegistry.
type CreateSuite struct {
	registry ports.SuiteRegistry
	log      *slog.Logger
}

type CreateOption func(*CreateSuite)

func WithLogger(l *slog.Logger) CreateOption {
	return func(uc *CreateSuite) {
		if l != nil {
			uc.log = l
		}
	}
}

func NewCreateSuite(reg ports.SuiteRegistry, opts ...CreateOption) *CreateSuite {
	uc := &CreateSuite{
		registry: reg,
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute registers the suite described by opts and, recursively, its children.
//
// The caller's options are never mutated. A suite without a name fails before
// it is registered; a failing child stops its remaining siblings, but
// whatever the parent already registered stays registered.
func (uc *CreateSuite) Execute(opts domain.SuiteOptions) error {
	return uc.create(opts, nil)
}

func (uc *CreateSuite) create(opts domain.SuiteOptions, parents []string) error {
	o := opts.Clone()

	if o.SuiteName == "" {
		err := domain.ErrMissingSuiteName
		if len(parents) > 0 {
			err = fmt.Errorf("%w (child of %q)", err, strings.Join(parents, " / "))
		}
		return &domain.OpError{
			Op:   "suite.create",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	path := append(parents[:len(parents):len(parents)], o.SuiteName)

	return uc.registry.Suite(o.SuiteName, func(s ports.SuiteHandle) error {
		structured := o.URL.IsStructured()
		uc.configure(s, &o)

		uc.log.Debug("suite.register",
			"suite", strings.Join(path, " / "),
			"url", o.URL.String(),
			"structured_url", structured,
			"children", len(o.ChildSuites),
		)

		for _, child := range o.ChildSuites {
			if err := uc.create(inherit(o, child), path); err != nil {
				return err
			}
		}
		return nil
	})
}

// configure applies o to s. Structured urls in o are replaced by their
// serialized form so children inherit the string.
func (uc *CreateSuite) configure(s ports.SuiteHandle, o *domain.SuiteOptions) {
	o.URL = o.URL.Normalize()

	u := domain.DefaultURL
	if o.URL.IsSet() {
		u = o.URL.String()
	}
	s.SetURL(u)

	if o.Selector.IsSet() {
		s.SetCaptureElements(o.Selector.Clone()...)
	} else {
		s.SetCaptureElements(domain.DefaultSelector)
	}

	if o.Before != nil {
		s.Before(o.Before)
	}
	if o.After != nil {
		s.After(o.After)
	}

	for _, c := range o.Capture.Entries() {
		s.Capture(c.Name, c.Fn)
	}

	if o.Ignore.IsSet() {
		s.IgnoreElements(o.Ignore.Clone()...)
	}

	for _, r := range o.Skip.Rules() {
		s.Skip(r.Browser, r.Reason)
	}

	if o.Browsers.IsSet() {
		s.Browsers(o.Browsers)
	}
}

// inherit returns child with url and selector taken from parent wherever the
// child leaves them unset. Nothing else propagates.
func inherit(parent, child domain.SuiteOptions) domain.SuiteOptions {
	merged := child.Clone()
	if !merged.URL.IsSet() {
		merged.URL = parent.URL
	}
	if !merged.Selector.IsSet() {
		merged.Selector = parent.Selector.Clone()
	}
	return merged
}
