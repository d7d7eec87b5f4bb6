package cssselector

import (
	"errors"
	"strings"

	"github.com/andybalholm/cascadia"

	"github.com/aalvaropc/shotsuite/internal/domain"
	"github.com/aalvaropc/shotsuite/internal/ports"
)

var errEmpty = errors.New("empty selector")

// Checker validates CSS selector syntax.
type Checker struct{}

func NewChecker() *Checker { return &Checker{} }

var _ ports.SelectorChecker = (*Checker)(nil)

// CheckSelector parses sel as a selector group ("a, b > c").
func (c *Checker) CheckSelector(sel string) error {
	if strings.TrimSpace(sel) == "" {
		return &domain.OpError{
			Op:   "cssselector.check",
			Kind: domain.KindInvalidConfig,
			Err:  errEmpty,
		}
	}
	if _, err := cascadia.ParseGroup(sel); err != nil {
		return &domain.OpError{
			Op:   "cssselector.check",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}
	return nil
}
