package yamlsuite

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/aalvaropc/shotsuite/internal/domain"
	"gopkg.in/yaml.v3"
)

type decoder struct {
	path  string
	log   *slog.Logger
	notes []domain.LintIssue
}

func (d *decoder) drop(field string, n *yaml.Node, reason string) {
	d.log.Debug("yamlsuite.drop", "path", d.path, "field", field, "line", n.Line, "reason", reason)
	d.notes = append(d.notes, domain.LintIssue{
		Path:    d.path,
		Field:   field,
		Message: fmt.Sprintf("line %d: %s; ignored", n.Line, reason),
	})
}

func (d *decoder) suite(n *yaml.Node, prefix string) domain.SuiteOptions {
	o, _ := d.suiteFields(n, prefix)
	return o
}

// suiteFields decodes a suite mapping and reports which keys it set. Merge
// keys (<<) supply the keys the mapping does not declare itself; with a
// sequence of merged mappings the earlier one wins.
func (d *decoder) suiteFields(n *yaml.Node, prefix string) (domain.SuiteOptions, map[string]bool) {
	var o domain.SuiteOptions
	set := map[string]bool{}
	var merges []*yaml.Node

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], resolve(n.Content[i+1])
		field := prefix + key.Value

		if key.ShortTag() == "!!merge" {
			merges = append(merges, val)
			continue
		}
		if isNull(val) {
			continue
		}

		set[key.Value] = true
		switch key.Value {
		case "suiteName":
			if s, ok := scalar(val); ok {
				o.SuiteName = s
			} else {
				d.drop(field, val, "suiteName must be a string")
			}
		case "url":
			o.URL = d.url(field, val)
		case "selector":
			o.Selector = d.selectors(field, val)
		case "ignore":
			o.Ignore = d.selectors(field, val)
		case "before":
			o.Before = d.hook(field, val)
		case "after":
			o.After = d.hook(field, val)
		case "capture":
			o.Capture = d.capture(field, val)
		case "browsers":
			o.Browsers = d.browsers(field, val)
		case "skip":
			o.Skip = d.skip(field, val)
		case "childSuites":
			o.ChildSuites = d.children(field, val)
		default:
			delete(set, key.Value)
			d.drop(field, key, "unknown key")
		}
	}

	for _, m := range merges {
		var bases []*yaml.Node
		switch m.Kind {
		case yaml.MappingNode:
			bases = []*yaml.Node{m}
		case yaml.SequenceNode:
			for _, item := range m.Content {
				bases = append(bases, resolve(item))
			}
		default:
			d.drop(prefix+"<<", m, "merge value must be a mapping or a list of mappings")
			continue
		}

		for _, b := range bases {
			if b.Kind != yaml.MappingNode {
				d.drop(prefix+"<<", b, "merge value must be a mapping")
				continue
			}
			// The merged mapping reports its own drops where it is defined.
			seen := len(d.notes)
			base, baseSet := d.suiteFields(b, prefix)
			d.notes = d.notes[:seen]
			mergeFields(&o, base, baseSet, set)
		}
	}

	return o, set
}

// mergeFields copies from base every key it set that dst has not set yet.
func mergeFields(dst *domain.SuiteOptions, base domain.SuiteOptions, baseSet, set map[string]bool) {
	for key := range baseSet {
		if set[key] {
			continue
		}
		set[key] = true
		switch key {
		case "suiteName":
			dst.SuiteName = base.SuiteName
		case "url":
			dst.URL = base.URL
		case "selector":
			dst.Selector = base.Selector.Clone()
		case "ignore":
			dst.Ignore = base.Ignore.Clone()
		case "before":
			dst.Before = base.Before
		case "after":
			dst.After = base.After
		case "capture":
			dst.Capture = base.Capture
		case "browsers":
			dst.Browsers = base.Browsers
		case "skip":
			dst.Skip = base.Skip
		case "childSuites":
			dst.ChildSuites = base.ChildSuites
		}
	}
}

func (d *decoder) children(field string, n *yaml.Node) []domain.SuiteOptions {
	if n.Kind != yaml.SequenceNode {
		d.drop(field, n, "childSuites must be a list")
		return nil
	}

	out := make([]domain.SuiteOptions, 0, len(n.Content))
	for i, item := range n.Content {
		item = resolve(item)
		itemField := fmt.Sprintf("%s[%d]", field, i)
		if item.Kind != yaml.MappingNode {
			d.drop(itemField, item, "child suite must be a mapping")
			continue
		}
		out = append(out, d.suite(item, itemField+"."))
	}
	return out
}

type yamlURL struct {
	Scheme   string    `yaml:"scheme"`
	Protocol string    `yaml:"protocol"`
	Auth     string    `yaml:"auth"`
	Host     string    `yaml:"host"`
	Hostname string    `yaml:"hostname"`
	Port     string    `yaml:"port"`
	Pathname string    `yaml:"pathname"`
	Path     string    `yaml:"path"`
	Search   string    `yaml:"search"`
	Query    yaml.Node `yaml:"query"`
	Hash     string    `yaml:"hash"`
	Fragment string    `yaml:"fragment"`
}

func (d *decoder) url(field string, n *yaml.Node) domain.URL {
	switch n.Kind {
	case yaml.ScalarNode:
		return domain.RawURL(n.Value)
	case yaml.MappingNode:
		var y yamlURL
		if err := n.Decode(&y); err != nil {
			d.drop(field, n, err.Error())
			return domain.URL{}
		}
		return domain.URLFromParts(d.urlParts(field, y))
	default:
		d.drop(field, n, "url must be a string or a mapping of url parts")
		return domain.URL{}
	}
}

func (d *decoder) urlParts(field string, y yamlURL) url.URL {
	u := url.URL{
		Scheme:   strings.TrimSuffix(firstNonEmpty(y.Scheme, y.Protocol), ":"),
		Host:     y.Host,
		Path:     firstNonEmpty(y.Pathname, y.Path),
		Fragment: strings.TrimPrefix(firstNonEmpty(y.Fragment, y.Hash), "#"),
	}

	if u.Host == "" && y.Hostname != "" {
		u.Host = y.Hostname
		if y.Port != "" {
			u.Host = net.JoinHostPort(y.Hostname, y.Port)
		}
	}

	if y.Auth != "" {
		if user, pass, ok := strings.Cut(y.Auth, ":"); ok {
			u.User = url.UserPassword(user, pass)
		} else {
			u.User = url.User(y.Auth)
		}
	}

	switch {
	case y.Search != "":
		u.RawQuery = strings.TrimPrefix(y.Search, "?")
	case y.Query.Kind != 0:
		u.RawQuery = d.query(field+".query", resolve(&y.Query))
	}

	return u
}

// query encodes a query mapping keeping document order.
func (d *decoder) query(field string, n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return strings.TrimPrefix(n.Value, "?")
	case yaml.MappingNode:
	default:
		d.drop(field, n, "query must be a string or a mapping")
		return ""
	}

	var parts []string
	add := func(k, v string) {
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(v))
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i].Value, resolve(n.Content[i+1])
		switch v.Kind {
		case yaml.ScalarNode:
			if isNull(v) {
				add(k, "")
			} else {
				add(k, v.Value)
			}
		case yaml.SequenceNode:
			for _, item := range v.Content {
				if s, ok := scalar(resolve(item)); ok {
					add(k, s)
				}
			}
		default:
			d.drop(field+"."+k, v, "query values must be strings or lists")
		}
	}
	return strings.Join(parts, "&")
}

func (d *decoder) selectors(field string, n *yaml.Node) domain.Selectors {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Value == "" {
			return nil
		}
		return domain.Selectors{n.Value}
	case yaml.SequenceNode:
		var out domain.Selectors
		for i, item := range n.Content {
			item = resolve(item)
			s, ok := scalar(item)
			if !ok {
				d.drop(fmt.Sprintf("%s[%d]", field, i), item, "selector must be a string")
				continue
			}
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		d.drop(field, n, "selector must be a string or a list of strings")
		return nil
	}
}

func (d *decoder) hook(field string, n *yaml.Node) domain.ActionFunc {
	if n.Kind != yaml.SequenceNode {
		d.drop(field, n, "hook must be a list of actions")
		return nil
	}
	return domain.Replay(d.steps(field, n))
}

// capture maps a list of actions to a single capture and a mapping of
// name → actions to named captures in document order.
func (d *decoder) capture(field string, n *yaml.Node) domain.Capture {
	switch n.Kind {
	case yaml.SequenceNode:
		return domain.SingleCapture(domain.Replay(d.steps(field, n)))
	case yaml.MappingNode:
		var named []domain.NamedCapture
		for i := 0; i+1 < len(n.Content); i += 2 {
			name, val := n.Content[i].Value, resolve(n.Content[i+1])
			entryField := field + "." + name
			switch {
			case isNull(val):
				named = append(named, domain.NamedCapture{Name: name, Fn: domain.Replay(nil)})
			case val.Kind == yaml.SequenceNode:
				named = append(named, domain.NamedCapture{Name: name, Fn: domain.Replay(d.steps(entryField, val))})
			default:
				d.drop(entryField, val, "capture must be a list of actions")
			}
		}
		return domain.NamedCaptures(named...)
	default:
		d.drop(field, n, "capture must be a list of actions or a mapping of named action lists")
		return domain.Capture{}
	}
}

func (d *decoder) browsers(field string, n *yaml.Node) domain.BrowserMatcher {
	var items []*yaml.Node
	switch n.Kind {
	case yaml.ScalarNode:
		items = []*yaml.Node{n}
	case yaml.SequenceNode:
		items = n.Content
	default:
		d.drop(field, n, "browsers must be a string, a /pattern/ or a list of them")
		return domain.BrowserMatcher{}
	}

	var names []string
	var patterns []*regexp.Regexp
	for i, item := range items {
		item = resolve(item)
		itemField := field
		if n.Kind == yaml.SequenceNode {
			itemField = fmt.Sprintf("%s[%d]", field, i)
		}

		s, ok := scalar(item)
		if !ok {
			d.drop(itemField, item, "browser must be a string or a /pattern/")
			continue
		}
		re, isPattern, err := parsePattern(s)
		switch {
		case err != nil:
			d.drop(itemField, item, err.Error())
		case isPattern:
			patterns = append(patterns, re)
		default:
			names = append(names, s)
		}
	}
	return domain.NewBrowserMatcher(names, patterns)
}

func (d *decoder) skip(field string, n *yaml.Node) domain.Skip {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!bool" {
			b, err := strconv.ParseBool(n.Value)
			if err == nil {
				return domain.SkipAll(b)
			}
		}
		d.drop(field, n, "skip must be a boolean, a mapping or a list of mappings")
		return domain.Skip{}
	case yaml.MappingNode:
		return domain.SkipRules(d.skipRule(field, n))
	case yaml.SequenceNode:
		var rules []domain.SkipRule
		for i, item := range n.Content {
			item = resolve(item)
			itemField := fmt.Sprintf("%s[%d]", field, i)
			if item.Kind != yaml.MappingNode {
				d.drop(itemField, item, "skip rule must be a mapping")
				continue
			}
			rules = append(rules, d.skipRule(itemField, item))
		}
		return domain.SkipRules(rules...)
	default:
		d.drop(field, n, "skip must be a boolean, a mapping or a list of mappings")
		return domain.Skip{}
	}
}

func (d *decoder) skipRule(field string, n *yaml.Node) domain.SkipRule {
	var r domain.SkipRule
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], resolve(n.Content[i+1])
		if isNull(val) {
			continue
		}
		switch key.Value {
		case "browser":
			r.Browser = d.browsers(field+".browser", val)
		case "reason":
			if s, ok := scalar(val); ok {
				r.Reason = s
			} else {
				d.drop(field+".reason", val, "reason must be a string")
			}
		default:
			d.drop(field+"."+key.Value, key, "unknown key")
		}
	}
	return r
}

// parsePattern recognizes /body/flags. Flags i, m and s map to Go flags;
// g, u and y are accepted and ignored.
func parsePattern(s string) (*regexp.Regexp, bool, error) {
	if len(s) < 2 || s[0] != '/' {
		return nil, false, nil
	}
	end := strings.LastIndexByte(s, '/')
	if end == 0 {
		return nil, false, nil
	}

	body, flags := s[1:end], s[end+1:]
	var goFlags strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			goFlags.WriteRune(f)
		case 'g', 'u', 'y':
		default:
			return nil, false, nil
		}
	}
	if goFlags.Len() > 0 {
		body = "(?" + goFlags.String() + ")" + body
	}

	re, err := regexp.Compile(body)
	if err != nil {
		return nil, true, fmt.Errorf("invalid pattern %s: %v", s, err)
	}
	return re, true, nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

func scalar(n *yaml.Node) (string, bool) {
	if n.Kind != yaml.ScalarNode || isNull(n) {
		return "", false
	}
	return n.Value, true
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
