package yamlsuite

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aalvaropc/shotsuite/internal/domain"
	"gopkg.in/yaml.v3"
)

// stepArgs is the mapping form of an action, e.g.
//
//   - sendKeys: {selector: "input[name=q]", keys: "shoes"}
type stepArgs struct {
	Selector string `yaml:"selector"`
	Timeout  string `yaml:"timeout"`
	Script   string `yaml:"script"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Keys     string `yaml:"keys"`
	Path     string `yaml:"path"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
}

// steps decodes an action list. Each item is either a bare action name
// ("changeOrientation") or a single-key mapping of action name to argument.
func (d *decoder) steps(field string, n *yaml.Node) []domain.ActionStep {
	out := make([]domain.ActionStep, 0, len(n.Content))

	for i, item := range n.Content {
		item = resolve(item)
		itemField := fmt.Sprintf("%s[%d]", field, i)

		var kind string
		arg := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}

		switch {
		case item.Kind == yaml.ScalarNode && !isNull(item):
			kind = item.Value
		case item.Kind == yaml.MappingNode && len(item.Content) == 2:
			kind = item.Content[0].Value
			arg = resolve(item.Content[1])
		default:
			d.drop(itemField, item, "action must be a name or a single-key mapping")
			continue
		}

		step, err := decodeStep(domain.ActionKind(kind), arg)
		if err != nil {
			d.drop(itemField, item, err.Error())
			continue
		}
		out = append(out, step)
	}

	return out
}

func decodeStep(kind domain.ActionKind, arg *yaml.Node) (domain.ActionStep, error) {
	step := domain.ActionStep{Kind: kind}

	var args stepArgs
	text, isScalar := scalar(arg)
	if arg.Kind == yaml.MappingNode {
		if err := arg.Decode(&args); err != nil {
			return step, err
		}
	} else if !isScalar && !isNull(arg) {
		return step, fmt.Errorf("%s: argument must be a string or a mapping", kind)
	}

	switch kind {
	case domain.ActionWait:
		if !isScalar {
			return step, errors.New("wait: expected a duration")
		}
		dur, err := parseDuration(text)
		if err != nil {
			return step, fmt.Errorf("wait: %w", err)
		}
		step.Duration = dur

	case domain.ActionClick, domain.ActionDoubleClick, domain.ActionMouseDown,
		domain.ActionMouseUp, domain.ActionMouseMove, domain.ActionFocus:
		step.Selector = firstNonEmpty(text, args.Selector)
		if step.Selector == "" {
			return step, fmt.Errorf("%s: selector is required", kind)
		}

	case domain.ActionWaitForElementToShow, domain.ActionWaitForElementToHide:
		step.Selector = firstNonEmpty(text, args.Selector)
		if step.Selector == "" {
			return step, fmt.Errorf("%s: selector is required", kind)
		}
		if err := setTimeout(&step, args.Timeout); err != nil {
			return step, fmt.Errorf("%s: %w", kind, err)
		}

	case domain.ActionWaitForJSCondition:
		step.Text = firstNonEmpty(text, args.Script)
		if step.Text == "" {
			return step, fmt.Errorf("%s: script is required", kind)
		}
		if err := setTimeout(&step, args.Timeout); err != nil {
			return step, fmt.Errorf("%s: %w", kind, err)
		}

	case domain.ActionDragAndDrop:
		if args.From == "" || args.To == "" {
			return step, fmt.Errorf("%s: from and to are required", kind)
		}
		step.Selector, step.Target = args.From, args.To

	case domain.ActionSendKeys:
		step.Selector = args.Selector
		step.Text = firstNonEmpty(text, args.Keys)

	case domain.ActionSendFile:
		if args.Selector == "" || args.Path == "" {
			return step, fmt.Errorf("%s: selector and path are required", kind)
		}
		step.Selector, step.Text = args.Selector, args.Path

	case domain.ActionSetWindowSize:
		w, h := args.Width, args.Height
		if isScalar {
			var err error
			if w, h, err = parseSize(text); err != nil {
				return step, fmt.Errorf("%s: %w", kind, err)
			}
		}
		if w <= 0 || h <= 0 {
			return step, fmt.Errorf("%s: width and height must be positive", kind)
		}
		step.Width, step.Height = w, h

	case domain.ActionExecuteJS:
		step.Text = firstNonEmpty(text, args.Script)
		if step.Text == "" {
			return step, fmt.Errorf("%s: script is required", kind)
		}

	case domain.ActionChangeOrientation:

	default:
		return step, fmt.Errorf("unknown action %q", kind)
	}

	return step, nil
}

func setTimeout(step *domain.ActionStep, raw string) error {
	if raw == "" {
		return nil
	}
	dur, err := parseDuration(raw)
	if err != nil {
		return err
	}
	step.Duration = dur
	return nil
}

// parseDuration accepts Go durations ("1.5s") and bare integers as milliseconds.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.Atoi(s); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("negative duration %q", s)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	if dur < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return dur, nil
}

// parseSize parses "1024x768".
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q (expected WIDTHxHEIGHT)", s)
	}
	w, err1 := strconv.Atoi(strings.TrimSpace(ws))
	h, err2 := strconv.Atoi(strings.TrimSpace(hs))
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("invalid size %q (expected WIDTHxHEIGHT)", s)
	}
	return w, h, nil
}
