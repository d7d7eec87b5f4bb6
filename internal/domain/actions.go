package domain

import "time"

// Actions is the page-interaction surface handed to hooks and captures.
// Every method returns the receiver so calls can be chained.
type Actions interface {
	Wait(d time.Duration) Actions
	WaitForElementToShow(selector string, timeout time.Duration) Actions
	WaitForElementToHide(selector string, timeout time.Duration) Actions
	WaitForJSCondition(script string, timeout time.Duration) Actions
	Click(selector string) Actions
	DoubleClick(selector string) Actions
	MouseDown(selector string) Actions
	MouseUp(selector string) Actions
	MouseMove(selector string) Actions
	DragAndDrop(from, to string) Actions
	SendKeys(selector, keys string) Actions
	SendFile(selector, path string) Actions
	Focus(selector string) Actions
	SetWindowSize(width, height int) Actions
	ExecuteJS(script string) Actions
	ChangeOrientation() Actions
}

// ActionFunc is a hook or capture body.
type ActionFunc func(a Actions)

// ActionKind names a single page interaction.
type ActionKind string

const (
	ActionWait                 ActionKind = "wait"
	ActionWaitForElementToShow ActionKind = "waitForElementToShow"
	ActionWaitForElementToHide ActionKind = "waitForElementToHide"
	ActionWaitForJSCondition   ActionKind = "waitForJSCondition"
	ActionClick                ActionKind = "click"
	ActionDoubleClick          ActionKind = "doubleClick"
	ActionMouseDown            ActionKind = "mouseDown"
	ActionMouseUp              ActionKind = "mouseUp"
	ActionMouseMove            ActionKind = "mouseMove"
	ActionDragAndDrop          ActionKind = "dragAndDrop"
	ActionSendKeys             ActionKind = "sendKeys"
	ActionSendFile             ActionKind = "sendFile"
	ActionFocus                ActionKind = "focus"
	ActionSetWindowSize        ActionKind = "setWindowSize"
	ActionExecuteJS            ActionKind = "executeJS"
	ActionChangeOrientation    ActionKind = "changeOrientation"
)

// ActionStep is one recorded interaction. Only the fields relevant to Kind are set.
type ActionStep struct {
	Kind     ActionKind    `json:"kind"`
	Selector string        `json:"selector,omitempty"`
	Target   string        `json:"target,omitempty"` // dragAndDrop destination
	Text     string        `json:"text,omitempty"`   // keys, script or file path
	Duration time.Duration `json:"duration,omitempty"`
	Width    int           `json:"width,omitempty"`
	Height   int           `json:"height,omitempty"`
}

// Replay returns an ActionFunc that performs steps in order.
// Steps with an unknown kind are ignored.
func Replay(steps []ActionStep) ActionFunc {
	own := make([]ActionStep, len(steps))
	copy(own, steps)

	return func(a Actions) {
		for _, s := range own {
			apply(a, s)
		}
	}
}

func apply(a Actions, s ActionStep) {
	switch s.Kind {
	case ActionWait:
		a.Wait(s.Duration)
	case ActionWaitForElementToShow:
		a.WaitForElementToShow(s.Selector, s.Duration)
	case ActionWaitForElementToHide:
		a.WaitForElementToHide(s.Selector, s.Duration)
	case ActionWaitForJSCondition:
		a.WaitForJSCondition(s.Text, s.Duration)
	case ActionClick:
		a.Click(s.Selector)
	case ActionDoubleClick:
		a.DoubleClick(s.Selector)
	case ActionMouseDown:
		a.MouseDown(s.Selector)
	case ActionMouseUp:
		a.MouseUp(s.Selector)
	case ActionMouseMove:
		a.MouseMove(s.Selector)
	case ActionDragAndDrop:
		a.DragAndDrop(s.Selector, s.Target)
	case ActionSendKeys:
		a.SendKeys(s.Selector, s.Text)
	case ActionSendFile:
		a.SendFile(s.Selector, s.Text)
	case ActionFocus:
		a.Focus(s.Selector)
	case ActionSetWindowSize:
		a.SetWindowSize(s.Width, s.Height)
	case ActionExecuteJS:
		a.ExecuteJS(s.Text)
	case ActionChangeOrientation:
		a.ChangeOrientation()
	}
}

// RecordActions runs fn against a recorder and returns the steps it performed.
func RecordActions(fn ActionFunc) []ActionStep {
	if fn == nil {
		return nil
	}
	rec := &Recorder{}
	fn(rec)
	return rec.Steps()
}

// Recorder is an Actions implementation that only remembers what was asked of it.
type Recorder struct {
	steps []ActionStep
}

var _ Actions = (*Recorder)(nil)

// Steps returns a copy of the recorded steps.
func (r *Recorder) Steps() []ActionStep {
	out := make([]ActionStep, len(r.steps))
	copy(out, r.steps)
	return out
}

func (r *Recorder) add(s ActionStep) Actions {
	r.steps = append(r.steps, s)
	return r
}

func (r *Recorder) Wait(d time.Duration) Actions {
	return r.add(ActionStep{Kind: ActionWait, Duration: d})
}

func (r *Recorder) WaitForElementToShow(selector string, timeout time.Duration) Actions {
	return r.add(ActionStep{Kind: ActionWaitForElementToShow, Selector: selector, Duration: timeout})
}

func (r *Recorder) WaitForElementToHide(selector string, timeout time.Duration) Actions {
	return r.add(ActionStep{Kind: ActionWaitForElementToHide, Selector: selector, Duration: timeout})
}

func (r *Recorder) WaitForJSCondition(script string, timeout time.Duration) Actions {
	return r.add(ActionStep{Kind: ActionWaitForJSCondition, Text: script, Duration: timeout})
}

func (r *Recorder) Click(selector string) Actions {
	return r.add(ActionStep{Kind: ActionClick, Selector: selector})
}

func (r *Recorder) DoubleClick(selector string) Actions {
	return r.add(ActionStep{Kind: ActionDoubleClick, Selector: selector})
}

func (r *Recorder) MouseDown(selector string) Actions {
	return r.add(ActionStep{Kind: ActionMouseDown, Selector: selector})
}

func (r *Recorder) MouseUp(selector string) Actions {
	return r.add(ActionStep{Kind: ActionMouseUp, Selector: selector})
}

func (r *Recorder) MouseMove(selector string) Actions {
	return r.add(ActionStep{Kind: ActionMouseMove, Selector: selector})
}

func (r *Recorder) DragAndDrop(from, to string) Actions {
	return r.add(ActionStep{Kind: ActionDragAndDrop, Selector: from, Target: to})
}

func (r *Recorder) SendKeys(selector, keys string) Actions {
	return r.add(ActionStep{Kind: ActionSendKeys, Selector: selector, Text: keys})
}

func (r *Recorder) SendFile(selector, path string) Actions {
	return r.add(ActionStep{Kind: ActionSendFile, Selector: selector, Text: path})
}

func (r *Recorder) Focus(selector string) Actions {
	return r.add(ActionStep{Kind: ActionFocus, Selector: selector})
}

func (r *Recorder) SetWindowSize(width, height int) Actions {
	return r.add(ActionStep{Kind: ActionSetWindowSize, Width: width, Height: height})
}

func (r *Recorder) ExecuteJS(script string) Actions {
	return r.add(ActionStep{Kind: ActionExecuteJS, Text: script})
}

func (r *Recorder) ChangeOrientation() Actions {
	return r.add(ActionStep{Kind: ActionChangeOrientation})
}

// SelectorsOf returns the selectors an action list touches, in order.
func SelectorsOf(steps []ActionStep) []string {
	var out []string
	for _, s := range steps {
		if s.Selector != "" {
			out = append(out, s.Selector)
		}
		if s.Target != "" {
			out = append(out, s.Target)
		}
	}
	return out
}
