package ports

// SelectorChecker reports whether a CSS selector is syntactically valid.
type SelectorChecker interface {
	CheckSelector(selector string) error
}
