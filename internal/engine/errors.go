package engine

import "fmt"

// InvalidInputError reports a malformed event or work item. It names the
// offending record so batch callers can decide whether to skip it or abort.
type InvalidInputError struct {
	Kind   string // "event", "item", or "window"
	ID     string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid %s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.ID, e.Reason)
}

func invalidEvent(id, reason string) *InvalidInputError {
	return &InvalidInputError{Kind: "event", ID: id, Reason: reason}
}

func invalidItem(id, reason string) *InvalidInputError {
	return &InvalidInputError{Kind: "item", ID: id, Reason: reason}
}
