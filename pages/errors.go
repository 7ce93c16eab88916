package pages

import (
	"fmt"
	"time"

	"shop_automation/domain/entities"
)

// TimeoutError reports that no candidate locator satisfied a condition within
// the wait window. Assertion-style callers propagate it; lenient accessors
// swallow it and return a neutral value.
type TimeoutError struct {
	Locators  entities.LocatorSet
	Condition entities.Condition
	Timeout   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for %s on %s", e.Timeout, e.Condition, e.Locators)
}

// NotFoundError reports that a named item was absent from an enumerated
// collection, such as a product title that never appeared in the grid. It is
// always a hard failure.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// InteractionError reports that an element was located but the interaction
// with it failed, including the script-click fallback.
type InteractionError struct {
	Action   string
	Locators entities.LocatorSet
	Err      error
}

func (e *InteractionError) Error() string {
	return fmt.Sprintf("%s failed on %s: %v", e.Action, e.Locators, e.Err)
}

func (e *InteractionError) Unwrap() error { return e.Err }
