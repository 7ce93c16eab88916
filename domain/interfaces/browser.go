package interfaces

import (
	"context"

	"shop_automation/domain/entities"
)

// Element is a handle to a DOM element found through a Browser. Handles go
// stale when the page navigates; operations on a stale handle return errors.
type Element interface {
	// Click performs a native click.
	Click(ctx context.Context) error

	// ClickViaScript clicks through injected JavaScript. Used as a fallback
	// when the native click is rejected (e.g. the element is covered by an
	// overlay).
	ClickViaScript(ctx context.Context) error

	// Clear empties an input field.
	Clear(ctx context.Context) error

	// SendKeys types text into the element without clearing it first.
	SendKeys(ctx context.Context, text string) error

	// Text returns the visible text of the element.
	Text(ctx context.Context) (string, error)

	// Attribute returns the value of an HTML attribute, empty when unset.
	Attribute(ctx context.Context, name string) (string, error)

	// Displayed reports whether the element is rendered and visible.
	Displayed(ctx context.Context) (bool, error)

	// Enabled reports whether the element accepts interaction.
	Enabled(ctx context.Context) (bool, error)

	// Selected reports whether a checkbox/radio/option is selected.
	Selected(ctx context.Context) (bool, error)

	// SelectByVisibleText picks a <select> option by its visible text.
	SelectByVisibleText(ctx context.Context, text string) error

	// SelectByValue picks a <select> option by its value attribute.
	SelectByValue(ctx context.Context, value string) error

	// Hover moves the pointer over the element.
	Hover(ctx context.Context) error

	// ScrollIntoView scrolls the element into the viewport.
	ScrollIntoView(ctx context.Context) error

	// Find locates a descendant element. Returns an error immediately when
	// no descendant matches; waiting is the caller's concern.
	Find(ctx context.Context, loc entities.Locator) (Element, error)

	// FindAll locates all matching descendants; an empty slice is not an error.
	FindAll(ctx context.Context, loc entities.Locator) ([]Element, error)
}

// Browser is the automation backend boundary. Any WebDriver-protocol
// compatible backend can satisfy it; the suite ships a chromedriver
// implementation and a Playwright implementation. Lookup methods never wait:
// the explicit wait engine in the pages package owns all polling.
type Browser interface {
	// Navigate loads a URL in the current window.
	Navigate(ctx context.Context, url string) error

	// CurrentURL returns the URL of the current page.
	CurrentURL(ctx context.Context) (string, error)

	// Title returns the current page title.
	Title(ctx context.Context) (string, error)

	// Find locates the first element matching the locator, erroring
	// immediately when absent.
	Find(ctx context.Context, loc entities.Locator) (Element, error)

	// FindAll locates every element matching the locator.
	FindAll(ctx context.Context, loc entities.Locator) ([]Element, error)

	// ExecuteScript runs JavaScript in the page and returns its result.
	ExecuteScript(ctx context.Context, script string, args ...any) (any, error)

	// Screenshot captures the current page as PNG bytes.
	Screenshot(ctx context.Context) ([]byte, error)

	// Refresh reloads the current page.
	Refresh(ctx context.Context) error

	// Back navigates one step back in history.
	Back(ctx context.Context) error

	// AcceptAlert accepts a native dialog if one is open.
	AcceptAlert(ctx context.Context) error

	// DismissAlert dismisses a native dialog if one is open.
	DismissAlert(ctx context.Context) error

	// AlertText returns the text of the open (or most recent) dialog.
	AlertText(ctx context.Context) (string, error)

	// SwitchToFrame scopes subsequent lookups to an iframe.
	SwitchToFrame(ctx context.Context, loc entities.Locator) error

	// SwitchToDefault returns lookups to the top-level document.
	SwitchToDefault(ctx context.Context) error

	// WindowHandles lists the open window/tab handles.
	WindowHandles(ctx context.Context) ([]string, error)

	// SwitchToWindow focuses the window with the given handle.
	SwitchToWindow(ctx context.Context, handle string) error

	// Quit closes the browser session and releases all resources. Safe to
	// call more than once.
	Quit() error
}
