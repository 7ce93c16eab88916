package pages

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"shop_automation/config"
	"shop_automation/domain/entities"
	"shop_automation/domain/interfaces"
)

// fakeElement is a scripted element for driving the wait engine in tests.
type fakeElement struct {
	text      string
	attrs     map[string]string
	displayed bool
	enabled   bool
	selected  bool

	clickErr       error
	clicks         int
	scriptClicks   int
	cleared        int
	typed          []string
	selectedTexts  []string
	selectedValues []string

	children     map[entities.Locator]*fakeElement
	childrenAll  map[entities.Locator][]*fakeElement
}

func newFakeElement(text string) *fakeElement {
	return &fakeElement{
		text:        text,
		attrs:       map[string]string{},
		displayed:   true,
		enabled:     true,
		children:    map[entities.Locator]*fakeElement{},
		childrenAll: map[entities.Locator][]*fakeElement{},
	}
}

func (e *fakeElement) Click(ctx context.Context) error {
	e.clicks++
	return e.clickErr
}

func (e *fakeElement) ClickViaScript(ctx context.Context) error {
	e.scriptClicks++
	return nil
}

func (e *fakeElement) Clear(ctx context.Context) error {
	e.cleared++
	return nil
}

func (e *fakeElement) SendKeys(ctx context.Context, text string) error {
	e.typed = append(e.typed, text)
	return nil
}

func (e *fakeElement) Text(ctx context.Context) (string, error) {
	return e.text, nil
}

func (e *fakeElement) Attribute(ctx context.Context, name string) (string, error) {
	return e.attrs[name], nil
}

func (e *fakeElement) Displayed(ctx context.Context) (bool, error) { return e.displayed, nil }
func (e *fakeElement) Enabled(ctx context.Context) (bool, error)   { return e.enabled, nil }
func (e *fakeElement) Selected(ctx context.Context) (bool, error)  { return e.selected, nil }

func (e *fakeElement) SelectByVisibleText(ctx context.Context, text string) error {
	e.selectedTexts = append(e.selectedTexts, text)
	return nil
}

func (e *fakeElement) SelectByValue(ctx context.Context, value string) error {
	e.selectedValues = append(e.selectedValues, value)
	return nil
}

func (e *fakeElement) Hover(ctx context.Context) error          { return nil }
func (e *fakeElement) ScrollIntoView(ctx context.Context) error { return nil }

func (e *fakeElement) Find(ctx context.Context, loc entities.Locator) (interfaces.Element, error) {
	if child, ok := e.children[loc]; ok {
		return child, nil
	}
	return nil, fmt.Errorf("no child matches %s", loc)
}

func (e *fakeElement) FindAll(ctx context.Context, loc entities.Locator) ([]interfaces.Element, error) {
	children := e.childrenAll[loc]
	result := make([]interfaces.Element, 0, len(children))
	for _, child := range children {
		result = append(result, child)
	}
	return result, nil
}

// fakeBrowser serves scripted elements keyed by locator. An entry in
// appearAfter hides the element until that many lookups have happened.
type fakeBrowser struct {
	elements map[entities.Locator]*fakeElement
	lists    map[entities.Locator][]*fakeElement

	appearAfter map[entities.Locator]int
	findCounts  map[entities.Locator]int

	url           string
	title         string
	scriptResult  any
	navigated     []string
	alertAccepts  int
	alertDismisss int
	refreshed     int
}

func newFakeBrowser() *fakeBrowser {
	return &fakeBrowser{
		elements:     map[entities.Locator]*fakeElement{},
		lists:        map[entities.Locator][]*fakeElement{},
		appearAfter:  map[entities.Locator]int{},
		findCounts:   map[entities.Locator]int{},
		scriptResult: "complete",
	}
}

func (b *fakeBrowser) Navigate(ctx context.Context, url string) error {
	b.navigated = append(b.navigated, url)
	b.url = url
	return nil
}

func (b *fakeBrowser) CurrentURL(ctx context.Context) (string, error) { return b.url, nil }
func (b *fakeBrowser) Title(ctx context.Context) (string, error)     { return b.title, nil }

func (b *fakeBrowser) Find(ctx context.Context, loc entities.Locator) (interfaces.Element, error) {
	b.findCounts[loc]++
	if after, ok := b.appearAfter[loc]; ok && b.findCounts[loc] <= after {
		return nil, fmt.Errorf("no element matches %s", loc)
	}
	if el, ok := b.elements[loc]; ok {
		return el, nil
	}
	return nil, fmt.Errorf("no element matches %s", loc)
}

func (b *fakeBrowser) FindAll(ctx context.Context, loc entities.Locator) ([]interfaces.Element, error) {
	list := b.lists[loc]
	result := make([]interfaces.Element, 0, len(list))
	for _, el := range list {
		result = append(result, el)
	}
	return result, nil
}

func (b *fakeBrowser) ExecuteScript(ctx context.Context, script string, args ...any) (any, error) {
	return b.scriptResult, nil
}

func (b *fakeBrowser) Screenshot(ctx context.Context) ([]byte, error) {
	return []byte("png"), nil
}

func (b *fakeBrowser) Refresh(ctx context.Context) error {
	b.refreshed++
	return nil
}

func (b *fakeBrowser) Back(ctx context.Context) error { return nil }

func (b *fakeBrowser) AcceptAlert(ctx context.Context) error {
	b.alertAccepts++
	return nil
}

func (b *fakeBrowser) DismissAlert(ctx context.Context) error {
	b.alertDismisss++
	return nil
}

func (b *fakeBrowser) AlertText(ctx context.Context) (string, error) { return "", nil }

func (b *fakeBrowser) SwitchToFrame(ctx context.Context, loc entities.Locator) error { return nil }
func (b *fakeBrowser) SwitchToDefault(ctx context.Context) error                     { return nil }

func (b *fakeBrowser) WindowHandles(ctx context.Context) ([]string, error) {
	return []string{"0"}, nil
}

func (b *fakeBrowser) SwitchToWindow(ctx context.Context, handle string) error { return nil }
func (b *fakeBrowser) Quit() error                                             { return nil }

var _ interfaces.Browser = (*fakeBrowser)(nil)
var _ interfaces.Element = (*fakeElement)(nil)

// newTestBase builds a BasePage with millisecond-scale wait windows so tests
// exercising timeouts stay fast.
func newTestBase(driver interfaces.Browser) *BasePage {
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{
		BaseURL:         "http://app.local",
		ExplicitWait:    200 * time.Millisecond,
		PageLoadTimeout: 200 * time.Millisecond,
	}
	p := NewBasePage(driver, cfg, log)
	p.wait = 200 * time.Millisecond
	p.longWait = 200 * time.Millisecond
	p.probe = 60 * time.Millisecond
	p.poll = 10 * time.Millisecond
	return p
}
