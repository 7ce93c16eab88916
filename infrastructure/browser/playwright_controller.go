package browser

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"shop_automation/config"
	"shop_automation/domain/entities"
	"shop_automation/domain/interfaces"
)

type PlaywrightController struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	bctx    playwright.BrowserContext
	page    playwright.Page
	logger  *logrus.Logger

	// Playwright handles dialogs at event time, so a handler auto-resolves
	// them according to dialogMode and the page objects check afterwards.
	dialogMu   sync.Mutex
	dialogMode string // accept or dismiss
	dialogText string
	dialogSeen bool

	// Non-nil while lookups are scoped to an iframe.
	frame playwright.Frame

	quitOnce sync.Once
	quitErr  error
}

// NewPlaywrightController - launches a browser through Playwright configured
// from cfg.
func NewPlaywrightController(cfg *config.Config, logger *logrus.Logger) (*PlaywrightController, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	launchOptions := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	}

	var browserType playwright.BrowserType
	switch cfg.Browser {
	case "firefox":
		browserType = pw.Firefox
	case "webkit":
		browserType = pw.WebKit
	default:
		browserType = pw.Chromium
	}

	b, err := browserType.Launch(launchOptions)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	bctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  cfg.BrowserWidth,
			Height: cfg.BrowserHeight,
		},
		IgnoreHttpsErrors: playwright.Bool(true),
	})
	if err != nil {
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	c := &PlaywrightController{
		pw:         pw,
		browser:    b,
		bctx:       bctx,
		page:       page,
		logger:     logger,
		dialogMode: "accept",
	}

	page.OnDialog(func(dialog playwright.Dialog) {
		c.dialogMu.Lock()
		mode := c.dialogMode
		c.dialogText = dialog.Message()
		c.dialogSeen = true
		c.dialogMu.Unlock()

		if mode == "dismiss" {
			if err := dialog.Dismiss(); err != nil {
				logger.Warnf("failed to dismiss dialog: %v", err)
			}
			return
		}
		if err := dialog.Accept(); err != nil {
			logger.Warnf("failed to accept dialog: %v", err)
		}
	})

	return c, nil
}

// selectorFor compiles a locator into Playwright selector syntax.
func selectorFor(loc entities.Locator) string {
	switch loc.By {
	case entities.ByID:
		return fmt.Sprintf(`[id=%q]`, loc.Value)
	case entities.ByName:
		return fmt.Sprintf(`[name=%q]`, loc.Value)
	case entities.ByClassName:
		return "." + loc.Value
	case entities.ByLinkText:
		return fmt.Sprintf(`a:text-is(%q)`, loc.Value)
	case entities.ByXPath:
		return "xpath=" + loc.Value
	default:
		return loc.Value
	}
}

func (c *PlaywrightController) querySelector(selector string) (playwright.ElementHandle, error) {
	if c.frame != nil {
		return c.frame.QuerySelector(selector)
	}
	return c.page.QuerySelector(selector)
}

func (c *PlaywrightController) querySelectorAll(selector string) ([]playwright.ElementHandle, error) {
	if c.frame != nil {
		return c.frame.QuerySelectorAll(selector)
	}
	return c.page.QuerySelectorAll(selector)
}

func (c *PlaywrightController) Navigate(ctx context.Context, url string) error {
	_, err := c.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return err
}

func (c *PlaywrightController) CurrentURL(ctx context.Context) (string, error) {
	return c.page.URL(), nil
}

func (c *PlaywrightController) Title(ctx context.Context) (string, error) {
	return c.page.Title()
}

func (c *PlaywrightController) Find(ctx context.Context, loc entities.Locator) (interfaces.Element, error) {
	selector := selectorFor(loc)
	handle, err := c.querySelector(selector)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", loc, err)
	}
	if handle == nil {
		return nil, fmt.Errorf("find %s: no element matches", loc)
	}
	return &playwrightElement{handle: handle, page: c.page}, nil
}

func (c *PlaywrightController) FindAll(ctx context.Context, loc entities.Locator) ([]interfaces.Element, error) {
	handles, err := c.querySelectorAll(selectorFor(loc))
	if err != nil {
		return nil, fmt.Errorf("find all %s: %w", loc, err)
	}
	result := make([]interfaces.Element, 0, len(handles))
	for _, handle := range handles {
		result = append(result, &playwrightElement{handle: handle, page: c.page})
	}
	return result, nil
}

// ExecuteScript accepts WebDriver-style script bodies. A leading return is
// stripped so the remainder evaluates as an expression.
func (c *PlaywrightController) ExecuteScript(ctx context.Context, script string, args ...any) (any, error) {
	expr := strings.TrimSpace(script)
	if rest, ok := strings.CutPrefix(expr, "return "); ok {
		expr = rest
	}
	if len(args) > 0 {
		return c.page.Evaluate(expr, args[0])
	}
	return c.page.Evaluate(expr)
}

func (c *PlaywrightController) Screenshot(ctx context.Context) ([]byte, error) {
	return c.page.Screenshot()
}

func (c *PlaywrightController) Refresh(ctx context.Context) error {
	_, err := c.page.Reload()
	return err
}

func (c *PlaywrightController) Back(ctx context.Context) error {
	_, err := c.page.GoBack()
	return err
}

// AcceptAlert reports whether a dialog was handled since the last check and
// arms the handler to accept the next one.
func (c *PlaywrightController) AcceptAlert(ctx context.Context) error {
	c.dialogMu.Lock()
	defer c.dialogMu.Unlock()
	c.dialogMode = "accept"
	if !c.dialogSeen {
		return fmt.Errorf("no alert present")
	}
	c.dialogSeen = false
	return nil
}

func (c *PlaywrightController) DismissAlert(ctx context.Context) error {
	c.dialogMu.Lock()
	defer c.dialogMu.Unlock()
	c.dialogMode = "dismiss"
	if !c.dialogSeen {
		return fmt.Errorf("no alert present")
	}
	c.dialogSeen = false
	return nil
}

func (c *PlaywrightController) AlertText(ctx context.Context) (string, error) {
	c.dialogMu.Lock()
	defer c.dialogMu.Unlock()
	if c.dialogText == "" {
		return "", fmt.Errorf("no alert text recorded")
	}
	return c.dialogText, nil
}

func (c *PlaywrightController) SwitchToFrame(ctx context.Context, loc entities.Locator) error {
	handle, err := c.querySelector(selectorFor(loc))
	if err != nil || handle == nil {
		return fmt.Errorf("find frame %s: %w", loc, err)
	}
	frame, err := handle.ContentFrame()
	if err != nil {
		return fmt.Errorf("content frame %s: %w", loc, err)
	}
	c.frame = frame
	return nil
}

func (c *PlaywrightController) SwitchToDefault(ctx context.Context) error {
	c.frame = nil
	return nil
}

// WindowHandles exposes open pages as zero-based index strings.
func (c *PlaywrightController) WindowHandles(ctx context.Context) ([]string, error) {
	pages := c.bctx.Pages()
	handles := make([]string, len(pages))
	for i := range pages {
		handles[i] = fmt.Sprintf("%d", i)
	}
	return handles, nil
}

func (c *PlaywrightController) SwitchToWindow(ctx context.Context, handle string) error {
	pages := c.bctx.Pages()
	for i, page := range pages {
		if fmt.Sprintf("%d", i) == handle {
			c.page = page
			c.frame = nil
			return page.BringToFront()
		}
	}
	return fmt.Errorf("no window with handle %q", handle)
}

func (c *PlaywrightController) Quit() error {
	c.quitOnce.Do(func() {
		if c.bctx != nil {
			if err := c.bctx.Close(); err != nil {
				c.quitErr = err
			}
		}
		if c.browser != nil {
			if err := c.browser.Close(); err != nil && c.quitErr == nil {
				c.quitErr = err
			}
		}
		if c.pw != nil {
			if err := c.pw.Stop(); err != nil && c.quitErr == nil {
				c.quitErr = err
			}
		}
	})
	return c.quitErr
}

type playwrightElement struct {
	handle playwright.ElementHandle
	page   playwright.Page
}

func (e *playwrightElement) Click(ctx context.Context) error {
	return e.handle.Click()
}

func (e *playwrightElement) ClickViaScript(ctx context.Context) error {
	_, err := e.handle.Evaluate("el => el.click()")
	return err
}

func (e *playwrightElement) Clear(ctx context.Context) error {
	return e.handle.Fill("")
}

// SendKeys types text, translating trailing WebDriver Enter codes into a
// Playwright key press.
func (e *playwrightElement) SendKeys(ctx context.Context, text string) error {
	for _, segment := range strings.SplitAfter(text, entities.KeyEnter) {
		if rest, ok := strings.CutSuffix(segment, entities.KeyEnter); ok {
			if rest != "" {
				if err := e.handle.Type(rest); err != nil {
					return err
				}
			}
			if err := e.handle.Press("Enter"); err != nil {
				return err
			}
			continue
		}
		if segment == "" {
			continue
		}
		if err := e.handle.Type(segment); err != nil {
			return err
		}
	}
	return nil
}

func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	return e.handle.InnerText()
}

func (e *playwrightElement) Attribute(ctx context.Context, name string) (string, error) {
	value, err := e.handle.GetAttribute(name)
	if err != nil {
		return "", nil
	}
	// Inputs keep the live value off the attribute.
	if name == "value" {
		if live, err := e.handle.InputValue(); err == nil {
			return live, nil
		}
	}
	return value, nil
}

func (e *playwrightElement) Displayed(ctx context.Context) (bool, error) {
	return e.handle.IsVisible()
}

func (e *playwrightElement) Enabled(ctx context.Context) (bool, error) {
	return e.handle.IsEnabled()
}

func (e *playwrightElement) Selected(ctx context.Context) (bool, error) {
	return e.handle.IsChecked()
}

func (e *playwrightElement) SelectByVisibleText(ctx context.Context, text string) error {
	_, err := e.handle.SelectOption(playwright.SelectOptionValues{
		Labels: playwright.StringSlice(text),
	})
	return err
}

func (e *playwrightElement) SelectByValue(ctx context.Context, value string) error {
	_, err := e.handle.SelectOption(playwright.SelectOptionValues{
		Values: playwright.StringSlice(value),
	})
	return err
}

func (e *playwrightElement) Hover(ctx context.Context) error {
	return e.handle.Hover()
}

func (e *playwrightElement) ScrollIntoView(ctx context.Context) error {
	return e.handle.ScrollIntoViewIfNeeded()
}

func (e *playwrightElement) Find(ctx context.Context, loc entities.Locator) (interfaces.Element, error) {
	child, err := e.handle.QuerySelector(selectorFor(loc))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", loc, err)
	}
	if child == nil {
		return nil, fmt.Errorf("find %s: no element matches", loc)
	}
	return &playwrightElement{handle: child, page: e.page}, nil
}

func (e *playwrightElement) FindAll(ctx context.Context, loc entities.Locator) ([]interfaces.Element, error) {
	children, err := e.handle.QuerySelectorAll(selectorFor(loc))
	if err != nil {
		return nil, fmt.Errorf("find all %s: %w", loc, err)
	}
	result := make([]interfaces.Element, 0, len(children))
	for _, child := range children {
		result = append(result, &playwrightElement{handle: child, page: e.page})
	}
	return result, nil
}

var _ interfaces.Browser = (*PlaywrightController)(nil)
var _ interfaces.Element = (*playwrightElement)(nil)
