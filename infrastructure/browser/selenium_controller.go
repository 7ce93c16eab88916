package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"

	"shop_automation/config"
	"shop_automation/domain/entities"
	"shop_automation/domain/interfaces"
)

const chromeDriverPort = 9515

type SeleniumController struct {
	wd      selenium.WebDriver
	service *selenium.Service
	logger  *logrus.Logger

	quitOnce sync.Once
	quitErr  error
}

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver() (string, error) {
	if path := os.Getenv("BROWSER_DRIVER_PATH"); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	commonPaths := []string{
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
		"/opt/homebrew/bin/chromedriver",
		filepath.Join(os.Getenv("HOME"), "bin", "chromedriver"),
	}
	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("chromedriver"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("chromedriver not found. Please install it or set BROWSER_DRIVER_PATH environment variable")
}

// findChromeBinary - finds Chrome/Chromium browser executable path
func findChromeBinary() string {
	if path := os.Getenv("CHROME_BINARY_PATH"); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	chromePaths := []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		`C:\Program Files\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
	}
	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

// NewSeleniumController - starts a chromedriver service and opens a session
// configured from cfg.
func NewSeleniumController(cfg *config.Config, logger *logrus.Logger) (*SeleniumController, error) {
	driverPath, err := findChromeDriver()
	if err != nil {
		return nil, fmt.Errorf("failed to find chromedriver: %w", err)
	}
	logger.Infof("Using ChromeDriver at: %s", driverPath)

	service, err := selenium.NewChromeDriverService(driverPath, chromeDriverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to start chromedriver: %w", err)
	}

	caps := selenium.Capabilities{"browserName": cfg.Browser}

	switch cfg.Browser {
	case "firefox":
		ffCaps := firefox.Capabilities{}
		if cfg.Headless {
			ffCaps.Args = append(ffCaps.Args, "-headless")
		}
		caps.AddFirefox(ffCaps)
	default:
		chromeCaps := chrome.Capabilities{
			Args: []string{
				"--disable-blink-features=AutomationControlled",
				"--disable-dev-shm-usage",
				"--no-sandbox",
				fmt.Sprintf("--window-size=%d,%d", cfg.BrowserWidth, cfg.BrowserHeight),
			},
		}
		if cfg.Headless {
			chromeCaps.Args = append(chromeCaps.Args, "--headless=new")
		}
		if binary := findChromeBinary(); binary != "" {
			chromeCaps.Path = binary
		}
		caps.AddChrome(chromeCaps)
	}

	wd, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", chromeDriverPort))
	if err != nil {
		service.Stop()
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}

	// Implicit waits stay disabled so existence probes return immediately;
	// the pages package owns all polling.
	if err := wd.SetImplicitWaitTimeout(cfg.ImplicitWait); err != nil {
		logger.Warnf("failed to set implicit wait: %v", err)
	}
	if err := wd.SetPageLoadTimeout(cfg.PageLoadTimeout); err != nil {
		logger.Warnf("failed to set page load timeout: %v", err)
	}

	return &SeleniumController{
		wd:      wd,
		service: service,
		logger:  logger,
	}, nil
}

func (s *SeleniumController) Navigate(ctx context.Context, url string) error {
	return s.wd.Get(url)
}

func (s *SeleniumController) CurrentURL(ctx context.Context) (string, error) {
	return s.wd.CurrentURL()
}

func (s *SeleniumController) Title(ctx context.Context) (string, error) {
	return s.wd.Title()
}

func (s *SeleniumController) Find(ctx context.Context, loc entities.Locator) (interfaces.Element, error) {
	el, err := s.wd.FindElement(string(loc.By), loc.Value)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", loc, err)
	}
	return &seleniumElement{el: el, wd: s.wd}, nil
}

func (s *SeleniumController) FindAll(ctx context.Context, loc entities.Locator) ([]interfaces.Element, error) {
	els, err := s.wd.FindElements(string(loc.By), loc.Value)
	if err != nil {
		return nil, fmt.Errorf("find all %s: %w", loc, err)
	}
	result := make([]interfaces.Element, 0, len(els))
	for _, el := range els {
		result = append(result, &seleniumElement{el: el, wd: s.wd})
	}
	return result, nil
}

func (s *SeleniumController) ExecuteScript(ctx context.Context, script string, args ...any) (any, error) {
	return s.wd.ExecuteScript(script, args)
}

func (s *SeleniumController) Screenshot(ctx context.Context) ([]byte, error) {
	return s.wd.Screenshot()
}

func (s *SeleniumController) Refresh(ctx context.Context) error {
	return s.wd.Refresh()
}

func (s *SeleniumController) Back(ctx context.Context) error {
	return s.wd.Back()
}

func (s *SeleniumController) AcceptAlert(ctx context.Context) error {
	return s.wd.AcceptAlert()
}

func (s *SeleniumController) DismissAlert(ctx context.Context) error {
	return s.wd.DismissAlert()
}

func (s *SeleniumController) AlertText(ctx context.Context) (string, error) {
	return s.wd.AlertText()
}

func (s *SeleniumController) SwitchToFrame(ctx context.Context, loc entities.Locator) error {
	frame, err := s.wd.FindElement(string(loc.By), loc.Value)
	if err != nil {
		return fmt.Errorf("find frame %s: %w", loc, err)
	}
	return s.wd.SwitchFrame(frame)
}

func (s *SeleniumController) SwitchToDefault(ctx context.Context) error {
	return s.wd.SwitchFrame(nil)
}

func (s *SeleniumController) WindowHandles(ctx context.Context) ([]string, error) {
	return s.wd.WindowHandles()
}

func (s *SeleniumController) SwitchToWindow(ctx context.Context, handle string) error {
	return s.wd.SwitchWindow(handle)
}

// Quit - closes the session and stops the chromedriver service
func (s *SeleniumController) Quit() error {
	s.quitOnce.Do(func() {
		if s.wd != nil {
			s.quitErr = s.wd.Quit()
		}
		if s.service != nil {
			s.service.Stop()
		}
	})
	return s.quitErr
}

type seleniumElement struct {
	el selenium.WebElement
	wd selenium.WebDriver
}

func (e *seleniumElement) Click(ctx context.Context) error {
	return e.el.Click()
}

func (e *seleniumElement) ClickViaScript(ctx context.Context) error {
	_, err := e.wd.ExecuteScript("arguments[0].click();", []interface{}{e.el})
	return err
}

func (e *seleniumElement) Clear(ctx context.Context) error {
	return e.el.Clear()
}

func (e *seleniumElement) SendKeys(ctx context.Context, text string) error {
	return e.el.SendKeys(text)
}

func (e *seleniumElement) Text(ctx context.Context) (string, error) {
	return e.el.Text()
}

func (e *seleniumElement) Attribute(ctx context.Context, name string) (string, error) {
	value, err := e.el.GetAttribute(name)
	if err != nil {
		// An unset attribute is not an error for callers.
		return "", nil
	}
	return value, nil
}

func (e *seleniumElement) Displayed(ctx context.Context) (bool, error) {
	return e.el.IsDisplayed()
}

func (e *seleniumElement) Enabled(ctx context.Context) (bool, error) {
	return e.el.IsEnabled()
}

func (e *seleniumElement) Selected(ctx context.Context) (bool, error) {
	return e.el.IsSelected()
}

func (e *seleniumElement) SelectByVisibleText(ctx context.Context, text string) error {
	option, err := e.el.FindElement(selenium.ByXPATH, fmt.Sprintf(".//option[normalize-space(.)=%q]", text))
	if err != nil {
		return fmt.Errorf("option %q not found: %w", text, err)
	}
	return option.Click()
}

func (e *seleniumElement) SelectByValue(ctx context.Context, value string) error {
	option, err := e.el.FindElement(selenium.ByXPATH, fmt.Sprintf(".//option[@value=%q]", value))
	if err != nil {
		return fmt.Errorf("option with value %q not found: %w", value, err)
	}
	return option.Click()
}

func (e *seleniumElement) Hover(ctx context.Context) error {
	return e.el.MoveTo(0, 0)
}

func (e *seleniumElement) ScrollIntoView(ctx context.Context) error {
	_, err := e.wd.ExecuteScript(
		"arguments[0].scrollIntoView({ behavior: 'smooth', block: 'center' });",
		[]interface{}{e.el},
	)
	return err
}

func (e *seleniumElement) Find(ctx context.Context, loc entities.Locator) (interfaces.Element, error) {
	child, err := e.el.FindElement(string(loc.By), loc.Value)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", loc, err)
	}
	return &seleniumElement{el: child, wd: e.wd}, nil
}

func (e *seleniumElement) FindAll(ctx context.Context, loc entities.Locator) ([]interfaces.Element, error) {
	children, err := e.el.FindElements(string(loc.By), loc.Value)
	if err != nil {
		return nil, fmt.Errorf("find all %s: %w", loc, err)
	}
	result := make([]interfaces.Element, 0, len(children))
	for _, child := range children {
		result = append(result, &seleniumElement{el: child, wd: e.wd})
	}
	return result, nil
}

var _ interfaces.Browser = (*SeleniumController)(nil)
var _ interfaces.Element = (*seleniumElement)(nil)
