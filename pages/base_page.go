package pages

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"shop_automation/config"
	"shop_automation/domain/entities"
	"shop_automation/domain/interfaces"
)

const pollInterval = 200 * time.Millisecond

// probeTimeout bounds the quick existence checks behind the Is* accessors.
// They answer "is it there right now-ish", not "will it eventually appear".
const probeTimeout = 2 * time.Second

// BasePage carries the driver handle and the wait engine every page object
// builds on. Candidate locators for one logical element are polled together
// inside a single timeout window, so a page that renders the second candidate
// first is found just as fast as one that renders the primary.
type BasePage struct {
	driver interfaces.Browser
	cfg    *config.Config
	log    *logrus.Logger

	wait     time.Duration // assertion waits
	longWait time.Duration // page loads
	probe    time.Duration // presence probes
	poll     time.Duration
}

func NewBasePage(driver interfaces.Browser, cfg *config.Config, log *logrus.Logger) *BasePage {
	return &BasePage{
		driver:   driver,
		cfg:      cfg,
		log:      log,
		wait:     cfg.ExplicitWait,
		longWait: cfg.PageLoadTimeout,
		probe:    probeTimeout,
		poll:     pollInterval,
	}
}

// waitFor polls every candidate in target, in order, until one satisfies cond
// or the window closes. want carries the expected substring for the
// text-contains condition.
func (p *BasePage) waitFor(ctx context.Context, target entities.LocatorSet, cond entities.Condition, timeout time.Duration, want string) (interfaces.Element, error) {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(p.poll)
	defer ticker.Stop()

	for {
		for _, loc := range target {
			el, err := p.driver.Find(ctx, loc)
			if err != nil {
				continue
			}
			ok, err := p.meets(ctx, el, cond, want)
			if err == nil && ok {
				return el, nil
			}
		}

		if time.Now().After(deadline) {
			return nil, &TimeoutError{Locators: target, Condition: cond, Timeout: timeout}
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (p *BasePage) meets(ctx context.Context, el interfaces.Element, cond entities.Condition, want string) (bool, error) {
	switch cond {
	case entities.ConditionPresent:
		return true, nil
	case entities.ConditionVisible:
		return el.Displayed(ctx)
	case entities.ConditionClickable:
		shown, err := el.Displayed(ctx)
		if err != nil || !shown {
			return false, err
		}
		return el.Enabled(ctx)
	case entities.ConditionTextContains:
		text, err := el.Text(ctx)
		if err != nil {
			return false, err
		}
		return strings.Contains(text, want), nil
	default:
		return false, nil
	}
}

// waitGone polls until no candidate in target is visible. Unlike waitFor the
// condition inverts across candidates: any one of them still showing keeps
// the wait alive.
func (p *BasePage) waitGone(ctx context.Context, target entities.LocatorSet, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(p.poll)
	defer ticker.Stop()

	for {
		visible := false
		for _, loc := range target {
			el, err := p.driver.Find(ctx, loc)
			if err != nil {
				continue
			}
			if shown, err := el.Displayed(ctx); err == nil && shown {
				visible = true
				break
			}
		}
		if !visible {
			return nil
		}

		if time.Now().After(deadline) {
			return &TimeoutError{Locators: target, Condition: entities.ConditionInvisible, Timeout: timeout}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Click waits for the element to be clickable and clicks it. When the native
// click is rejected, commonly because another element overlaps it, a single
// script click is attempted before giving up.
func (p *BasePage) Click(ctx context.Context, target entities.LocatorSet) error {
	el, err := p.waitFor(ctx, target, entities.ConditionClickable, p.wait, "")
	if err != nil {
		return err
	}
	if err := el.Click(ctx); err != nil {
		p.log.Warnf("native click rejected on %s, retrying via script: %v", target, err)
		if scriptErr := el.ClickViaScript(ctx); scriptErr != nil {
			return &InteractionError{Action: "click", Locators: target, Err: scriptErr}
		}
	}
	return nil
}

// Type clears the field and types text into it.
func (p *BasePage) Type(ctx context.Context, target entities.LocatorSet, text string) error {
	el, err := p.waitFor(ctx, target, entities.ConditionVisible, p.wait, "")
	if err != nil {
		return err
	}
	if err := el.Clear(ctx); err != nil {
		return &InteractionError{Action: "clear", Locators: target, Err: err}
	}
	if err := el.SendKeys(ctx, text); err != nil {
		return &InteractionError{Action: "type", Locators: target, Err: err}
	}
	return nil
}

// SendKeys types without clearing first, for Enter presses and appends.
func (p *BasePage) SendKeys(ctx context.Context, target entities.LocatorSet, text string) error {
	el, err := p.waitFor(ctx, target, entities.ConditionVisible, p.wait, "")
	if err != nil {
		return err
	}
	if err := el.SendKeys(ctx, text); err != nil {
		return &InteractionError{Action: "send keys", Locators: target, Err: err}
	}
	return nil
}

func (p *BasePage) TextOf(ctx context.Context, target entities.LocatorSet) (string, error) {
	el, err := p.waitFor(ctx, target, entities.ConditionVisible, p.wait, "")
	if err != nil {
		return "", err
	}
	return el.Text(ctx)
}

func (p *BasePage) AttributeOf(ctx context.Context, target entities.LocatorSet, name string) (string, error) {
	el, err := p.waitFor(ctx, target, entities.ConditionPresent, p.wait, "")
	if err != nil {
		return "", err
	}
	return el.Attribute(ctx, name)
}

func (p *BasePage) SelectByText(ctx context.Context, target entities.LocatorSet, text string) error {
	el, err := p.waitFor(ctx, target, entities.ConditionVisible, p.wait, "")
	if err != nil {
		return err
	}
	if err := el.SelectByVisibleText(ctx, text); err != nil {
		return &InteractionError{Action: "select by text", Locators: target, Err: err}
	}
	return nil
}

func (p *BasePage) SelectByValue(ctx context.Context, target entities.LocatorSet, value string) error {
	el, err := p.waitFor(ctx, target, entities.ConditionVisible, p.wait, "")
	if err != nil {
		return err
	}
	if err := el.SelectByValue(ctx, value); err != nil {
		return &InteractionError{Action: "select by value", Locators: target, Err: err}
	}
	return nil
}

// IsPresent probes for the element with the short timeout and never errors.
func (p *BasePage) IsPresent(ctx context.Context, target entities.LocatorSet) bool {
	_, err := p.waitFor(ctx, target, entities.ConditionPresent, p.probe, "")
	return err == nil
}

// IsVisible probes for a displayed element with the short timeout.
func (p *BasePage) IsVisible(ctx context.Context, target entities.LocatorSet) bool {
	_, err := p.waitFor(ctx, target, entities.ConditionVisible, p.probe, "")
	return err == nil
}

func (p *BasePage) IsSelected(ctx context.Context, target entities.LocatorSet) bool {
	el, err := p.waitFor(ctx, target, entities.ConditionPresent, p.probe, "")
	if err != nil {
		return false
	}
	selected, err := el.Selected(ctx)
	return err == nil && selected
}

func (p *BasePage) WaitPresent(ctx context.Context, target entities.LocatorSet) (interfaces.Element, error) {
	return p.waitFor(ctx, target, entities.ConditionPresent, p.wait, "")
}

func (p *BasePage) WaitVisible(ctx context.Context, target entities.LocatorSet) (interfaces.Element, error) {
	return p.waitFor(ctx, target, entities.ConditionVisible, p.wait, "")
}

func (p *BasePage) WaitClickable(ctx context.Context, target entities.LocatorSet) (interfaces.Element, error) {
	return p.waitFor(ctx, target, entities.ConditionClickable, p.wait, "")
}

func (p *BasePage) WaitInvisible(ctx context.Context, target entities.LocatorSet) error {
	return p.waitGone(ctx, target, p.wait)
}

// WaitTextIn waits until the element's text contains want.
func (p *BasePage) WaitTextIn(ctx context.Context, target entities.LocatorSet, want string) error {
	_, err := p.waitFor(ctx, target, entities.ConditionTextContains, p.wait, want)
	return err
}

func (p *BasePage) ScrollTo(ctx context.Context, target entities.LocatorSet) error {
	el, err := p.waitFor(ctx, target, entities.ConditionPresent, p.wait, "")
	if err != nil {
		return err
	}
	return el.ScrollIntoView(ctx)
}

func (p *BasePage) Hover(ctx context.Context, target entities.LocatorSet) error {
	el, err := p.waitFor(ctx, target, entities.ConditionVisible, p.wait, "")
	if err != nil {
		return err
	}
	if err := el.Hover(ctx); err != nil {
		return &InteractionError{Action: "hover", Locators: target, Err: err}
	}
	return nil
}

// Navigate opens a path relative to the configured base URL and waits for the
// document to finish loading.
func (p *BasePage) Navigate(ctx context.Context, path string) error {
	url := p.cfg.URLFor(path)
	p.log.Infof("navigating to %s", url)
	if err := p.driver.Navigate(ctx, url); err != nil {
		return err
	}
	p.WaitForPageLoad(ctx)
	return nil
}

func (p *BasePage) CurrentURL(ctx context.Context) (string, error) {
	return p.driver.CurrentURL(ctx)
}

func (p *BasePage) Title(ctx context.Context) (string, error) {
	return p.driver.Title(ctx)
}

// WaitForPageLoad polls document.readyState until the document is complete.
// A slow page is logged, never fatal; the element waits that follow give the
// real verdict.
func (p *BasePage) WaitForPageLoad(ctx context.Context) {
	deadline := time.Now().Add(p.longWait)
	ticker := time.NewTicker(p.poll)
	defer ticker.Stop()

	for {
		state, err := p.driver.ExecuteScript(ctx, "return document.readyState")
		if err == nil {
			if s, ok := state.(string); ok && s == "complete" {
				return
			}
		}
		if time.Now().After(deadline) {
			p.log.Warnf("page did not reach readyState complete within %s", p.longWait)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// WaitLoadingDone handles transient spinners: wait briefly for one to appear,
// then wait for it to clear. A spinner that never shows up at all is fine, so
// both timeouts are swallowed.
func (p *BasePage) WaitLoadingDone(ctx context.Context, spinner entities.LocatorSet) {
	if _, err := p.waitFor(ctx, spinner, entities.ConditionVisible, p.probe, ""); err != nil {
		return
	}
	if err := p.waitGone(ctx, spinner, p.wait); err != nil {
		p.log.Warnf("loading indicator still visible after %s", p.wait)
	}
}

// AcceptAlert confirms a native dialog when one is open. Pages without a
// dialog degrade silently.
func (p *BasePage) AcceptAlert(ctx context.Context) {
	if err := p.driver.AcceptAlert(ctx); err != nil {
		p.log.Debugf("no alert to accept: %v", err)
	}
}

func (p *BasePage) DismissAlert(ctx context.Context) {
	if err := p.driver.DismissAlert(ctx); err != nil {
		p.log.Debugf("no alert to dismiss: %v", err)
	}
}

func (p *BasePage) Refresh(ctx context.Context) error {
	if err := p.driver.Refresh(ctx); err != nil {
		return err
	}
	p.WaitForPageLoad(ctx)
	return nil
}

func (p *BasePage) Screenshot(ctx context.Context) ([]byte, error) {
	return p.driver.Screenshot(ctx)
}

var priceRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ExtractPrice pulls a numeric amount out of a displayed price string.
// Currency symbols and thousands separators are ignored; text with no number
// in it yields zero.
func ExtractPrice(text string) float64 {
	cleaned := strings.ReplaceAll(text, ",", "")
	match := priceRe.FindString(cleaned)
	if match == "" {
		return 0
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return value
}
