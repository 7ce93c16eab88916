package pages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_automation/domain/entities"
)

func TestWaitForPrefersEarlierCandidate(t *testing.T) {
	browser := newFakeBrowser()
	primary := entities.ID("searchBox")
	fallback := entities.Name("search")
	browser.elements[primary] = newFakeElement("primary")
	browser.elements[fallback] = newFakeElement("fallback")

	p := newTestBase(browser)
	el, err := p.waitFor(context.Background(), entities.Target(primary, fallback), entities.ConditionVisible, p.wait, "")
	require.NoError(t, err)

	text, _ := el.Text(context.Background())
	assert.Equal(t, "primary", text, "primary candidate must win when both match")
}

func TestWaitForFallbackSharesOneWindow(t *testing.T) {
	browser := newFakeBrowser()
	primary := entities.ID("loginButton")
	fallback := entities.XPath("//button[contains(text(), 'Login')]")
	browser.elements[fallback] = newFakeElement("fallback")

	p := newTestBase(browser)
	start := time.Now()
	el, err := p.waitFor(context.Background(), entities.Target(primary, fallback), entities.ConditionVisible, p.wait, "")
	require.NoError(t, err)

	// The fallback is found on the first sweep, not after a full primary
	// timeout.
	assert.Less(t, time.Since(start), p.wait/2)
	text, _ := el.Text(context.Background())
	assert.Equal(t, "fallback", text)
}

func TestWaitForFindsLateArrival(t *testing.T) {
	browser := newFakeBrowser()
	loc := entities.ClassName("welcome-message")
	browser.elements[loc] = newFakeElement("Welcome back")
	browser.appearAfter[loc] = 3

	p := newTestBase(browser)
	el, err := p.waitFor(context.Background(), entities.Target(loc), entities.ConditionVisible, p.wait, "")
	require.NoError(t, err)

	text, _ := el.Text(context.Background())
	assert.Equal(t, "Welcome back", text)
	assert.Greater(t, browser.findCounts[loc], 3)
}

func TestWaitForTimeoutErrorPayload(t *testing.T) {
	browser := newFakeBrowser()
	target := entities.Target(entities.ID("missing"), entities.Name("missing"))

	p := newTestBase(browser)
	_, err := p.waitFor(context.Background(), target, entities.ConditionClickable, p.wait, "")
	require.Error(t, err)

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, target, timeoutErr.Locators)
	assert.Equal(t, entities.ConditionClickable, timeoutErr.Condition)
	assert.Equal(t, p.wait, timeoutErr.Timeout)
}

func TestWaitForTextContains(t *testing.T) {
	browser := newFakeBrowser()
	loc := entities.ClassName("cart-count")
	browser.elements[loc] = newFakeElement("3 items")

	p := newTestBase(browser)
	require.NoError(t, p.WaitTextIn(context.Background(), entities.Target(loc), "3"))
	require.Error(t, p.WaitTextIn(context.Background(), entities.Target(loc), "7"))
}

func TestWaitForRespectsContextCancellation(t *testing.T) {
	browser := newFakeBrowser()
	target := entities.Target(entities.ID("missing"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newTestBase(browser)
	_, err := p.waitFor(ctx, target, entities.ConditionPresent, time.Minute, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClickFallsBackToScriptClick(t *testing.T) {
	browser := newFakeBrowser()
	loc := entities.ID("placeOrder")
	el := newFakeElement("Place Order")
	el.clickErr = errors.New("element click intercepted")
	browser.elements[loc] = el

	p := newTestBase(browser)
	require.NoError(t, p.Click(context.Background(), entities.Target(loc)))
	assert.Equal(t, 1, el.clicks)
	assert.Equal(t, 1, el.scriptClicks, "script click must be attempted once")
}

func TestClickDisabledElementTimesOut(t *testing.T) {
	browser := newFakeBrowser()
	loc := entities.ID("registerButton")
	el := newFakeElement("Register")
	el.enabled = false
	browser.elements[loc] = el

	p := newTestBase(browser)
	err := p.Click(context.Background(), entities.Target(loc))

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Zero(t, el.clicks)
}

func TestTypeClearsBeforeTyping(t *testing.T) {
	browser := newFakeBrowser()
	loc := entities.ID("email")
	el := newFakeElement("")
	browser.elements[loc] = el

	p := newTestBase(browser)
	require.NoError(t, p.Type(context.Background(), entities.Target(loc), "test@example.com"))
	assert.Equal(t, 1, el.cleared)
	assert.Equal(t, []string{"test@example.com"}, el.typed)
}

func TestIsVisibleNeverErrors(t *testing.T) {
	browser := newFakeBrowser()
	p := newTestBase(browser)

	start := time.Now()
	assert.False(t, p.IsVisible(context.Background(), entities.Target(entities.ID("missing"))))
	// Probes use the short window, not the assertion wait.
	assert.Less(t, time.Since(start), p.wait)

	loc := entities.ClassName("user-profile")
	browser.elements[loc] = newFakeElement("profile")
	assert.True(t, p.IsVisible(context.Background(), entities.Target(loc)))
}

func TestWaitInvisibleWaitsForAllCandidates(t *testing.T) {
	browser := newFakeBrowser()
	loc := entities.ClassName("loading-spinner")
	spinner := newFakeElement("")
	browser.elements[loc] = spinner

	p := newTestBase(browser)

	spinner.displayed = false
	require.NoError(t, p.WaitInvisible(context.Background(), entities.Target(loc)))

	spinner.displayed = true
	err := p.WaitInvisible(context.Background(), entities.Target(loc))
	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, entities.ConditionInvisible, timeoutErr.Condition)
}

func TestWaitLoadingDoneWithoutSpinner(t *testing.T) {
	browser := newFakeBrowser()
	p := newTestBase(browser)

	start := time.Now()
	p.WaitLoadingDone(context.Background(), entities.Target(entities.ClassName("loading-spinner")))
	// Absence of the spinner is not a failure and costs at most the probe.
	assert.Less(t, time.Since(start), p.wait)
}

func TestWaitLoadingDoneStuckSpinnerSwallowed(t *testing.T) {
	browser := newFakeBrowser()
	loc := entities.ClassName("loading-spinner")
	browser.elements[loc] = newFakeElement("")

	p := newTestBase(browser)
	p.WaitLoadingDone(context.Background(), entities.Target(loc))
}

func TestWaitForPageLoadToleratesSlowDocument(t *testing.T) {
	browser := newFakeBrowser()
	browser.scriptResult = "loading"

	p := newTestBase(browser)
	start := time.Now()
	p.WaitForPageLoad(context.Background())
	assert.GreaterOrEqual(t, time.Since(start), p.longWait)
}

func TestNavigateJoinsBaseURL(t *testing.T) {
	browser := newFakeBrowser()
	p := newTestBase(browser)

	require.NoError(t, p.Navigate(context.Background(), "/login"))
	require.Len(t, browser.navigated, 1)
	assert.Equal(t, "http://app.local/login", browser.navigated[0])
}

func TestExtractPrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"$123.45", 123.45},
		{"$1,234.56", 1234.56},
		{"£99.99", 99.99},
		{"Price: $10", 10},
		{"42", 42},
		{"free", 0},
		{"", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractPrice(tc.in), "input %q", tc.in)
	}
}
