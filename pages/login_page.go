package pages

import (
	"context"

	"shop_automation/domain/entities"
)

// Sentinel texts returned by the lenient message accessors when no matching
// element shows up. Assertions compare against page copy, so a literal marker
// reads better in a failure report than a wrapped timeout.
const (
	ErrorMessageNotFound   = "Error message not found"
	SuccessMessageNotFound = "Success message not found"
)

// LoginPage drives the sign-in screen.
type LoginPage struct {
	*BasePage

	email          entities.LocatorSet
	password       entities.LocatorSet
	loginButton    entities.LocatorSet
	rememberMe     entities.LocatorSet
	forgotPassword entities.LocatorSet
	googleLogin    entities.LocatorSet
	facebookLogin  entities.LocatorSet
	registerLink   entities.LocatorSet
	errorMessage   entities.LocatorSet
	successMessage entities.LocatorSet
	spinner        entities.LocatorSet
}

func NewLoginPage(base *BasePage) *LoginPage {
	return &LoginPage{
		BasePage: base,

		email:    entities.Target(entities.ID("email"), entities.Name("email")),
		password: entities.Target(entities.ID("password"), entities.Name("password")),
		loginButton: entities.Target(
			entities.ID("loginButton"),
			entities.XPath("//button[contains(text(), 'Login') or contains(text(), 'Sign In')]"),
		),
		rememberMe:     entities.Target(entities.ID("rememberMe"), entities.Name("remember")),
		forgotPassword: entities.Target(entities.LinkText("Forgot Password?")),
		googleLogin: entities.Target(
			entities.ID("googleLogin"),
			entities.XPath("//button[contains(text(), 'Google')]"),
		),
		facebookLogin: entities.Target(entities.ID("facebookLogin")),
		registerLink:  entities.Target(entities.LinkText("Create Account")),
		errorMessage: entities.Target(
			entities.ClassName("error-message"),
			entities.ClassName("alert-danger"),
			entities.ClassName("error"),
			entities.XPath("//*[contains(@class, 'error')]"),
			entities.XPath("//*[contains(text(), 'Invalid') or contains(text(), 'incorrect')]"),
		),
		successMessage: entities.Target(entities.ClassName("success-message")),
		spinner:        entities.Target(entities.ClassName("loading-spinner")),
	}
}

func (p *LoginPage) Open(ctx context.Context) error {
	return p.Navigate(ctx, "/login")
}

// IsLoaded probes for the login button and never errors.
func (p *LoginPage) IsLoaded(ctx context.Context) bool {
	return p.IsVisible(ctx, p.loginButton)
}

func (p *LoginPage) EnterEmail(ctx context.Context, email string) error {
	return p.Type(ctx, p.email, email)
}

func (p *LoginPage) EnterPassword(ctx context.Context, password string) error {
	return p.Type(ctx, p.password, password)
}

func (p *LoginPage) ClickLogin(ctx context.Context) error {
	if err := p.Click(ctx, p.loginButton); err != nil {
		return err
	}
	p.WaitLoadingDone(ctx, p.spinner)
	return nil
}

// CheckRememberMe ticks the checkbox when it is not already ticked.
func (p *LoginPage) CheckRememberMe(ctx context.Context) error {
	if p.IsSelected(ctx, p.rememberMe) {
		return nil
	}
	return p.Click(ctx, p.rememberMe)
}

func (p *LoginPage) ClickForgotPassword(ctx context.Context) error {
	return p.Click(ctx, p.forgotPassword)
}

func (p *LoginPage) ClickGoogleLogin(ctx context.Context) error {
	return p.Click(ctx, p.googleLogin)
}

func (p *LoginPage) ClickFacebookLogin(ctx context.Context) error {
	return p.Click(ctx, p.facebookLogin)
}

func (p *LoginPage) ClickRegisterLink(ctx context.Context) error {
	return p.Click(ctx, p.registerLink)
}

// ErrorMessage returns the visible error text, or a sentinel when none of the
// error candidates render.
func (p *LoginPage) ErrorMessage(ctx context.Context) string {
	text, err := p.TextOf(ctx, p.errorMessage)
	if err != nil {
		return ErrorMessageNotFound
	}
	return text
}

func (p *LoginPage) SuccessMessage(ctx context.Context) string {
	text, err := p.TextOf(ctx, p.successMessage)
	if err != nil {
		return SuccessMessageNotFound
	}
	return text
}

// Login runs the full sign-in flow and hands back the dashboard the app lands
// on afterwards.
func (p *LoginPage) Login(ctx context.Context, email, password string, rememberMe bool) (*DashboardPage, error) {
	if err := p.EnterEmail(ctx, email); err != nil {
		return nil, err
	}
	if err := p.EnterPassword(ctx, password); err != nil {
		return nil, err
	}
	if rememberMe {
		if err := p.CheckRememberMe(ctx); err != nil {
			return nil, err
		}
	}
	if err := p.ClickLogin(ctx); err != nil {
		return nil, err
	}
	return NewDashboardPage(p.BasePage), nil
}

// ClearForm empties both credential fields, ignoring ones that are absent.
func (p *LoginPage) ClearForm(ctx context.Context) {
	for _, target := range []entities.LocatorSet{p.email, p.password} {
		el, err := p.waitFor(ctx, target, entities.ConditionPresent, p.probe, "")
		if err != nil {
			continue
		}
		_ = el.Clear(ctx)
	}
}
