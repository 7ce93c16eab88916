package pages

import (
	"context"
	"strings"

	"shop_automation/domain/entities"
)

const WelcomeMessageNotFound = "Welcome message not found"

// DashboardPage drives the post-login landing screen.
type DashboardPage struct {
	*BasePage

	welcomeMessage entities.LocatorSet
	userProfile    entities.LocatorSet
	logoutButton   entities.LocatorSet
	profileSection entities.LocatorSet
	navigationMenu entities.LocatorSet
}

func NewDashboardPage(base *BasePage) *DashboardPage {
	return &DashboardPage{
		BasePage: base,

		welcomeMessage: entities.Target(
			entities.ClassName("welcome-message"),
			entities.XPath("//*[contains(text(), 'Welcome')]"),
		),
		userProfile: entities.Target(entities.ClassName("user-profile")),
		logoutButton: entities.Target(
			entities.ID("logoutButton"),
			entities.XPath("//a[contains(text(), 'Logout')]"),
		),
		profileSection: entities.Target(entities.ClassName("profile-section")),
		navigationMenu: entities.Target(entities.ClassName("nav-menu")),
	}
}

// IsLoaded checks for the welcome banner, falling back to the URL when the
// banner is styled away.
func (p *DashboardPage) IsLoaded(ctx context.Context) bool {
	if p.IsVisible(ctx, p.welcomeMessage) {
		return true
	}
	url, err := p.CurrentURL(ctx)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(url), "dashboard")
}

// IsUserLoggedIn probes for either the profile widget or the logout control.
func (p *DashboardPage) IsUserLoggedIn(ctx context.Context) bool {
	return p.IsPresent(ctx, p.userProfile) || p.IsPresent(ctx, p.logoutButton)
}

func (p *DashboardPage) WelcomeMessage(ctx context.Context) string {
	text, err := p.TextOf(ctx, p.welcomeMessage)
	if err != nil {
		return WelcomeMessageNotFound
	}
	return text
}

func (p *DashboardPage) IsProfileSectionVisible(ctx context.Context) bool {
	return p.IsVisible(ctx, p.profileSection)
}

// ProfileData extracts whatever profile fields the section exposes. Missing
// fields are skipped; the auth provider defaults to local.
func (p *DashboardPage) ProfileData(ctx context.Context) entities.ProfileData {
	data := entities.ProfileData{AuthProvider: "local"}

	section, err := p.waitFor(ctx, p.profileSection, entities.ConditionPresent, p.probe, "")
	if err != nil {
		p.log.Warnf("could not extract profile data: %v", err)
		return data
	}

	if el, err := section.Find(ctx, entities.ClassName("user-name")); err == nil {
		if text, err := el.Text(ctx); err == nil {
			data.Name = text
		}
	}
	if el, err := section.Find(ctx, entities.ClassName("user-email")); err == nil {
		if text, err := el.Text(ctx); err == nil {
			data.Email = text
		}
	}
	if el, err := section.Find(ctx, entities.ClassName("auth-provider")); err == nil {
		if provider, err := el.Attribute(ctx, "data-provider"); err == nil && provider != "" {
			data.AuthProvider = provider
		}
	}
	return data
}

func (p *DashboardPage) Logout(ctx context.Context) error {
	return p.Click(ctx, p.logoutButton)
}
