package pages

import (
	"context"
	"fmt"

	"shop_automation/domain/entities"
)

const FieldErrorNotFound = "Field error not found"

// RegistrationPage drives the account sign-up form.
type RegistrationPage struct {
	*BasePage

	fields         map[string]entities.LocatorSet
	terms          entities.LocatorSet
	registerButton entities.LocatorSet
	successMessage entities.LocatorSet
	errorMessage   entities.LocatorSet
	spinner        entities.LocatorSet
}

func NewRegistrationPage(base *BasePage) *RegistrationPage {
	return &RegistrationPage{
		BasePage: base,

		fields: map[string]entities.LocatorSet{
			"first_name":       entities.Target(entities.ID("firstName"), entities.Name("first_name")),
			"last_name":        entities.Target(entities.ID("lastName"), entities.Name("last_name")),
			"email":            entities.Target(entities.ID("email"), entities.Name("email")),
			"password":         entities.Target(entities.ID("password"), entities.Name("password")),
			"confirm_password": entities.Target(entities.ID("confirmPassword"), entities.Name("confirm_password")),
			"phone":            entities.Target(entities.ID("phone"), entities.Name("phone")),
		},
		terms: entities.Target(entities.ID("termsAndConditions"), entities.Name("terms")),
		registerButton: entities.Target(
			entities.ID("registerButton"),
			entities.XPath("//button[contains(text(), 'Register')]"),
		),
		successMessage: entities.Target(
			entities.ClassName("success-message"),
			entities.ClassName("alert-success"),
			entities.ClassName("success"),
			entities.XPath("//*[contains(@class, 'success')]"),
			entities.XPath("//*[contains(text(), 'successful')]"),
		),
		errorMessage: entities.Target(
			entities.ClassName("error-message"),
			entities.ClassName("alert-danger"),
			entities.ClassName("error"),
			entities.ClassName("field-error"),
			entities.XPath("//*[contains(@class, 'error')]"),
			entities.XPath("//*[contains(@class, 'danger')]"),
		),
		spinner: entities.Target(entities.ClassName("loading-spinner")),
	}
}

func (p *RegistrationPage) Open(ctx context.Context) error {
	return p.Navigate(ctx, "/register")
}

func (p *RegistrationPage) IsLoaded(ctx context.Context) bool {
	return p.IsVisible(ctx, p.registerButton)
}

// EnterField types into a form field by its logical name. Unknown names are
// logged and skipped so data-driven scenarios keep going.
func (p *RegistrationPage) EnterField(ctx context.Context, name, value string) error {
	target, ok := p.fields[name]
	if !ok {
		p.log.Warnf("unknown registration field: %s", name)
		return nil
	}
	return p.Type(ctx, target, value)
}

// FillForm enters every non-empty field of user into the form.
func (p *RegistrationPage) FillForm(ctx context.Context, user entities.User) error {
	values := map[string]string{
		"first_name":       user.FirstName,
		"last_name":        user.LastName,
		"email":            user.Email,
		"password":         user.Password,
		"confirm_password": user.ConfirmPassword,
		"phone":            user.Phone,
	}
	for _, name := range []string{"first_name", "last_name", "email", "password", "confirm_password", "phone"} {
		if values[name] == "" {
			continue
		}
		if err := p.EnterField(ctx, name, values[name]); err != nil {
			return err
		}
	}
	return nil
}

func (p *RegistrationPage) AcceptTerms(ctx context.Context) error {
	if p.IsSelected(ctx, p.terms) {
		return nil
	}
	return p.Click(ctx, p.terms)
}

func (p *RegistrationPage) ClickRegister(ctx context.Context) error {
	if err := p.Click(ctx, p.registerButton); err != nil {
		return err
	}
	p.WaitLoadingDone(ctx, p.spinner)
	return nil
}

// Register fills the form, optionally accepts the terms, and submits.
func (p *RegistrationPage) Register(ctx context.Context, user entities.User, acceptTerms bool) error {
	if err := p.FillForm(ctx, user); err != nil {
		return err
	}
	if acceptTerms {
		if err := p.AcceptTerms(ctx); err != nil {
			return err
		}
	}
	return p.ClickRegister(ctx)
}

func (p *RegistrationPage) SuccessMessage(ctx context.Context) string {
	text, err := p.TextOf(ctx, p.successMessage)
	if err != nil {
		return SuccessMessageNotFound
	}
	return text
}

func (p *RegistrationPage) ErrorMessage(ctx context.Context) string {
	text, err := p.TextOf(ctx, p.errorMessage)
	if err != nil {
		return ErrorMessageNotFound
	}
	return text
}

// FieldError returns the validation message attached to one field, or a
// sentinel when the field renders no error.
func (p *RegistrationPage) FieldError(ctx context.Context, name string) string {
	ids := map[string]string{
		"first_name":       "firstName-error",
		"last_name":        "lastName-error",
		"email":            "email-error",
		"password":         "password-error",
		"confirm_password": "confirmPassword-error",
		"phone":            "phone-error",
	}
	id, ok := ids[name]
	if !ok {
		return "Unknown field"
	}

	target := entities.Target(
		entities.ID(id),
		entities.XPath(fmt.Sprintf("//input[@id='%s']/..//span[@class='error']", name)),
	)
	text, err := p.TextOf(ctx, target)
	if err != nil {
		return FieldErrorNotFound
	}
	return text
}

// ClearAllFields empties the form, skipping fields that are absent.
func (p *RegistrationPage) ClearAllFields(ctx context.Context) {
	for _, target := range p.fields {
		el, err := p.waitFor(ctx, target, entities.ConditionPresent, p.probe, "")
		if err != nil {
			continue
		}
		_ = el.Clear(ctx)
	}
}
