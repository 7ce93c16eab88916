package pages

import (
	"context"
	"regexp"
	"strings"

	"shop_automation/domain/entities"
)

const NoErrorMessageFound = "No error message found"

// CheckoutPage drives the shipping and payment forms and order placement.
type CheckoutPage struct {
	*BasePage

	shippingFields map[string]entities.LocatorSet
	paymentMethod  entities.LocatorSet
	paymentFields  map[string]entities.LocatorSet

	orderSummary entities.LocatorSet
	orderTotal   entities.LocatorSet

	placeOrderButton entities.LocatorSet
	errorMessage     entities.LocatorSet
	successMessage   entities.LocatorSet
}

func NewCheckoutPage(base *BasePage) *CheckoutPage {
	return &CheckoutPage{
		BasePage: base,

		shippingFields: map[string]entities.LocatorSet{
			"address": entities.Target(entities.ID("address")),
			"city":    entities.Target(entities.ID("city")),
			"state":   entities.Target(entities.ID("state")),
			"zip":     entities.Target(entities.ID("zip")),
			"country": entities.Target(entities.ID("country")),
		},
		paymentMethod: entities.Target(entities.ID("paymentMethod")),
		paymentFields: map[string]entities.LocatorSet{
			"card_number": entities.Target(entities.ID("cardNumber")),
			"expiry":      entities.Target(entities.ID("expiry")),
			"cvv":         entities.Target(entities.ID("cvv")),
			"name":        entities.Target(entities.ID("cardholderName")),
		},

		orderSummary: entities.Target(entities.ClassName("order-summary")),
		orderTotal:   entities.Target(entities.ClassName("order-total")),

		placeOrderButton: entities.Target(entities.ID("placeOrder")),
		errorMessage:     entities.Target(entities.ClassName("error-message")),
		successMessage:   entities.Target(entities.ClassName("success-message")),
	}
}

func (p *CheckoutPage) IsLoaded(ctx context.Context) bool {
	if p.IsVisible(ctx, p.placeOrderButton) {
		return true
	}
	url, err := p.CurrentURL(ctx)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(url), "checkout")
}

// EnterShippingField types into a shipping field by its logical name. Unknown
// names are logged and skipped.
func (p *CheckoutPage) EnterShippingField(ctx context.Context, name, value string) error {
	target, ok := p.shippingFields[name]
	if !ok {
		p.log.Warnf("unknown shipping field: %s", name)
		return nil
	}
	return p.Type(ctx, target, value)
}

// FillShipping enters every non-empty field of info.
func (p *CheckoutPage) FillShipping(ctx context.Context, info entities.ShippingInfo) error {
	values := []struct{ name, value string }{
		{"address", info.Address},
		{"city", info.City},
		{"state", info.State},
		{"zip", info.Zip},
		{"country", info.Country},
	}
	for _, f := range values {
		if f.value == "" {
			continue
		}
		if err := p.EnterShippingField(ctx, f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

func (p *CheckoutPage) SelectPaymentMethod(ctx context.Context, method string) error {
	return p.SelectByText(ctx, p.paymentMethod, method)
}

func (p *CheckoutPage) EnterPaymentField(ctx context.Context, name, value string) error {
	target, ok := p.paymentFields[name]
	if !ok {
		p.log.Warnf("unknown payment field: %s", name)
		return nil
	}
	return p.Type(ctx, target, value)
}

// FillPayment enters the card details.
func (p *CheckoutPage) FillPayment(ctx context.Context, card entities.PaymentCard) error {
	values := []struct{ name, value string }{
		{"card_number", card.Number},
		{"expiry", card.Expiry},
		{"cvv", card.CVV},
		{"name", card.HolderName},
	}
	for _, f := range values {
		if f.value == "" {
			continue
		}
		if err := p.EnterPaymentField(ctx, f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

func (p *CheckoutPage) OrderTotal(ctx context.Context) (string, error) {
	return p.TextOf(ctx, p.orderTotal)
}

func (p *CheckoutPage) PlaceOrder(ctx context.Context) (*OrderConfirmationPage, error) {
	if err := p.Click(ctx, p.placeOrderButton); err != nil {
		return nil, err
	}
	return NewOrderConfirmationPage(p.BasePage), nil
}

func (p *CheckoutPage) ErrorMessage(ctx context.Context) string {
	text, err := p.TextOf(ctx, p.errorMessage)
	if err != nil {
		return NoErrorMessageFound
	}
	return text
}

// OrderConfirmationPage drives the screen shown after a successful order.
type OrderConfirmationPage struct {
	*BasePage

	orderID      entities.LocatorSet
	confirmation entities.LocatorSet
	orderDetails entities.LocatorSet
}

func NewOrderConfirmationPage(base *BasePage) *OrderConfirmationPage {
	return &OrderConfirmationPage{
		BasePage: base,

		orderID:      entities.Target(entities.ClassName("order-id")),
		confirmation: entities.Target(entities.ClassName("confirmation-message")),
		orderDetails: entities.Target(entities.ClassName("order-details")),
	}
}

func (p *OrderConfirmationPage) IsDisplayed(ctx context.Context) bool {
	return p.IsVisible(ctx, p.confirmation)
}

var orderIDRe = regexp.MustCompile(`[A-Z0-9]{6,}`)

// OrderID extracts the order identifier from the confirmation text, empty
// when no identifier can be found.
func (p *OrderConfirmationPage) OrderID(ctx context.Context) string {
	text, err := p.TextOf(ctx, p.orderID)
	if err != nil {
		return ""
	}
	return orderIDRe.FindString(text)
}
