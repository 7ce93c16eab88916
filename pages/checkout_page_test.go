package pages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_automation/domain/entities"
)

func TestFillShippingAndPayment(t *testing.T) {
	browser := newFakeBrowser()
	fields := map[string]*fakeElement{}
	for _, id := range []string{"address", "city", "state", "zip", "country", "cardNumber", "expiry", "cvv", "cardholderName"} {
		el := newFakeElement("")
		fields[id] = el
		browser.elements[entities.ID(id)] = el
	}
	method := newFakeElement("")
	browser.elements[entities.ID("paymentMethod")] = method

	page := NewCheckoutPage(newTestBase(browser))
	ctx := context.Background()

	require.NoError(t, page.FillShipping(ctx, entities.ShippingInfo{
		Address: "123 Test Street",
		City:    "Testville",
		State:   "CA",
		Zip:     "90210",
		Country: "USA",
	}))
	require.NoError(t, page.SelectPaymentMethod(ctx, "Credit Card"))
	require.NoError(t, page.FillPayment(ctx, entities.PaymentCard{
		Number:     "4111111111111111",
		Expiry:     "12/30",
		CVV:        "123",
		HolderName: "Test User",
	}))

	assert.Equal(t, []string{"123 Test Street"}, fields["address"].typed)
	assert.Equal(t, []string{"90210"}, fields["zip"].typed)
	assert.Equal(t, []string{"Credit Card"}, method.selectedTexts)
	assert.Equal(t, []string{"4111111111111111"}, fields["cardNumber"].typed)
}

func TestFillShippingSkipsEmptyFields(t *testing.T) {
	browser := newFakeBrowser()
	address := newFakeElement("")
	browser.elements[entities.ID("address")] = address

	page := NewCheckoutPage(newTestBase(browser))
	// Only the address is set; absent city/state/zip inputs must not matter.
	require.NoError(t, page.FillShipping(context.Background(), entities.ShippingInfo{
		Address: "123 Test Street",
	}))
	assert.Equal(t, []string{"123 Test Street"}, address.typed)
}

func TestUnknownFieldNamesAreSkipped(t *testing.T) {
	browser := newFakeBrowser()
	page := NewCheckoutPage(newTestBase(browser))
	ctx := context.Background()

	assert.NoError(t, page.EnterShippingField(ctx, "planet", "Mars"))
	assert.NoError(t, page.EnterPaymentField(ctx, "iban", "DE00"))
}

func TestCheckoutErrorMessageSentinel(t *testing.T) {
	browser := newFakeBrowser()
	page := NewCheckoutPage(newTestBase(browser))
	ctx := context.Background()

	assert.Equal(t, NoErrorMessageFound, page.ErrorMessage(ctx))

	browser.elements[entities.ClassName("error-message")] = newFakeElement("Card declined")
	assert.Equal(t, "Card declined", page.ErrorMessage(ctx))
}

func TestPlaceOrderReturnsConfirmationPage(t *testing.T) {
	browser := newFakeBrowser()
	button := newFakeElement("Place Order")
	browser.elements[entities.ID("placeOrder")] = button

	page := NewCheckoutPage(newTestBase(browser))
	confirmation, err := page.PlaceOrder(context.Background())
	require.NoError(t, err)
	require.NotNil(t, confirmation)
	assert.Equal(t, 1, button.clicks)
}

func TestOrderIDExtraction(t *testing.T) {
	browser := newFakeBrowser()
	page := NewOrderConfirmationPage(newTestBase(browser))
	ctx := context.Background()

	// No order-id element at all.
	assert.Empty(t, page.OrderID(ctx))

	browser.elements[entities.ClassName("order-id")] = newFakeElement("Your order number is ORD123456, thank you!")
	assert.Equal(t, "ORD123456", page.OrderID(ctx))

	browser.elements[entities.ClassName("order-id")] = newFakeElement("no identifier here")
	assert.Empty(t, page.OrderID(ctx))
}

func TestConfirmationIsDisplayed(t *testing.T) {
	browser := newFakeBrowser()
	page := NewOrderConfirmationPage(newTestBase(browser))
	ctx := context.Background()

	assert.False(t, page.IsDisplayed(ctx))

	browser.elements[entities.ClassName("confirmation-message")] = newFakeElement("Thank you for your order")
	assert.True(t, page.IsDisplayed(ctx))
}
