package pages

import (
	"context"
	"strconv"
	"strings"
	"time"

	"shop_automation/domain/entities"
	"shop_automation/domain/interfaces"
)

// CartPage drives the shopping cart: line items, quantity edits, removal and
// the handoff to checkout.
type CartPage struct {
	*BasePage

	cartItems entities.Locator

	subtotal entities.LocatorSet
	tax      entities.LocatorSet
	shipping entities.LocatorSet
	total    entities.LocatorSet

	proceedToCheckout entities.LocatorSet
	continueShopping  entities.LocatorSet
	clearCart         entities.LocatorSet
	emptyMessage      entities.LocatorSet
}

func NewCartPage(base *BasePage) *CartPage {
	return &CartPage{
		BasePage: base,

		cartItems: entities.ClassName("cart-item"),

		subtotal: entities.Target(entities.ClassName("cart-subtotal")),
		tax:      entities.Target(entities.ClassName("cart-tax")),
		shipping: entities.Target(entities.ClassName("cart-shipping")),
		total:    entities.Target(entities.ClassName("cart-total")),

		proceedToCheckout: entities.Target(
			entities.ID("proceedToCheckout"),
			entities.XPath("//button[contains(text(), 'Checkout')]"),
		),
		continueShopping: entities.Target(entities.ID("continueShopping")),
		clearCart:        entities.Target(entities.ID("clearCart")),
		emptyMessage:     entities.Target(entities.ClassName("empty-cart-message")),
	}
}

func (p *CartPage) Open(ctx context.Context) error {
	return p.Navigate(ctx, "/cart")
}

func (p *CartPage) IsLoaded(ctx context.Context) bool {
	url, err := p.CurrentURL(ctx)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(url), "cart")
}

func (p *CartPage) IsEmpty(ctx context.Context) bool {
	return p.IsVisible(ctx, p.emptyMessage)
}

// Items extracts the cart line items. A malformed row is logged and skipped.
func (p *CartPage) Items(ctx context.Context) []entities.CartItem {
	rows, err := p.driver.FindAll(ctx, p.cartItems)
	if err != nil {
		return nil
	}

	var items []entities.CartItem
	for i, row := range rows {
		item, err := p.readCartRow(ctx, i, row)
		if err != nil {
			p.log.Warnf("could not extract details for cart item %d: %v", i, err)
			continue
		}
		items = append(items, item)
	}
	return items
}

func (p *CartPage) readCartRow(ctx context.Context, index int, row interfaces.Element) (entities.CartItem, error) {
	name, err := childText(ctx, row, entities.ClassName("item-name"))
	if err != nil {
		return entities.CartItem{}, err
	}
	price, err := childText(ctx, row, entities.ClassName("item-price"))
	if err != nil {
		return entities.CartItem{}, err
	}
	total, err := childText(ctx, row, entities.ClassName("item-total"))
	if err != nil {
		return entities.CartItem{}, err
	}

	// A non-numeric quantity cell means the count lives in an input; treat it
	// as one unit.
	quantity := 1
	if qtyText, err := childText(ctx, row, entities.ClassName("item-quantity")); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(qtyText)); err == nil {
			quantity = n
		}
	}

	return entities.CartItem{
		Index:     index,
		Name:      name,
		PriceText: price,
		Quantity:  quantity,
		TotalText: total,
	}, nil
}

func childText(ctx context.Context, parent interfaces.Element, loc entities.Locator) (string, error) {
	el, err := parent.Find(ctx, loc)
	if err != nil {
		return "", err
	}
	return el.Text(ctx)
}

func (p *CartPage) Total(ctx context.Context) (string, error) {
	return p.TextOf(ctx, p.total)
}

func (p *CartPage) Subtotal(ctx context.Context) (string, error) {
	return p.TextOf(ctx, p.subtotal)
}

// Tax is lenient: carts without a tax row read as $0.00.
func (p *CartPage) Tax(ctx context.Context) string {
	text, err := p.TextOf(ctx, p.tax)
	if err != nil {
		return "$0.00"
	}
	return text
}

func (p *CartPage) Shipping(ctx context.Context) string {
	text, err := p.TextOf(ctx, p.shipping)
	if err != nil {
		return "$0.00"
	}
	return text
}

// findRowByName returns the first cart row whose item-name contains name,
// case-insensitively.
func (p *CartPage) findRowByName(ctx context.Context, name string) (interfaces.Element, error) {
	rows, err := p.driver.FindAll(ctx, p.cartItems)
	if err != nil {
		return nil, &NotFoundError{Kind: "product in cart", Name: name}
	}
	want := strings.ToLower(name)
	for _, row := range rows {
		text, err := childText(ctx, row, entities.ClassName("item-name"))
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(text), want) {
			return row, nil
		}
	}
	return nil, &NotFoundError{Kind: "product in cart", Name: name}
}

// UpdateQuantity sets a new quantity on the row matching productName. The row
// is committed through its update button when one exists, otherwise by
// pressing Enter in the input.
func (p *CartPage) UpdateQuantity(ctx context.Context, productName string, quantity int) error {
	row, err := p.findRowByName(ctx, productName)
	if err != nil {
		return err
	}

	input, err := row.Find(ctx, entities.CSS("input[name='quantity']"))
	if err != nil {
		return &InteractionError{Action: "update quantity", Locators: entities.Target(p.cartItems), Err: err}
	}
	if err := input.Clear(ctx); err != nil {
		return &InteractionError{Action: "update quantity", Locators: entities.Target(p.cartItems), Err: err}
	}
	if err := input.SendKeys(ctx, strconv.Itoa(quantity)); err != nil {
		return &InteractionError{Action: "update quantity", Locators: entities.Target(p.cartItems), Err: err}
	}

	if updateBtn, err := row.Find(ctx, entities.ClassName("update-quantity")); err == nil {
		if err := updateBtn.Click(ctx); err != nil {
			return &InteractionError{Action: "update quantity", Locators: entities.Target(p.cartItems), Err: err}
		}
	} else if err := input.SendKeys(ctx, entities.KeyEnter); err != nil {
		return &InteractionError{Action: "update quantity", Locators: entities.Target(p.cartItems), Err: err}
	}

	p.waitForCartUpdate(ctx)
	return nil
}

// RemoveItem removes the row matching productName, confirming the native
// dialog when one appears.
func (p *CartPage) RemoveItem(ctx context.Context, productName string) error {
	row, err := p.findRowByName(ctx, productName)
	if err != nil {
		return err
	}
	removeBtn, err := row.Find(ctx, entities.ClassName("remove-item"))
	if err != nil {
		return &InteractionError{Action: "remove item", Locators: entities.Target(p.cartItems), Err: err}
	}
	if err := removeBtn.Click(ctx); err != nil {
		return &InteractionError{Action: "remove item", Locators: entities.Target(p.cartItems), Err: err}
	}
	p.AcceptAlert(ctx)
	p.waitForCartUpdate(ctx)
	return nil
}

// Clear empties the cart through the clear button, falling back to removing
// rows one by one when the page has no such button. A row whose remove
// control fails is skipped.
func (p *CartPage) Clear(ctx context.Context) {
	if err := p.Click(ctx, p.clearCart); err == nil {
		p.AcceptAlert(ctx)
		p.waitForCartUpdate(ctx)
		return
	}

	rows, err := p.driver.FindAll(ctx, p.cartItems)
	if err != nil {
		return
	}
	for _, row := range rows {
		removeBtn, err := row.Find(ctx, entities.ClassName("remove-item"))
		if err != nil {
			continue
		}
		if err := removeBtn.Click(ctx); err != nil {
			continue
		}
		p.AcceptAlert(ctx)
	}
}

func (p *CartPage) ProceedToCheckout(ctx context.Context) (*CheckoutPage, error) {
	if err := p.Click(ctx, p.proceedToCheckout); err != nil {
		return nil, err
	}
	return NewCheckoutPage(p.BasePage), nil
}

func (p *CartPage) ContinueShopping(ctx context.Context) (*ProductsPage, error) {
	if err := p.Click(ctx, p.continueShopping); err != nil {
		return nil, err
	}
	return NewProductsPage(p.BasePage), nil
}

// waitForCartUpdate lets the cart recalculate before the next read.
func (p *CartPage) waitForCartUpdate(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
	}
}
