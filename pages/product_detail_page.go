package pages

import (
	"context"
	"strconv"
	"strings"
	"time"

	"shop_automation/domain/entities"
)

const StockInfoNotAvailable = "Stock information not available"

// ProductDetailPage drives a single product view.
type ProductDetailPage struct {
	*BasePage

	title       entities.LocatorSet
	price       entities.LocatorSet
	description entities.LocatorSet
	stockStatus entities.LocatorSet
	stockMsg    entities.LocatorSet

	quantityInput entities.LocatorSet
	quantityPlus  entities.LocatorSet
	quantityMinus entities.LocatorSet

	addToCart  entities.LocatorSet
	buyNow     entities.LocatorSet
	wishlist   entities.LocatorSet
	reviewCnt  entities.LocatorSet
	ratingStar entities.LocatorSet
}

func NewProductDetailPage(base *BasePage) *ProductDetailPage {
	return &ProductDetailPage{
		BasePage: base,

		title:       entities.Target(entities.ClassName("product-title")),
		price:       entities.Target(entities.ClassName("product-price")),
		description: entities.Target(entities.ClassName("product-description")),
		stockStatus: entities.Target(entities.ClassName("stock-status")),
		stockMsg:    entities.Target(entities.ClassName("stock-message")),

		quantityInput: entities.Target(entities.ID("quantity"), entities.Name("quantity")),
		quantityPlus:  entities.Target(entities.ClassName("quantity-plus")),
		quantityMinus: entities.Target(entities.ClassName("quantity-minus")),

		addToCart: entities.Target(
			entities.ID("addToCart"),
			entities.XPath("//button[contains(text(), 'Add to Cart')]"),
		),
		buyNow:     entities.Target(entities.ID("buyNow")),
		wishlist:   entities.Target(entities.ID("addToWishlist")),
		reviewCnt:  entities.Target(entities.ClassName("review-count")),
		ratingStar: entities.Target(entities.ClassName("rating-stars")),
	}
}

// IsLoaded requires both the title and the add-to-cart control.
func (p *ProductDetailPage) IsLoaded(ctx context.Context) bool {
	return p.IsVisible(ctx, p.title) && p.IsVisible(ctx, p.addToCart)
}

func (p *ProductDetailPage) Title(ctx context.Context) (string, error) {
	return p.TextOf(ctx, p.title)
}

func (p *ProductDetailPage) Price(ctx context.Context) (string, error) {
	return p.TextOf(ctx, p.price)
}

func (p *ProductDetailPage) Description(ctx context.Context) (string, error) {
	return p.TextOf(ctx, p.description)
}

// StockStatus is lenient: a page without a stock badge reads as Unknown.
func (p *ProductDetailPage) StockStatus(ctx context.Context) string {
	text, err := p.TextOf(ctx, p.stockStatus)
	if err != nil {
		return "Unknown"
	}
	return text
}

func (p *ProductDetailPage) StockMessage(ctx context.Context) string {
	text, err := p.TextOf(ctx, p.stockMsg)
	if err != nil {
		return StockInfoNotAvailable
	}
	return text
}

func (p *ProductDetailPage) IsInStock(ctx context.Context) bool {
	status := strings.ToLower(p.StockStatus(ctx))
	return strings.Contains(status, "in stock") || strings.Contains(status, "available")
}

// Quantity reads the quantity input, defaulting to 1 when it is absent or
// holds something non-numeric.
func (p *ProductDetailPage) Quantity(ctx context.Context) int {
	value, err := p.AttributeOf(ctx, p.quantityInput, "value")
	if err != nil {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 1
	}
	return n
}

func (p *ProductDetailPage) SetQuantity(ctx context.Context, quantity int) error {
	return p.Type(ctx, p.quantityInput, strconv.Itoa(quantity))
}

func (p *ProductDetailPage) IncreaseQuantity(ctx context.Context) error {
	return p.Click(ctx, p.quantityPlus)
}

func (p *ProductDetailPage) DecreaseQuantity(ctx context.Context) error {
	return p.Click(ctx, p.quantityMinus)
}

func (p *ProductDetailPage) AddToCart(ctx context.Context) error {
	if err := p.Click(ctx, p.addToCart); err != nil {
		return err
	}
	p.waitForCartUpdate(ctx)
	return nil
}

// BuyNow skips the cart and lands on checkout.
func (p *ProductDetailPage) BuyNow(ctx context.Context) (*CheckoutPage, error) {
	if err := p.Click(ctx, p.buyNow); err != nil {
		return nil, err
	}
	return NewCheckoutPage(p.BasePage), nil
}

func (p *ProductDetailPage) AddToWishlist(ctx context.Context) error {
	return p.Click(ctx, p.wishlist)
}

// waitForCartUpdate lets the cart badge animation finish.
func (p *ProductDetailPage) waitForCartUpdate(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
	}
}

// ReviewCount reads the "N reviews" badge, zero when absent.
func (p *ProductDetailPage) ReviewCount(ctx context.Context) int {
	text, err := p.TextOf(ctx, p.reviewCnt)
	if err != nil {
		return 0
	}
	match := countRe.FindString(text)
	if match == "" {
		return 0
	}
	n, _ := strconv.Atoi(match)
	return n
}

// Rating reads the data-rating attribute, falling back to counting filled
// stars, and zero when neither works.
func (p *ProductDetailPage) Rating(ctx context.Context) float64 {
	el, err := p.waitFor(ctx, p.ratingStar, entities.ConditionPresent, p.probe, "")
	if err != nil {
		return 0
	}
	if raw, err := el.Attribute(ctx, "data-rating"); err == nil && raw != "" {
		if rating, err := strconv.ParseFloat(raw, 64); err == nil {
			return rating
		}
	}
	stars, err := el.FindAll(ctx, entities.ClassName("star-filled"))
	if err != nil {
		return 0
	}
	return float64(len(stars))
}
