package pages

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_automation/domain/entities"
)

func productCard(title, price string) *fakeElement {
	card := newFakeElement(title + " " + price)
	card.children[entities.ClassName("product-title")] = newFakeElement(title)
	card.children[entities.ClassName("product-price")] = newFakeElement(price)
	return card
}

func TestDisplayedProductsSkipsMalformedCard(t *testing.T) {
	browser := newFakeBrowser()
	broken := newFakeElement("broken card")
	// No product-price child, so extraction of this card fails.
	broken.children[entities.ClassName("product-title")] = newFakeElement("Broken")

	browser.lists[entities.ClassName("product-item")] = []*fakeElement{
		productCard("Laptop Pro", "$1,299.00"),
		broken,
		productCard("Laptop Air", "$999.50"),
	}

	page := NewProductsPage(newTestBase(browser))
	products := page.DisplayedProducts(context.Background())

	require.Len(t, products, 2, "malformed card must be skipped, not fatal")
	assert.Equal(t, 0, products[0].Index)
	assert.Equal(t, 2, products[1].Index, "index reflects on-page position")
	assert.Equal(t, "Laptop Pro", products[0].Title)
	assert.Equal(t, 1299.0, products[0].Price)
	assert.Equal(t, "$1,299.00", products[0].PriceText)
	assert.Equal(t, "Unknown", products[0].Category)
}

func TestDisplayedProductsReadsOptionalFields(t *testing.T) {
	browser := newFakeBrowser()
	card := productCard("Laptop Pro", "$1,299.00")
	card.children[entities.ClassName("product-category")] = newFakeElement("Electronics")
	card.children[entities.ClassName("product-brand")] = newFakeElement("Acme")
	browser.lists[entities.ClassName("product-item")] = []*fakeElement{card}

	page := NewProductsPage(newTestBase(browser))
	products := page.DisplayedProducts(context.Background())

	require.Len(t, products, 1)
	assert.Equal(t, "Electronics", products[0].Category)
	assert.Equal(t, "Acme", products[0].Brand)
}

func TestClickProductByTitleNotFound(t *testing.T) {
	browser := newFakeBrowser()
	browser.lists[entities.ClassName("product-item")] = []*fakeElement{
		productCard("Laptop Pro", "$1,299.00"),
	}

	page := NewProductsPage(newTestBase(browser))
	_, err := page.ClickProductByTitle(context.Background(), "Desktop Tower")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Desktop Tower", notFound.Name)
}

func TestClickProductByTitleCaseInsensitive(t *testing.T) {
	browser := newFakeBrowser()
	card := productCard("Laptop Pro", "$1,299.00")
	browser.lists[entities.ClassName("product-item")] = []*fakeElement{card}

	page := NewProductsPage(newTestBase(browser))
	detail, err := page.ClickProductByTitle(context.Background(), "laptop pro")
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, 1, card.clicks)
}

func TestSearchSubmitsWithEnter(t *testing.T) {
	browser := newFakeBrowser()
	searchBox := newFakeElement("")
	browser.elements[entities.ID("searchBox")] = searchBox
	browser.elements[entities.ClassName("product-item")] = newFakeElement("result")

	page := NewProductsPage(newTestBase(browser))
	require.NoError(t, page.Search(context.Background(), "laptop"))

	require.Len(t, searchBox.typed, 2)
	assert.Equal(t, "laptop", searchBox.typed[0])
	assert.Equal(t, entities.KeyEnter, searchBox.typed[1])
	assert.Equal(t, 1, searchBox.cleared)
}

func TestGoToPageNotFound(t *testing.T) {
	browser := newFakeBrowser()
	browser.lists[entities.ClassName("pagination-number")] = []*fakeElement{
		newFakeElement("1"),
		newFakeElement("2"),
	}

	page := NewProductsPage(newTestBase(browser))
	err := page.GoToPage(context.Background(), 9)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "9", notFound.Name)
}

func TestAddToCartByIndexOutOfRange(t *testing.T) {
	browser := newFakeBrowser()
	browser.lists[entities.ClassName("add-to-cart")] = []*fakeElement{newFakeElement("Add")}

	page := NewProductsPage(newTestBase(browser))
	err := page.AddToCartByIndex(context.Background(), 5)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestAddToCartByIndexClicksButton(t *testing.T) {
	browser := newFakeBrowser()
	button := newFakeElement("Add")
	browser.lists[entities.ClassName("add-to-cart")] = []*fakeElement{button}

	page := NewProductsPage(newTestBase(browser))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, page.AddToCartByIndex(ctx, 0))
	assert.Equal(t, 1, button.clicks)
}

func TestCartCountLenient(t *testing.T) {
	browser := newFakeBrowser()
	page := NewProductsPage(newTestBase(browser))
	ctx := context.Background()

	assert.Zero(t, page.CartCount(ctx), "missing badge reads as zero")

	browser.elements[entities.ClassName("cart-count")] = newFakeElement(" 4 ")
	assert.Equal(t, 4, page.CartCount(ctx))
}

func TestActiveFilterCount(t *testing.T) {
	browser := newFakeBrowser()
	page := NewProductsPage(newTestBase(browser))
	ctx := context.Background()

	assert.Zero(t, page.ActiveFilterCount(ctx))

	browser.elements[entities.ClassName("filter-count")] = newFakeElement("3 filters applied")
	assert.Equal(t, 3, page.ActiveFilterCount(ctx))
}

func TestApplyFilterUnknownType(t *testing.T) {
	browser := newFakeBrowser()
	page := NewProductsPage(newTestBase(browser))

	err := page.ApplyFilter(context.Background(), "color", "red")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}
