package pages

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_automation/domain/entities"
)

func cartRow(name, price, quantity, total string) *fakeElement {
	row := newFakeElement(name)
	row.children[entities.ClassName("item-name")] = newFakeElement(name)
	row.children[entities.ClassName("item-price")] = newFakeElement(price)
	row.children[entities.ClassName("item-quantity")] = newFakeElement(quantity)
	row.children[entities.ClassName("item-total")] = newFakeElement(total)
	return row
}

// shortCtx bounds the post-update settle wait so tests stay fast.
func shortCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	t.Cleanup(cancel)
	return ctx
}

func TestCartItemsSkipsMalformedRow(t *testing.T) {
	browser := newFakeBrowser()
	broken := newFakeElement("broken")
	browser.lists[entities.ClassName("cart-item")] = []*fakeElement{
		cartRow("Laptop Pro", "$1,299.00", "2", "$2,598.00"),
		broken,
	}

	page := NewCartPage(newTestBase(browser))
	items := page.Items(context.Background())

	require.Len(t, items, 1)
	assert.Equal(t, "Laptop Pro", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "$2,598.00", items[0].TotalText)
}

func TestCartItemNonNumericQuantityDefaultsToOne(t *testing.T) {
	browser := newFakeBrowser()
	browser.lists[entities.ClassName("cart-item")] = []*fakeElement{
		cartRow("Laptop Pro", "$1,299.00", "", "$1,299.00"),
	}

	page := NewCartPage(newTestBase(browser))
	items := page.Items(context.Background())

	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestUpdateQuantityViaUpdateButton(t *testing.T) {
	browser := newFakeBrowser()
	row := cartRow("Laptop Pro", "$1,299.00", "1", "$1,299.00")
	input := newFakeElement("")
	updateBtn := newFakeElement("Update")
	row.children[entities.CSS("input[name='quantity']")] = input
	row.children[entities.ClassName("update-quantity")] = updateBtn
	browser.lists[entities.ClassName("cart-item")] = []*fakeElement{row}

	page := NewCartPage(newTestBase(browser))
	require.NoError(t, page.UpdateQuantity(shortCtx(t), "laptop", 3))

	assert.Equal(t, 1, input.cleared)
	assert.Equal(t, []string{"3"}, input.typed)
	assert.Equal(t, 1, updateBtn.clicks)
}

func TestUpdateQuantityEnterFallback(t *testing.T) {
	browser := newFakeBrowser()
	row := cartRow("Laptop Pro", "$1,299.00", "1", "$1,299.00")
	input := newFakeElement("")
	row.children[entities.CSS("input[name='quantity']")] = input
	browser.lists[entities.ClassName("cart-item")] = []*fakeElement{row}

	page := NewCartPage(newTestBase(browser))
	require.NoError(t, page.UpdateQuantity(shortCtx(t), "Laptop Pro", 3))

	// Without an update button the row commits via Enter.
	require.Len(t, input.typed, 2)
	assert.Equal(t, "3", input.typed[0])
	assert.Equal(t, entities.KeyEnter, input.typed[1])
}

func TestUpdateQuantityProductNotInCart(t *testing.T) {
	browser := newFakeBrowser()
	browser.lists[entities.ClassName("cart-item")] = []*fakeElement{
		cartRow("Laptop Pro", "$1,299.00", "1", "$1,299.00"),
	}

	page := NewCartPage(newTestBase(browser))
	err := page.UpdateQuantity(shortCtx(t), "Phone", 2)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Phone", notFound.Name)
}

func TestRemoveItemAcceptsConfirmDialog(t *testing.T) {
	browser := newFakeBrowser()
	row := cartRow("Laptop Pro", "$1,299.00", "1", "$1,299.00")
	removeBtn := newFakeElement("Remove")
	row.children[entities.ClassName("remove-item")] = removeBtn
	browser.lists[entities.ClassName("cart-item")] = []*fakeElement{row}

	page := NewCartPage(newTestBase(browser))
	require.NoError(t, page.RemoveItem(shortCtx(t), "Laptop Pro"))

	assert.Equal(t, 1, removeBtn.clicks)
	assert.Equal(t, 1, browser.alertAccepts)
}

func TestClearFallsBackToRowRemoval(t *testing.T) {
	browser := newFakeBrowser()
	rowA := cartRow("Laptop Pro", "$1,299.00", "1", "$1,299.00")
	removeA := newFakeElement("Remove")
	rowA.children[entities.ClassName("remove-item")] = removeA

	// The second row has no remove control and is skipped.
	rowB := cartRow("Phone", "$499.00", "1", "$499.00")

	browser.lists[entities.ClassName("cart-item")] = []*fakeElement{rowA, rowB}

	page := NewCartPage(newTestBase(browser))
	page.Clear(context.Background())

	assert.Equal(t, 1, removeA.clicks)
}

func TestCartTaxAndShippingLenient(t *testing.T) {
	browser := newFakeBrowser()
	page := NewCartPage(newTestBase(browser))
	ctx := context.Background()

	assert.Equal(t, "$0.00", page.Tax(ctx))
	assert.Equal(t, "$0.00", page.Shipping(ctx))

	browser.elements[entities.ClassName("cart-tax")] = newFakeElement("$12.99")
	assert.Equal(t, "$12.99", page.Tax(ctx))
}
