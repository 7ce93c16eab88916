package pages

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"shop_automation/domain/entities"
	"shop_automation/domain/interfaces"
)

// ProductsPage drives the catalog listing: search, filters, sorting,
// pagination and quick add-to-cart.
type ProductsPage struct {
	*BasePage

	searchBox    entities.LocatorSet
	searchButton entities.LocatorSet
	productItems entities.LocatorSet

	filters     map[string]entities.LocatorSet
	applyButton entities.LocatorSet
	clearButton entities.LocatorSet
	filterCount entities.LocatorSet

	sortDropdown entities.LocatorSet

	paginationNext    entities.LocatorSet
	paginationPrev    entities.LocatorSet
	paginationNumbers entities.Locator

	addToCartButtons entities.Locator
	cartIcon         entities.LocatorSet
	cartCount        entities.LocatorSet

	spinner   entities.LocatorSet
	noResults entities.LocatorSet
}

func NewProductsPage(base *BasePage) *ProductsPage {
	return &ProductsPage{
		BasePage: base,

		searchBox:    entities.Target(entities.ID("searchBox"), entities.Name("search")),
		searchButton: entities.Target(entities.ID("searchButton")),
		productItems: entities.Target(entities.ClassName("product-item"), entities.CSS(".product, .item")),

		filters: map[string]entities.LocatorSet{
			"category":    entities.Target(entities.ID("categoryFilter")),
			"price_range": entities.Target(entities.ID("priceFilter")),
			"brand":       entities.Target(entities.ID("brandFilter")),
			"rating":      entities.Target(entities.ID("ratingFilter")),
		},
		applyButton: entities.Target(entities.ID("applyFilters")),
		clearButton: entities.Target(entities.ID("clearFilters")),
		filterCount: entities.Target(entities.ClassName("filter-count")),

		sortDropdown: entities.Target(entities.ID("sortBy")),

		paginationNext:    entities.Target(entities.ClassName("pagination-next")),
		paginationPrev:    entities.Target(entities.ClassName("pagination-prev")),
		paginationNumbers: entities.ClassName("pagination-number"),

		addToCartButtons: entities.ClassName("add-to-cart"),
		cartIcon:         entities.Target(entities.ID("cartIcon")),
		cartCount:        entities.Target(entities.ClassName("cart-count")),

		spinner:   entities.Target(entities.ClassName("loading-spinner")),
		noResults: entities.Target(entities.ClassName("no-results")),
	}
}

func (p *ProductsPage) Open(ctx context.Context) error {
	return p.Navigate(ctx, "/products")
}

func (p *ProductsPage) IsLoaded(ctx context.Context) bool {
	if p.IsVisible(ctx, p.searchBox) {
		return true
	}
	url, err := p.CurrentURL(ctx)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(url), "products")
}

// Search types the term into the search box and submits with Enter, falling
// back to the explicit search button when the box rejects the keystroke.
func (p *ProductsPage) Search(ctx context.Context, term string) error {
	if err := p.Type(ctx, p.searchBox, term); err != nil {
		return err
	}
	if err := p.SendKeys(ctx, p.searchBox, entities.KeyEnter); err != nil {
		if clickErr := p.Click(ctx, p.searchButton); clickErr != nil {
			return err
		}
	}
	return p.waitForResults(ctx)
}

// waitForResults absorbs the loading spinner and then requires at least one
// product card to show up.
func (p *ProductsPage) waitForResults(ctx context.Context) error {
	p.WaitLoadingDone(ctx, p.spinner)
	_, err := p.WaitVisible(ctx, p.productItems)
	return err
}

func (p *ProductsPage) ProductCount(ctx context.Context) int {
	items, err := p.findProductItems(ctx)
	if err != nil {
		return 0
	}
	return len(items)
}

func (p *ProductsPage) findProductItems(ctx context.Context) ([]interfaces.Element, error) {
	for _, loc := range p.productItems {
		items, err := p.driver.FindAll(ctx, loc)
		if err == nil && len(items) > 0 {
			return items, nil
		}
	}
	return nil, &TimeoutError{Locators: p.productItems, Condition: entities.ConditionPresent}
}

// DisplayedProducts extracts the visible product cards. A card missing its
// title or price is logged and skipped rather than failing the whole read.
func (p *ProductsPage) DisplayedProducts(ctx context.Context) []entities.Product {
	items, err := p.findProductItems(ctx)
	if err != nil {
		return nil
	}

	var products []entities.Product
	for i, item := range items {
		product, err := p.readProductCard(ctx, i, item)
		if err != nil {
			p.log.Warnf("could not extract details for product %d: %v", i, err)
			continue
		}
		products = append(products, product)
	}
	return products
}

func (p *ProductsPage) readProductCard(ctx context.Context, index int, item interfaces.Element) (entities.Product, error) {
	titleEl, err := item.Find(ctx, entities.ClassName("product-title"))
	if err != nil {
		return entities.Product{}, err
	}
	title, err := titleEl.Text(ctx)
	if err != nil {
		return entities.Product{}, err
	}

	priceEl, err := item.Find(ctx, entities.ClassName("product-price"))
	if err != nil {
		return entities.Product{}, err
	}
	priceText, err := priceEl.Text(ctx)
	if err != nil {
		return entities.Product{}, err
	}

	product := entities.Product{
		Index:     index,
		Title:     title,
		Price:     ExtractPrice(priceText),
		PriceText: priceText,
		Category:  "Unknown",
		Brand:     "Unknown",
	}
	if el, err := item.Find(ctx, entities.ClassName("product-category")); err == nil {
		if text, err := el.Text(ctx); err == nil {
			product.Category = text
		}
	}
	if el, err := item.Find(ctx, entities.ClassName("product-brand")); err == nil {
		if text, err := el.Text(ctx); err == nil {
			product.Brand = text
		}
	}
	return product, nil
}

func (p *ProductsPage) ClickFirstProduct(ctx context.Context) (*ProductDetailPage, error) {
	return p.ClickProductByIndex(ctx, 0)
}

func (p *ProductsPage) ClickProductByIndex(ctx context.Context, index int) (*ProductDetailPage, error) {
	items, err := p.findProductItems(ctx)
	if err != nil {
		return nil, err
	}
	if index >= len(items) {
		return nil, &NotFoundError{Kind: "product at index", Name: strconv.Itoa(index)}
	}
	if err := items[index].Click(ctx); err != nil {
		return nil, &InteractionError{Action: "click product", Locators: p.productItems, Err: err}
	}
	return NewProductDetailPage(p.BasePage), nil
}

// ClickProductByTitle opens the first card whose title contains the given
// text, case-insensitively.
func (p *ProductsPage) ClickProductByTitle(ctx context.Context, title string) (*ProductDetailPage, error) {
	items, err := p.findProductItems(ctx)
	if err != nil {
		return nil, err
	}
	want := strings.ToLower(title)
	for _, item := range items {
		titleEl, err := item.Find(ctx, entities.ClassName("product-title"))
		if err != nil {
			continue
		}
		text, err := titleEl.Text(ctx)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(text), want) {
			if err := item.Click(ctx); err != nil {
				return nil, &InteractionError{Action: "click product", Locators: p.productItems, Err: err}
			}
			return NewProductDetailPage(p.BasePage), nil
		}
	}
	return nil, &NotFoundError{Kind: "product", Name: title}
}

// ApplyFilter selects a filter value and applies it. Pages that auto-apply on
// select have no apply button; that is fine.
func (p *ProductsPage) ApplyFilter(ctx context.Context, filterType, value string) error {
	target, ok := p.filters[filterType]
	if !ok {
		return &NotFoundError{Kind: "filter type", Name: filterType}
	}
	if err := p.SelectByText(ctx, target, value); err != nil {
		return err
	}
	if err := p.Click(ctx, p.applyButton); err == nil {
		return p.waitForResults(ctx)
	}
	return p.waitForResults(ctx)
}

func (p *ProductsPage) ClearFilters(ctx context.Context) error {
	if err := p.Click(ctx, p.clearButton); err != nil {
		p.log.Warnf("clear filters button not found")
		return nil
	}
	return p.waitForResults(ctx)
}

// SortBy sorts the listing. Logical option keys map onto the dropdown's
// visible labels; unknown keys pass through as-is.
func (p *ProductsPage) SortBy(ctx context.Context, option string) error {
	labels := map[string]string{
		"price_low_to_high": "Price: Low to High",
		"price_high_to_low": "Price: High to Low",
		"name_a_to_z":       "Name: A to Z",
		"name_z_to_a":       "Name: Z to A",
		"newest":            "Newest First",
		"rating":            "Highest Rated",
	}
	label, ok := labels[option]
	if !ok {
		label = option
	}
	if err := p.SelectByText(ctx, p.sortDropdown, label); err != nil {
		return err
	}
	return p.waitForResults(ctx)
}

var countRe = regexp.MustCompile(`\d+`)

// ActiveFilterCount reads the "N filters applied" badge, zero when absent.
func (p *ProductsPage) ActiveFilterCount(ctx context.Context) int {
	text, err := p.TextOf(ctx, p.filterCount)
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

// AddToCartByIndex clicks the add-to-cart button on the nth card.
func (p *ProductsPage) AddToCartByIndex(ctx context.Context, index int) error {
	buttons, err := p.driver.FindAll(ctx, p.addToCartButtons)
	if err != nil || index >= len(buttons) {
		return &NotFoundError{Kind: "add to cart button at index", Name: strconv.Itoa(index)}
	}
	if err := buttons[index].Click(ctx); err != nil {
		return &InteractionError{Action: "add to cart", Locators: entities.Target(p.addToCartButtons), Err: err}
	}
	p.waitForCartUpdate(ctx)
	return nil
}

// waitForCartUpdate gives the cart badge animation a moment to settle.
func (p *ProductsPage) waitForCartUpdate(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
	}
}

// CartCount reads the cart badge, zero when it is absent or not numeric.
func (p *ProductsPage) CartCount(ctx context.Context) int {
	text, err := p.TextOf(ctx, p.cartCount)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0
	}
	return n
}

func (p *ProductsPage) GoToCart(ctx context.Context) (*CartPage, error) {
	if err := p.Click(ctx, p.cartIcon); err != nil {
		return nil, err
	}
	return NewCartPage(p.BasePage), nil
}

func (p *ProductsPage) GoToNextPage(ctx context.Context) error {
	if err := p.Click(ctx, p.paginationNext); err != nil {
		return err
	}
	return p.waitForResults(ctx)
}

func (p *ProductsPage) GoToPreviousPage(ctx context.Context) error {
	if err := p.Click(ctx, p.paginationPrev); err != nil {
		return err
	}
	return p.waitForResults(ctx)
}

// GoToPage clicks the numbered pagination link matching pageNumber.
func (p *ProductsPage) GoToPage(ctx context.Context, pageNumber int) error {
	links, err := p.driver.FindAll(ctx, p.paginationNumbers)
	if err != nil {
		return &NotFoundError{Kind: "page", Name: strconv.Itoa(pageNumber)}
	}
	want := strconv.Itoa(pageNumber)
	for _, link := range links {
		text, err := link.Text(ctx)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) == want {
			if err := link.Click(ctx); err != nil {
				return &InteractionError{Action: "click page link", Locators: entities.Target(p.paginationNumbers), Err: err}
			}
			return p.waitForResults(ctx)
		}
	}
	return &NotFoundError{Kind: "page", Name: want}
}

func (p *ProductsPage) IsNoResultsDisplayed(ctx context.Context) bool {
	return p.IsVisible(ctx, p.noResults)
}
