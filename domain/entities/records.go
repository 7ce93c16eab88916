package entities

// Product is one entry scraped from a product listing. Values live only for
// the duration of a scenario; there is no cross-scenario identity.
type Product struct {
	Index     int     `json:"index"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	PriceText string  `json:"price_text"`
	Category  string  `json:"category"`
	Brand     string  `json:"brand"`
}

// CartItem is one row scraped from the shopping cart.
type CartItem struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	PriceText string `json:"price_text"`
	Quantity  int    `json:"quantity"`
	TotalText string `json:"total_text"`
}

// User holds the data entered into registration/login forms and used for
// API/database fixtures.
type User struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
	Phone           string `json:"phone,omitempty"`
}

// Order is the fixture record for an order row.
type Order struct {
	OrderID       string  `json:"order_id"`
	UserID        int64   `json:"user_id"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	TotalAmount   float64 `json:"total_amount"`
}

// ShippingInfo is the address block entered on the checkout page.
type ShippingInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// PaymentCard holds card details entered on the checkout page.
type PaymentCard struct {
	Number     string `json:"number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	HolderName string `json:"holder_name"`
}

// ProfileData is what the dashboard exposes about the signed-in user.
// AuthProvider falls back to "local" when the page does not advertise one.
type ProfileData struct {
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	AuthProvider string `json:"auth_provider"`
}
