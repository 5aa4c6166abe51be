package domain

// Product represents a catalog product. Products are created and edited
// by the admin back office; the storefront treats them as read-only.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	OldPrice    float64  `json:"oldPrice,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	CategoryID  string   `json:"categoryId,omitempty"`
	Image       string   `json:"image,omitempty"`
	Images      []string `json:"images,omitempty"`
	Description string   `json:"description,omitempty"`
	IsTrending  bool     `json:"isTrending,omitempty"`
	IsPopular   bool     `json:"isPopular,omitempty"`
}

// EffectiveOldPrice returns the stored strike-through price, or derives
// one from the current price when none was set.
func (p Product) EffectiveOldPrice() float64 {
	if p.OldPrice > 0 {
		return p.OldPrice
	}
	return p.Price * 1.4
}

// CartLine is a product in the cart with its quantity. The cart holds at
// most one line per product id; a persisted quantity is always >= 1.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// Category represents a product category
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Banner represents a storefront hero/promo banner
type Banner struct {
	ID       string `json:"id"`
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Image    string `json:"image,omitempty"`
	Link     string `json:"link,omitempty"`
}

// Coupon represents a discount code. Codes are unique case-insensitively.
type Coupon struct {
	ID       string     `json:"id"`
	Code     string     `json:"code"`
	Type     CouponType `json:"type"`
	Discount float64    `json:"discount"`
}

// ActiveDiscount is the resolved monetary effect of the currently applied
// coupon. Amount is fixed at application time and is not re-evaluated when
// the cart changes afterward.
type ActiveDiscount struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}

// CustomerInfo holds the checkout contact/address fields
type CustomerInfo struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Governorate string `json:"governorate"`
}

// OrderItem is an immutable by-value snapshot of a cart line taken at
// submission time. It never references the live Product record.
type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

// Order represents a placed order. Created once by checkout; after that
// only the admin back office mutates it (status transitions).
type Order struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	AttemptToken string          `json:"attemptToken,omitempty"`
	CustomerInfo CustomerInfo    `json:"customerInfo"`
	Items        []OrderItem     `json:"items"`
	Note         string          `json:"note,omitempty"`
	Discount     *ActiveDiscount `json:"discount,omitempty"`
	Subtotal     float64         `json:"subtotal"`
	Shipping     float64         `json:"shipping"`
	Total        float64         `json:"total"`
	Date         string          `json:"date"`
	Status       OrderStatus     `json:"status"`
}

// User is the storefront's record in the users collection, mirrored from
// the identity provider on first sign-in.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Avatar     string     `json:"avatar,omitempty"`
	DateJoined string     `json:"dateJoined,omitempty"`
	Status     UserStatus `json:"status"`
}

// Session is the identity provider's view of the signed-in user
type Session struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Settings is the admin-configurable singleton document
type Settings struct {
	MarqueeText   string             `json:"marqueeText,omitempty"`
	ShippingRates map[string]float64 `json:"shippingRates,omitempty"`
	ShowTrending  bool               `json:"showTrending,omitempty"`
	ShowPopular   bool               `json:"showPopular,omitempty"`
	PaymentKeys   PaymentKeys        `json:"paymentKeys,omitempty"`
}

// PaymentKeys holds gateway credentials. They are stored for the hosted
// checkout integration and never used to call a processor from here.
type PaymentKeys struct {
	MerchantID string `json:"merchantId,omitempty"`
	APIKey     string `json:"apiKey,omitempty"`
	IFrameID   string `json:"iframeId,omitempty"`
}

// GuestUserID is the Order.UserID sentinel for unauthenticated checkouts.
const GuestUserID = "guest"
