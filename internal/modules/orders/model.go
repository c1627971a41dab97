package orders

// Status values an order can carry. Only pending_payment is assigned today;
// the webhook does not yet transition orders to paid.
const (
	StatusPendingPayment = "pending_payment"
)

type Product struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Price  float64  `json:"price"`
	Images []string `json:"images"`
}

// CartItem is client-owned and passed by value on every checkout request.
// Product is a pointer so an item arriving without one can be rejected.
type CartItem struct {
	Product  *Product `json:"product"`
	Quantity int64    `json:"quantity"`
}

type CustomerInfo struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	House      string `json:"house"`
	Postalcode string `json:"postalcode"`
	Zip        string `json:"zip"`
	Message    string `json:"message,omitempty"`
}

// OrderRecord is created once per successful checkout-session creation and
// never mutated afterwards. TotalAmount is in dollars, shipping included.
type OrderRecord struct {
	OrderID         string       `json:"orderId"`
	OrderReference  string       `json:"orderReference"`
	CustomerInfo    CustomerInfo `json:"customerInfo"`
	CartItems       []CartItem   `json:"cartItems"`
	TotalAmount     float64      `json:"totalAmount"`
	StripeSessionID string       `json:"stripeSessionId"`
	CreatedAt       string       `json:"createdAt"`
	Status          string       `json:"status"`
}
