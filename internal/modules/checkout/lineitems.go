package checkout

import (
	"fmt"
	"math"

	"github.com/atish-2023/Ecommerce-Website/internal/modules/orders"
	"github.com/atish-2023/Ecommerce-Website/internal/modules/payments"
	"github.com/atish-2023/Ecommerce-Website/internal/shared/apperr"
)

// ShippingCostDollars is the flat surcharge added to every session as its own
// line item.
const ShippingCostDollars = 50

// BuildLineItems turns cart items into provider line items, appending the
// shipping item when the cost is positive. Pure: no side effects, identical
// output for identical input.
//
// Missing product sub-fields get defaults; a missing product object fails the
// whole build. A final validation pass rejects non-positive amounts and
// quantities, naming the offending index.
func BuildLineItems(items []orders.CartItem, shippingDollars float64) ([]payments.LineItem, error) {
	out := make([]payments.LineItem, 0, len(items)+1)

	for i, item := range items {
		if item.Product == nil {
			return nil, apperr.InvalidErr(fmt.Sprintf("Missing product data for item %d", i), nil)
		}

		p := *item.Product
		if p.ID == "" {
			p.ID = fmt.Sprintf("item_%d", i)
		}
		if p.Title == "" {
			p.Title = "Unknown Product"
		}

		var images []string
		if len(p.Images) > 0 {
			images = p.Images[:1]
		}

		out = append(out, payments.LineItem{
			Name:            p.Title,
			Description:     "Product ID: " + p.ID,
			Images:          images,
			UnitAmountCents: int64(math.Round(p.Price * 100)),
			Quantity:        item.Quantity,
		})
	}

	if shippingDollars > 0 {
		out = append(out, payments.LineItem{
			Name:            "Shipping Cost",
			Description:     "Express delivery (3-4 days via Fedex)",
			UnitAmountCents: int64(shippingDollars * 100),
			Quantity:        1,
		})
	}

	for i, li := range out {
		switch {
		case li.UnitAmountCents == 0:
			return nil, apperr.InvalidErr(fmt.Sprintf("Item %d: Missing price amount", i), nil)
		case li.UnitAmountCents < 0:
			return nil, apperr.InvalidErr(fmt.Sprintf("Item %d: Invalid price amount", i), nil)
		case li.Quantity <= 0:
			return nil, apperr.InvalidErr(fmt.Sprintf("Item %d: Invalid quantity", i), nil)
		}
	}

	return out, nil
}
