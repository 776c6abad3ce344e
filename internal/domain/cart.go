package domain

// Candidate is what the catalog hands to the cart when a product is added.
type Candidate struct {
	ID        int
	Name      string
	UnitPrice Money
	Image     string
}

// CartItem is one catalog entry plus the quantity of it in the cart.
// Quantity is at least 1 while the item exists.
type CartItem struct {
	ID        int
	Name      string
	UnitPrice Money
	Image     string
	Quantity  int
}

func (i CartItem) LineTotal() Money {
	return i.UnitPrice.Mul(i.Quantity)
}

// CartState is a point-in-time copy of a cart store.
type CartState struct {
	Items  []CartItem
	IsOpen bool
}

func (s CartState) ItemCount() int {
	return ItemCount(s.Items)
}

func (s CartState) Subtotal() (Money, error) {
	return Subtotal(s.Items)
}

func ItemCount(items []CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// Subtotal sums unit price times quantity. An empty cart sums to zero in
// DefaultCurrency.
func Subtotal(items []CartItem) (Money, error) {
	if len(items) == 0 {
		return Zero(DefaultCurrency), nil
	}

	total := Zero(items[0].UnitPrice.Currency)
	for _, item := range items {
		var err error
		total, err = total.Add(item.LineTotal())
		if err != nil {
			return Money{}, err
		}
	}

	return total, nil
}
