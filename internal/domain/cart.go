package domain

import (
	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

type Cart struct {
	ID       uuid.UUID
	Currency currency.Unit
	Items    []CartItem
}

// CartItem is one product's aggregated quantity. Name and Price are copied
// from the catalog when the item is first added.
type CartItem struct {
	ProductID string
	Name      string
	Price     Money
	Quantity  int
}

func (c Cart) Find(productID string) (int, bool) {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i, true
		}
	}

	return -1, false
}

func (c Cart) Quantity(productID string) int {
	if i, ok := c.Find(productID); ok {
		return c.Items[i].Quantity
	}

	return 0
}

func (c Cart) Total() Money {
	total := ZeroMoney(c.Currency)
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}

	return total
}

func (c Cart) Clone() Cart {
	c.Items = append([]CartItem(nil), c.Items...)
	return c
}

func (i CartItem) Subtotal() Money {
	return i.Price.Mul(i.Quantity)
}
