package cart

import (
	"fmt"
	"math"

	"github.com/nikolayk812/cartctx-demo/internal/domain"
)

// Action is a cart state transition. The set of actions is closed.
type Action interface {
	isAction()
}

// AddItem adds one unit of Product to the cart.
type AddItem struct {
	Product domain.Product
}

// UpdateQuantity adjusts the quantity of an existing line item by Delta.
type UpdateQuantity struct {
	ProductID string
	Delta     int
}

func (AddItem) isAction()        {}
func (UpdateQuantity) isAction() {}

// Reduce computes the state following action. It never modifies state; on
// error the returned cart is state itself.
func Reduce(state domain.Cart, action Action) (domain.Cart, error) {
	switch a := action.(type) {
	case AddItem:
		return addItem(state, a)
	case UpdateQuantity:
		return updateQuantity(state, a)
	default:
		return state, fmt.Errorf("unknown action %T", action)
	}
}

func addItem(state domain.Cart, a AddItem) (domain.Cart, error) {
	next := state.Clone()

	if i, ok := next.Find(a.Product.ID); ok {
		if next.Items[i].Quantity == math.MaxInt {
			return state, fmt.Errorf("product[%s]: %w", a.Product.ID, domain.ErrQuantityOverflow)
		}
		next.Items[i].Quantity++
		return next, nil
	}

	if a.Product.Price.Currency != state.Currency {
		return state, fmt.Errorf("product[%s] currency[%s]: %w",
			a.Product.ID, a.Product.Price.Currency, domain.ErrCurrencyMismatch)
	}

	next.Items = append(next.Items, domain.CartItem{
		ProductID: a.Product.ID,
		Name:      a.Product.Title,
		Price:     a.Product.Price,
		Quantity:  1,
	})

	return next, nil
}

func updateQuantity(state domain.Cart, a UpdateQuantity) (domain.Cart, error) {
	i, ok := state.Find(a.ProductID)
	if !ok {
		return state, fmt.Errorf("product[%s]: %w", a.ProductID, domain.ErrItemNotInCart)
	}

	// quantity is at least 1, so only a positive delta can overflow
	if a.Delta > 0 && state.Items[i].Quantity > math.MaxInt-a.Delta {
		return state, fmt.Errorf("product[%s] delta[%d]: %w", a.ProductID, a.Delta, domain.ErrQuantityOverflow)
	}

	next := state.Clone()

	quantity := next.Items[i].Quantity + a.Delta
	if quantity <= 0 {
		next.Items = append(next.Items[:i], next.Items[i+1:]...)
		return next, nil
	}

	next.Items[i].Quantity = quantity

	return next, nil
}
