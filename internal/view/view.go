// Package view renders the catalog and the cart as plain text.
package view

import (
	"fmt"
	"io"

	"github.com/nikolayk812/cartctx-demo/internal/domain"
)

// Renderer draws one view of a cart state.
type Renderer func(w io.Writer, c domain.Cart) error

// Subscriber is the part of cart.Store a view binds to.
type Subscriber interface {
	Cart() domain.Cart
	Subscribe(l func(domain.Cart)) (unsubscribe func())
}

func RenderHeader(w io.Writer, c domain.Cart) error {
	_, err := fmt.Fprintf(w, "Cart (%d)\n", len(c.Items))
	return err
}

func RenderCart(w io.Writer, c domain.Cart) error {
	if len(c.Items) == 0 {
		if _, err := fmt.Fprintln(w, "No items in cart!"); err != nil {
			return err
		}
	}

	for _, item := range c.Items {
		if _, err := fmt.Fprintf(w, "%s (%s) x%d\n", item.Name, item.Price, item.Quantity); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Cart Total: %s\n", c.Total())
	return err
}

// RenderCatalog lists products in catalog order, marking the ones already in c.
func RenderCatalog(w io.Writer, products []domain.Product, c domain.Cart) error {
	for _, p := range products {
		line := fmt.Sprintf("[%s] %s - %s", p.ID, p.Title, p.Price)
		if qty := c.Quantity(p.ID); qty > 0 {
			line += fmt.Sprintf(" [in cart: %d]", qty)
		}

		if _, err := fmt.Fprintf(w, "%s\n    %s\n", line, p.Description); err != nil {
			return err
		}
	}

	return nil
}

// CatalogRenderer adapts RenderCatalog to a Renderer over a fixed product list.
func CatalogRenderer(products []domain.Product) Renderer {
	return func(w io.Writer, c domain.Cart) error {
		return RenderCatalog(w, products, c)
	}
}

// Bind renders the current state of s, then re-renders on every published state.
// Render errors are passed to onError when it is not nil.
func Bind(s Subscriber, w io.Writer, onError func(error), renderers ...Renderer) (unbind func()) {
	render := func(c domain.Cart) {
		for _, r := range renderers {
			if err := r(w, c); err != nil && onError != nil {
				onError(err)
			}
		}
	}

	render(s.Cart())

	return s.Subscribe(render)
}
