package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/nikolayk812/cartctx-demo/internal/cart"
	"github.com/nikolayk812/cartctx-demo/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) (*Session, *cart.Store, *bytes.Buffer) {
	t.Helper()

	c, err := catalog.Default()
	require.NoError(t, err)

	store := cart.NewStore(c, c.Currency(), cart.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	var out bytes.Buffer
	return NewSession(store, c, &out), store, &out
}

func TestSessionRun(t *testing.T) {
	s, store, out := newSession(t)

	script := strings.Join([]string{
		"add p1",
		"add p1",
		"add p2",
		"dec p1",
		"update p2 -5",
		"inc p1",
		"",
		"add nope",
		"inc p9",
		"update p1 x",
		"add",
		"dance",
		"update p1 9223372036854775807",
		"quit",
		"add p3",
	}, "\n")

	require.NoError(t, s.Run(t.Context(), strings.NewReader(script)))

	got := out.String()
	assert.Contains(t, got, "commands:")
	assert.Contains(t, got, "Cart (0)\nNo items in cart!\nCart Total: $0.00\n")
	assert.Contains(t, got, "Cart (1)\nLuxurious Elegance ($89.99) x2\nCart Total: $179.98\n")
	assert.Contains(t, got, "Cart (2)\nLuxurious Elegance ($89.99) x2\nMajestic Night ($69.99) x1\nCart Total: $249.97\n")
	assert.Contains(t, got, "error: product[nope]: product not found")
	assert.Contains(t, got, "error: product[p9]: item not in cart")
	assert.Contains(t, got, "error: delta[x] is not an integer")
	assert.Contains(t, got, "error: usage: add <id>")
	assert.Contains(t, got, `error: unknown command "dance", try help`)
	assert.Contains(t, got, "error: product[p1] delta[9223372036854775807]: quantity out of range")

	// quit stops the session before the last add
	assert.Equal(t, 0, store.Cart().Quantity("p3"))
	assert.Equal(t, 2, store.Cart().Quantity("p1"))
	assert.Len(t, store.Items(), 1)
	assert.Equal(t, "$179.98", store.Total().String())
}

func TestSessionViews(t *testing.T) {
	s, _, out := newSession(t)

	require.NoError(t, s.Run(t.Context(), strings.NewReader("add p4\nproducts\ncart\n")))

	got := out.String()
	assert.Contains(t, got, "[p4] Ruby Radiance - $119.99 [in cart: 1]")
	assert.Contains(t, got, "[p1] Luxurious Elegance - $89.99\n")
	assert.Equal(t, 2, strings.Count(got, "Ruby Radiance ($119.99) x1\nCart Total: $119.99\n"))
}

func TestSessionStopsOnCanceledContext(t *testing.T) {
	s, store, _ := newSession(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := s.Run(ctx, strings.NewReader("add p1\n"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.Items())
}

func TestSessionStopsWhileWaitingForInput(t *testing.T) {
	s, store, _ := newSession(t)

	in, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx, in) }()

	select {
	case err := <-errc:
		require.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after the context was done")
	}

	assert.Empty(t, store.Items())
}

func TestSessionReportsReadError(t *testing.T) {
	s, _, _ := newSession(t)

	in, w := io.Pipe()
	require.NoError(t, w.CloseWithError(io.ErrUnexpectedEOF))

	err := s.Run(t.Context(), in)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
