package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nikolayk812/cartctx-demo/internal/cart"
	"github.com/nikolayk812/cartctx-demo/internal/catalog"
	"github.com/nikolayk812/cartctx-demo/internal/domain"
	"github.com/nikolayk812/cartctx-demo/internal/view"
	"github.com/spf13/cobra"
	"golang.org/x/text/currency"
)

const helpText = `commands:
  products              list the catalog
  cart                  show the cart
  add <id>              add one unit of a product
  inc <id>              increase quantity by one
  dec <id>              decrease quantity by one
  update <id> <delta>   change quantity by delta
  help                  show this help
  quit                  leave the shop
`

var errQuit = errors.New("quit")

func NewBrowseCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Start an interactive shopping session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c, err := openCatalog(ctx, opts)
			if err != nil {
				return err
			}

			cur, err := currency.ParseISO(opts.Currency)
			if err != nil {
				return fmt.Errorf("currency[%s] is not valid: %w", opts.Currency, err)
			}
			if cur != c.Currency() {
				return fmt.Errorf("currency[%s] != catalog currency[%s]: %w", cur, c.Currency(), domain.ErrCurrencyMismatch)
			}

			store := cart.NewStore(c, cur, cart.WithLogger(opts.logger()))

			return NewSession(store, c, cmd.OutOrStdout()).Run(ctx, cmd.InOrStdin())
		},
	}
}

// Session is a line-oriented shop front. Every view it prints is rendered
// from the one Store it was given.
type Session struct {
	store   *cart.Store
	catalog *catalog.Catalog
	out     io.Writer
}

func NewSession(store *cart.Store, c *catalog.Catalog, out io.Writer) *Session {
	return &Session{store: store, catalog: c, out: out}
}

// Run reads commands from in until EOF, quit, or ctx is done. A read
// blocked on in does not delay cancellation; the reading goroutine exits
// once in returns.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	fmt.Fprint(s.out, helpText)

	unbind := view.Bind(s.store, s.out, nil, renderCartWithHeader)
	defer unbind()

	done := make(chan struct{})
	defer close(done)

	lines, scanErr := readLines(in, done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, "> ")

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("scanner.Err: %w", err)
				}
				return nil
			}
			line = l
		}

		err := s.exec(line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

// readLines scans in on its own goroutine. lines is closed at EOF, after
// the scanner error has been sent on scanErr, or when done is closed.
func readLines(in io.Reader, done <-chan struct{}) (lines <-chan string, scanErr <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case out <- scanner.Text():
			case <-done:
				return
			}
		}
		errc <- scanner.Err()
	}()

	return out, errc
}

func (s *Session) exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit":
		return errQuit
	case "help":
		_, err := fmt.Fprint(s.out, helpText)
		return err
	case "products":
		return view.RenderCatalog(s.out, s.catalog.Products(), s.store.Cart())
	case "cart":
		return view.RenderCart(s.out, s.store.Cart())
	case "add":
		id, err := oneArg(cmd, args)
		if err != nil {
			return err
		}
		return s.store.AddItemToCart(id)
	case "inc", "dec":
		id, err := oneArg(cmd, args)
		if err != nil {
			return err
		}
		delta := 1
		if cmd == "dec" {
			delta = -1
		}
		return s.store.UpdateItemQuantity(id, delta)
	case "update":
		if len(args) != 2 {
			return fmt.Errorf("usage: update <id> <delta>")
		}
		delta, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("delta[%s] is not an integer", args[1])
		}
		return s.store.UpdateItemQuantity(args[0], delta)
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
}

func renderCartWithHeader(w io.Writer, c domain.Cart) error {
	if err := view.RenderHeader(w, c); err != nil {
		return err
	}
	return view.RenderCart(w, c)
}

func oneArg(cmd string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: %s <id>", cmd)
	}
	return args[0], nil
}
