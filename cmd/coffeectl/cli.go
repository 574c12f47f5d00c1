package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/coffeeshop/pkg/api"
	"github.com/polkiloo/coffeeshop/pkg/client"
)

const (
	defaultServer  = "http://localhost:5001"
	defaultTimeout = 10 * time.Second
)

var errUsage = errors.New("usage")

const usage = `usage: coffeectl [flags] <command> [args]

commands:
  drinks                              list the menu
  orders [-status S] [-customer C]    list orders, newest first
  order [-customer C] ID:SIZE...      place an order, queued when offline
  status ORDER_ID STATUS              change order status
  stats                               order summary
  flush                               send queued orders

flags:
`

type cli struct {
	client *client.HTTPClient
	queue  *client.OfflineQueue
	out    io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	fs := flag.NewFlagSet("coffeectl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	server := fs.String("server", envOr(getenv, "COFFEESHOP_URL", defaultServer), "coffeeshop server URL")
	queuePath := fs.String("queue", envOr(getenv, "COFFEESHOP_QUEUE", defaultQueuePath(getenv)), "offline queue file")
	timeout := fs.Duration("timeout", defaultTimeout, "per request timeout")
	verbose := fs.Bool("v", false, "log client activity to stderr")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level}))

	hc, err := client.NewHTTPClient(*server, logger)
	if err != nil {
		fmt.Fprintln(stderr, "coffeectl:", err)
		return 2
	}
	c := &cli{
		client: hc,
		queue:  client.NewOfflineQueue(*queuePath, hc, logger),
		out:    stdout,
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "drinks":
		err = c.drinks(ctx)
	case "orders":
		err = c.orders(ctx, rest, stderr)
	case "order":
		err = c.order(ctx, rest, stderr)
	case "status":
		err = c.status(ctx, rest)
	case "stats":
		err = c.stats(ctx)
	case "flush":
		err = c.flush(ctx)
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}

	if err != nil {
		fmt.Fprintln(stderr, "coffeectl:", err)
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}

func (c *cli) drinks(ctx context.Context) error {
	drinks, err := c.client.Drinks(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSIZES")
	for _, d := range drinks {
		sizes := make([]string, 0, len(d.Prices))
		for _, p := range d.Prices {
			sizes = append(sizes, fmt.Sprintf("%s %s", p.Size, p.Price.StringFixed(2)))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", d.ID, d.Name, strings.Join(sizes, ", "))
	}
	return w.Flush()
}

func (c *cli) orders(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	fs.SetOutput(stderr)
	status := fs.String("status", "", "PENDING, COMPLETED or CANCELLED")
	customer := fs.String("customer", "", "customer name")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	orders, err := c.client.Orders(ctx, client.OrderQuery{Status: strings.ToUpper(*status), Customer: *customer})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tTOTAL\tDRINKS\tPLACED")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", o.ID, o.Status, o.Total.StringFixed(2), len(o.OrderDrinks), o.OrderTimestamp.Local().Format(time.DateTime))
	}
	return w.Flush()
}

func (c *cli) order(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("order", flag.ContinueOnError)
	fs.SetOutput(stderr)
	customer := fs.String("customer", "", "customer name")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	req, err := parseOrder(fs.Args(), *customer)
	if err != nil {
		return err
	}

	// The key goes out with the first attempt. If the server commits the order
	// but the response is lost, the queued retry replays it.
	key := uuid.NewString()
	order, _, err := c.client.CreateOrder(ctx, key, req)
	var apiErr *client.APIError
	switch {
	case err == nil:
		printOrder(c.out, order)
		return nil
	case errors.As(err, &apiErr) && !apiErr.Retryable():
		return err
	}

	entry, qerr := c.queue.EnqueueWithKey(key, req)
	if qerr != nil {
		return fmt.Errorf("%v; queue order: %w", err, qerr)
	}
	fmt.Fprintf(c.out, "server unavailable, order queued as %s\n", entry.Key)
	return nil
}

func (c *cli) status(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: status ORDER_ID STATUS", errUsage)
	}
	order, err := c.client.ChangeStatus(ctx, args[0], strings.ToUpper(args[1]))
	if err != nil {
		return err
	}
	printOrder(c.out, order)
	return nil
}

func (c *cli) stats(ctx context.Context) error {
	stats, err := c.client.Stats(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "total\t%d\n", stats.TotalOrders)
	fmt.Fprintf(w, "pending\t%d\n", stats.PendingOrders)
	fmt.Fprintf(w, "completed\t%d\n", stats.CompletedOrders)
	fmt.Fprintf(w, "cancelled\t%d\n", stats.CancelledOrders)
	fmt.Fprintf(w, "revenue\t%s\n", stats.Revenue.StringFixed(2))
	fmt.Fprintf(w, "average\t%s\n", stats.AverageOrderValue.StringFixed(2))
	return w.Flush()
}

func (c *cli) flush(ctx context.Context) error {
	report, err := c.queue.Flush(ctx)
	for _, o := range report.Submitted {
		fmt.Fprintf(c.out, "sent %s total %s\n", o.ID, o.Total.StringFixed(2))
	}
	for _, r := range report.Rejected {
		fmt.Fprintf(c.out, "dropped %s: %s\n", r.Entry.Key, r.Err.Message)
	}
	fmt.Fprintf(c.out, "%d queued\n", report.Remaining)
	return err
}

// parseOrder turns ID:SIZE arguments into a create request.
func parseOrder(items []string, customer string) (api.CreateOrderRequest, error) {
	req := api.CreateOrderRequest{Customer: customer}
	if len(items) == 0 {
		return req, fmt.Errorf("%w: order needs at least one ID:SIZE", errUsage)
	}
	for _, item := range items {
		id, size, ok := strings.Cut(item, ":")
		if !ok || id == "" || size == "" {
			return req, fmt.Errorf("%w: %q is not ID:SIZE", errUsage, item)
		}
		req.OrderDrinks = append(req.OrderDrinks, api.OrderDrinkRequest{ID: id, Size: size})
	}
	return req, nil
}

func printOrder(w io.Writer, o *api.Order) {
	fmt.Fprintf(w, "order %s %s total %s\n", o.ID, o.Status, o.Total.StringFixed(2))
	for _, d := range o.OrderDrinks {
		fmt.Fprintf(w, "  %s %s %s\n", d.Name, d.Size, d.Price.StringFixed(2))
	}
}

func envOr(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func defaultQueuePath(getenv func(string) string) string {
	dir := getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "coffeectl-queue.json"
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "coffeectl", "queue.json")
}
