// Command coffeectl is a terminal client for the coffeeshop API. Orders
// placed while the server is unreachable are kept in a local queue and sent
// by "coffeectl flush".
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv)
	stop()
	os.Exit(code)
}
