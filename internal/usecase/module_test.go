package usecase

import (
	"io"
	"log/slog"
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/coffeeshop/internal/domain/repository"
	"github.com/polkiloo/coffeeshop/internal/storage/memory"
)

func TestModuleProvidesUseCases(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	storage, err := memory.New(memory.DefaultMenu(), logger)
	if err != nil {
		t.Fatalf("storage: %v", err)
	}

	var (
		catalog  *CatalogUseCase
		resolver *PricingResolver
		orders   *OrderUseCase
	)
	app := fxtest.New(t,
		fx.NopLogger,
		fx.Supply(logger),
		fx.Provide(
			func() repository.DrinkRepository { return storage.Drinks() },
			func() repository.OrderRepository { return storage.Orders() },
		),
		Module,
		fx.Populate(&catalog, &resolver, &orders),
	)
	defer app.RequireStart().RequireStop()

	if catalog == nil || resolver == nil || orders == nil {
		t.Fatal("expected use cases to be provided")
	}
}
