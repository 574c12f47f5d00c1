package memory

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/coffeeshop/internal/config"
	"github.com/polkiloo/coffeeshop/internal/domain/repository"
)

func TestModuleProvidesRepositories(t *testing.T) {
	var (
		drinks repository.DrinkRepository
		orders repository.OrderRepository
	)
	app := fxtest.New(t,
		fx.NopLogger,
		fx.Supply(&config.Config{}),
		fx.Supply(slog.New(slog.NewJSONHandler(io.Discard, nil))),
		Module,
		fx.Populate(&drinks, &orders),
	)
	app.RequireStart()
	defer app.RequireStop()

	if drinks == nil || orders == nil {
		t.Fatal("expected repositories to be provided")
	}
}

func TestModuleFailsOnMissingCatalogFile(t *testing.T) {
	app := fx.New(
		fx.NopLogger,
		fx.Supply(&config.Config{CatalogFile: filepath.Join(t.TempDir(), "nope.json")}),
		fx.Supply(slog.New(slog.NewJSONHandler(io.Discard, nil))),
		Module,
		fx.Invoke(func(*Storage) {}),
	)
	if app.Err() == nil {
		t.Fatal("expected error for missing catalog file")
	}
}
