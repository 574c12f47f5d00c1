package memory

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/coffeeshop/internal/config"
	"github.com/polkiloo/coffeeshop/internal/domain/repository"
)

// Module wires in-memory storage and repository adapters.
var Module = fx.Options(
	fx.Provide(
		newStorage,
		func(s *Storage) repository.Factory { return s },
	),
	fx.Provide(
		func(f repository.Factory) repository.DrinkRepository { return f.Drinks() },
		func(f repository.Factory) repository.OrderRepository { return f.Orders() },
	),
)

type storageParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	drinks := DefaultMenu()
	if p.Config.CatalogFile != "" {
		loaded, err := LoadCatalogFile(p.Config.CatalogFile)
		if err != nil {
			return nil, err
		}
		drinks = loaded
	}

	storage, err := New(drinks, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Logger.Info("catalog loaded", slog.Int("drinks", len(drinks)), slog.String("source", catalogSource(p.Config.CatalogFile)))
	return storage, nil
}

func catalogSource(file string) string {
	if file == "" {
		return "builtin"
	}
	return file
}
