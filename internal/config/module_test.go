package config

import (
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestModuleAllowsReplacingConfig(t *testing.T) {
	var cfg *Config
	app := fxtest.New(t,
		fx.NopLogger,
		Module,
		fx.Replace(&Config{RunAddress: ":0"}),
		fx.Populate(&cfg),
	)
	defer app.RequireStart().RequireStop()

	if cfg == nil || cfg.RunAddress != ":0" {
		t.Fatalf("expected replaced config, got %+v", cfg)
	}
}
