package metrics

import "go.uber.org/fx"

// Module provides the application metrics.
var Module = fx.Provide(New)
