// Package app wires the dispatcher and its ambient stack together with
// go.uber.org/fx.
package app

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/lsevent/dispatcher/config"
	"github.com/lsevent/dispatcher/internal/core/eventbus"
	"github.com/lsevent/dispatcher/pkg/interfaces"
	"github.com/lsevent/dispatcher/pkg/lib/log"
)

var appLog = log.Logger("app")

// Result is the fx.Out struct produced by ProvideDispatcher.
type Result struct {
	fx.Out

	Dispatcher interfaces.Dispatcher
}

// Module returns the fx module providing a Dispatcher bound to source and
// registering its shutdown with the fx lifecycle.
func Module(source interface{}) fx.Option {
	return fx.Module("dispatcher",
		fx.Provide(func(cfg *config.Config) (Result, error) {
			return ProvideDispatcher(source, cfg)
		}),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideDispatcher builds a Dispatcher configured from cfg, installing
// cfg.Logging as the process's default logger before anything else runs.
func ProvideDispatcher(source interface{}, cfg *config.Config) (Result, error) {
	cfg.Logging.Install()

	d, err := eventbus.New(source,
		eventbus.WithMetricsConfig(cfg.Metrics),
		eventbus.WithQueueConfig(cfg.Queue),
		eventbus.WithMemoryConfig(cfg.Memory),
		eventbus.WithLogger(log.Logger("eventbus")),
	)
	if err != nil {
		return Result{}, err
	}
	return Result{Dispatcher: d}, nil
}

type lifecycleInput struct {
	fx.In
	LC         fx.Lifecycle
	Dispatcher interfaces.Dispatcher
}

func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			appLog.Info("stopping dispatcher")
			input.Dispatcher.Destroy()
			return nil
		},
	})
}

// NewApp assembles the full fx.App for source, using cfg for every
// ambient concern (metrics, logging level).
func NewApp(source interface{}, cfg *config.Config) *fx.App {
	return fx.New(
		fx.Supply(cfg),
		Module(source),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)
}
