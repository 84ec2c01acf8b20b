// Package autoload configures the global logger from LOG_* variables on import.
package autoload

import (
	configx "github.com/colomboai/cairo/pkg/config"
	logx "github.com/colomboai/cairo/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
