package commands

import (
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/yellow-box/internal/config"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg    *config.Config
	Logger *zap.Logger

	// Now supplies "today" for default start dates and months
	Now func() time.Time
}

func (a *AppContext) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}
