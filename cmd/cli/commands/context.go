package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/harukisb/raidloot/internal/config"
	"github.com/harukisb/raidloot/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
}
