package app

import (
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/config"
	"github.com/edmarcres18/mhrhci-backend/internal/cache"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// CacheProvider provides the shared response cache
type CacheProvider interface {
	CacheStore() cache.Store
}

// AppContext combines all provider interfaces for full application context.
// Services should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider
	SchedulerProvider
	CacheProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
	Release()
}
