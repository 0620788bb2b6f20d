package app

import (
	"context"
	"os"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/config"
	"github.com/edmarcres18/mhrhci-backend/internal/cache"
	"github.com/edmarcres18/mhrhci-backend/internal/domain"
	"github.com/edmarcres18/mhrhci-backend/internal/mailer"
	"github.com/edmarcres18/mhrhci-backend/internal/repository"
	"github.com/edmarcres18/mhrhci-backend/internal/stats"
	"github.com/edmarcres18/mhrhci-backend/internal/storage"
)

type Application struct {
	appConfig  *config.AppConfig
	gormDB     *gorm.DB
	sched      *cron.Cron
	bus        EventBus.Bus
	cacheStore cache.Store
	disk       *storage.Disk
	mail       *mailer.Mailer
	aggregator *stats.Aggregator

	blogs         repository.BlogRepository
	products      repository.ProductRepository
	principals    repository.PrincipalRepository
	announcements repository.AnnouncementRepository
	newsletter    repository.NewsletterRepository
	registrations repository.RegistrationRepository
	users         repository.UserRepository
	invitations   repository.InvitationRepository
	heroes        repository.HeroBackgroundRepository
}

// Ensure Application implements all interfaces
var (
	_ DBProvider        = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ CacheProvider     = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger(cfg)

	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	a.gormDB = getDatabase(cfg.Database, cfg.System.Workdir)
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)

	if err := a.MigrateDB(false); err != nil {
		zap.S().Errorf("database migration failed: %v", err)
	}

	a.bus = EventBus.New()
	a.cacheStore = cache.NewMemoryStore()
	a.disk = storage.NewDisk(cfg.System.Workdir, cfg.Web.PublicURL)
	a.mail = mailer.NewMailer(cfg.Mail, cfg.Web.PublicURL)
	a.aggregator = stats.NewAggregator(a.gormDB)

	a.blogs = repository.NewGormBlogRepository(a.gormDB, a.bus)
	a.products = repository.NewGormProductRepository(a.gormDB, a.bus)
	a.principals = repository.NewGormPrincipalRepository(a.gormDB, a.bus)
	a.announcements = repository.NewGormAnnouncementRepository(a.gormDB, a.bus)
	a.newsletter = repository.NewGormNewsletterRepository(a.gormDB)
	a.registrations = repository.NewGormRegistrationRepository(a.gormDB)
	a.users = repository.NewGormUserRepository(a.gormDB)
	a.invitations = repository.NewGormInvitationRepository(a.gormDB)
	a.heroes = repository.NewGormHeroBackgroundRepository(a.gormDB, a.bus)

	a.initInvalidator()
	a.checkSuper()
	a.initJob()
}

// initLogger wires the zap global logger, with lumberjack file rotation when
// file logging is enabled.
func (a *Application) initLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

// initInvalidator binds cache invalidation to entity lifecycle events.
func (a *Application) initInvalidator() {
	inv := cache.NewKeySetInvalidator(a.cacheStore, func() []int64 {
		ids, err := a.blogs.IDs(context.Background())
		if err != nil {
			zap.L().Warn("blog id listing for invalidation failed", zap.Error(err))
			return nil
		}
		return ids
	})
	if err := inv.Bind(a.bus); err != nil {
		zap.S().Errorf("cache invalidator bind failed: %v", err)
	}
}

func (a *Application) MigrateDB(track bool) (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEGUB_TRACE") != "" {
				debug.PrintStack()
			}
			err2, ok := err1.(error)
			if ok {
				err = err2
				zap.S().Error(err2.Error())
			}
		}
	}()
	if track {
		if err := a.gormDB.Debug().Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	} else {
		if err := a.gormDB.Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	}
	return nil
}

func (a *Application) DropAll() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

func (a *Application) InitDb() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
	err := a.gormDB.Migrator().AutoMigrate(domain.Tables...)
	if err != nil {
		zap.S().Error(err)
	}
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// CacheStore returns the shared response cache
func (a *Application) CacheStore() cache.Store {
	return a.cacheStore
}

// Bus returns the entity lifecycle event bus
func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

// Disk returns the public file storage
func (a *Application) Disk() *storage.Disk {
	return a.disk
}

// Mailer returns the newsletter mail sender
func (a *Application) Mailer() *mailer.Mailer {
	return a.mail
}

// Aggregator returns the dashboard statistics aggregator
func (a *Application) Aggregator() *stats.Aggregator {
	return a.aggregator
}

func (a *Application) Blogs() repository.BlogRepository { return a.blogs }

func (a *Application) Products() repository.ProductRepository { return a.products }

func (a *Application) Principals() repository.PrincipalRepository { return a.principals }

func (a *Application) Announcements() repository.AnnouncementRepository { return a.announcements }

func (a *Application) Newsletter() repository.NewsletterRepository { return a.newsletter }

func (a *Application) Registrations() repository.RegistrationRepository { return a.registrations }

func (a *Application) Users() repository.UserRepository { return a.users }

func (a *Application) Invitations() repository.InvitationRepository { return a.invitations }

func (a *Application) Heroes() repository.HeroBackgroundRepository { return a.heroes }

// LoadUser resolves a session user id, used by the webserver middleware.
func (a *Application) LoadUser(id int64) (*domain.User, error) {
	return a.users.GetByID(context.Background(), id)
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if s, ok := a.cacheStore.(*cache.MemoryStore); ok {
		_ = s.Close()
	}
	_ = zap.L().Sync()
}
