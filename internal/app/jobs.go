package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/edmarcres18/mhrhci-backend/internal/cache"
	"github.com/edmarcres18/mhrhci-backend/internal/domain"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@daily", func() {
		a.gormDB.
			Where("opt_time < ? ", time.Now().
				Add(-time.Hour*24*365)).Delete(domain.SysOprLog{})
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@hourly", func() {
		if err := a.invitations.DeleteExpired(context.Background(), time.Now()); err != nil {
			zap.S().Errorf("expired invitation purge error %s", err.Error())
		}
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	// Drop dashboard aggregates every few minutes so admin dashboards never
	// show data older than one TTL even when mutations bypass the bus.
	_, err = a.sched.AddFunc("@every 5m", func() {
		for _, key := range []string{
			cache.KeyDashboardStats,
			cache.KeyDashboardOverview,
			cache.KeyDashboardRecentActivity,
		} {
			_ = a.cacheStore.Forget(key)
		}
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}
