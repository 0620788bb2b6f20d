package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/edmarcres18/mhrhci-backend/config"
	"github.com/edmarcres18/mhrhci-backend/internal/adminapi"
	"github.com/edmarcres18/mhrhci-backend/internal/app"
	"github.com/edmarcres18/mhrhci-backend/internal/publicapi"
	"github.com/edmarcres18/mhrhci-backend/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	conffile = flag.String("c", "mhrhci.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema")
)

func printHelp() {
	if *h {
		fmt.Fprint(os.Stderr, "mhrhci-backend usage:\nmhrhci-backend -h | -c config.yml | -initdb\n")
		flag.PrintDefaults()
		os.Exit(0)
	}
}

func main() {
	flag.Parse()
	printHelp()

	cfg := config.LoadConfig(*conffile)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	server := webserver.NewWebServer(cfg)
	server.Echo().Use(webserver.LoadUser(application))

	publicapi.NewPublicAPI(
		cfg,
		application.CacheStore(),
		application.Disk(),
		application.Mailer(),
		application.Blogs(),
		application.Products(),
		application.Principals(),
		application.Announcements(),
		application.Newsletter(),
		application.Registrations(),
		application.Heroes(),
	).InitRouter(server.Echo())

	adminapi.NewAdminAPI(
		cfg,
		application.DB(),
		application.CacheStore(),
		application.Disk(),
		application.Mailer(),
		application.Aggregator(),
		application.Blogs(),
		application.Products(),
		application.Principals(),
		application.Announcements(),
		application.Newsletter(),
		application.Users(),
		application.Invitations(),
		application.Heroes(),
	).InitRouter(server.Echo())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zap.S().Errorf("server exited: %v", err)
	}
}
