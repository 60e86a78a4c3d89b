package app

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/tableview/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/tableview/internal/pkg/pkglog"
	"github.com/shandysiswandi/tableview/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/tableview/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/tableview/internal/pkg/pkguid"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	configPath string
	config     pkgconfig.Config

	// libraries
	uuid    pkguid.StringID
	metrics *pkgmetrics.Metrics

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	//
	closerFn map[string]func(context.Context) error
}

// New builds the application from the config file at configPath. An empty
// path falls back to /config/config.yaml, or ./config/config.yaml when LOCAL=true.
func New(configPath string) *App {
	pkglog.InitLogging("info")

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:        ctx,
		cancel:     cancel,
		configPath: configPath,
	}

	app.initConfig()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
