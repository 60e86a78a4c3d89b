package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/shandysiswandi/tableview/internal/tableview"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.tableview.enabled") {
		closer, err := tableview.New(tableview.Dependency{
			Config:  a.config,
			Router:  a.router,
			Metrics: a.metrics,
			ID:      a.uuid,
		})
		if err != nil {
			slog.Error("failed to init module tableview", "error", err)
			os.Exit(1)
		}
		if closer != nil {
			if a.closerFn == nil {
				a.closerFn = map[string]func(context.Context) error{}
			}
			a.closerFn["Tableview"] = closer
		}
	}
}
