package tableview

import (
	"context"
	"errors"
	"time"

	"github.com/shandysiswandi/tableview/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/tableview/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/tableview/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/tableview/internal/pkg/pkguid"
	"github.com/shandysiswandi/tableview/internal/tableview/event"
	"github.com/shandysiswandi/tableview/internal/tableview/inbound"
	"github.com/shandysiswandi/tableview/internal/tableview/store"
	"github.com/shandysiswandi/tableview/internal/tableview/usecase"
)

type Dependency struct {
	Config  pkgconfig.Config
	Router  *pkgrouter.Router
	Metrics *pkgmetrics.Metrics
	ID      pkguid.StringID
}

func New(dep Dependency) (func(context.Context) error, error) {
	if dep.Config == nil || dep.Router == nil || dep.Metrics == nil {
		return nil, errors.New("tableview: missing dependency")
	}

	if dep.ID == nil {
		dep.ID = pkguid.NewUUID()
	}

	recorder := event.NewMetricsRecorder(dep.Metrics)

	cache := store.NewTableCache(store.Config{
		TTL:         dep.Config.GetDuration("modules.tableview.cache_ttl"),
		WarnEntries: int(dep.Config.GetInt("modules.tableview.cache_warn_entries")),
	}, pkguid.NewToken("csv_"), nil, recorder)

	buffer := int(dep.Config.GetInt("events.buffer"))
	if buffer < 1 {
		buffer = 256
	}

	bus := event.NewBus(buffer)
	consumer := event.NewConsumer(bus, recorder, event.ConsumerConfig{
		Workers:     int(dep.Config.GetInt("events.workers")),
		MaxRetries:  3,
		BaseBackoff: 50 * time.Millisecond,
	})
	consumer.Start()

	maxUploadBytes := dep.Config.GetInt("modules.tableview.max_upload_bytes")

	uc := usecase.New(usecase.Dependency{
		Cache:          cache,
		Events:         bus,
		ID:             dep.ID,
		MaxErrors:      int(dep.Config.GetInt("modules.tableview.max_errors")),
		MaxUploadBytes: maxUploadBytes,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, inbound.Config{
		MaxUploadBytes:  maxUploadBytes,
		DefaultPageSize: int(dep.Config.GetInt("modules.tableview.default_page_size")),
	})

	return consumer.Stop, nil
}
