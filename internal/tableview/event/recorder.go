package event

import (
	"context"
	"fmt"

	"github.com/shandysiswandi/tableview/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/tableview/internal/tableview/entity"
)

// MetricsRecorder turns table events and cache notifications into Prometheus
// samples. It is both the consumer Handler and the cache Observer.
type MetricsRecorder struct {
	m *pkgmetrics.Metrics
}

func NewMetricsRecorder(m *pkgmetrics.Metrics) *MetricsRecorder {
	return &MetricsRecorder{m: m}
}

func (r *MetricsRecorder) Handle(_ context.Context, event entity.TableEvent) error {
	switch event.Kind {
	case entity.TableEventStored:
		r.m.UploadsTotal.WithLabelValues(pkgmetrics.ResultAccepted).Inc()
		r.m.RowsParsed.WithLabelValues(pkgmetrics.RowValid).Add(float64(event.Rows))
		r.m.RowsParsed.WithLabelValues(pkgmetrics.RowInvalid).Add(float64(event.InvalidRows))
	case entity.TableEventRejected:
		r.m.UploadsTotal.WithLabelValues(pkgmetrics.ResultRejected).Inc()
		r.m.RejectedTotal.WithLabelValues(string(event.Reason)).Inc()
	case entity.TableEventQueried:
		r.m.QueriesTotal.Inc()
	default:
		return fmt.Errorf("unknown table event kind %q", event.Kind)
	}

	return nil
}

func (r *MetricsRecorder) CacheSize(n int) {
	r.m.CacheEntries.Set(float64(n))
}

func (r *MetricsRecorder) Evicted(n int) {
	r.m.CacheEvictions.Add(float64(n))
}
