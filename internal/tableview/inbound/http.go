package inbound

import (
	"context"

	"github.com/shandysiswandi/tableview/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/tableview/internal/tableview/entity"
	"github.com/shandysiswandi/tableview/internal/tableview/usecase"
)

type uc interface {
	Upload(ctx context.Context, in usecase.UploadInput) (usecase.UploadResult, error)
	Data(ctx context.Context, tableID string, params entity.QueryParams) (usecase.DataResult, error)
}

type Config struct {
	MaxUploadBytes  int64
	DefaultPageSize int
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, cfg Config) {
	end := NewHTTPEndpoint(uc, cfg)

	r.POST("/api/upload", end.Upload) // multipart "file" or raw body with ?filename=
	r.GET("/api/data/:id", end.Data)
	r.GET("/api/health", end.Health)
}
