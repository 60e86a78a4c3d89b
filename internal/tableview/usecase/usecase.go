package usecase

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"path"
	"slices"
	"strings"

	"github.com/shandysiswandi/tableview/internal/pkg/pkgerror"
	"github.com/shandysiswandi/tableview/internal/pkg/pkguid"
	"github.com/shandysiswandi/tableview/internal/tableview/entity"
)

// DefaultMaxErrors is how many row errors an upload response carries when
// Dependency.MaxErrors is not set.
const DefaultMaxErrors = 10

type Cache interface {
	Put(ctx context.Context, tbl *entity.Table) (string, error)
	Get(ctx context.Context, id string) (*entity.Table, bool)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.TableEvent) error
}

type Dependency struct {
	Cache          Cache
	Events         EventPublisher
	ID             pkguid.StringID
	MaxErrors      int
	MaxUploadBytes int64
}

type Usecase struct {
	cache          Cache
	events         EventPublisher
	id             pkguid.StringID
	maxErrors      int
	maxUploadBytes int64
}

func New(dep Dependency) *Usecase {
	maxErrors := dep.MaxErrors
	if maxErrors < 1 {
		maxErrors = DefaultMaxErrors
	}

	return &Usecase{
		cache:          dep.Cache,
		events:         dep.Events,
		id:             dep.ID,
		maxErrors:      maxErrors,
		maxUploadBytes: dep.MaxUploadBytes,
	}
}

func (u *Usecase) Upload(ctx context.Context, in UploadInput) (UploadResult, error) {
	if u.cache == nil {
		return UploadResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	if !isCSV(in.Filename, in.ContentType) {
		u.reject(ctx, in, entity.RejectNotCSV)
		return UploadResult{}, pkgerror.NewBusiness("only CSV files are allowed", pkgerror.CodeInvalidFormat)
	}

	if u.maxUploadBytes > 0 && int64(len(in.Data)) > u.maxUploadBytes {
		u.reject(ctx, in, entity.RejectTooLarge)
		return UploadResult{}, pkgerror.NewBusiness("file too large", pkgerror.CodeTooLarge)
	}

	tbl, err := Parse(DecodeText(in.Data))
	if err != nil {
		reason := entity.RejectMissingHeader
		if errors.Is(err, ErrEmptyInput) {
			reason = entity.RejectEmpty
		}
		u.reject(ctx, in, reason)
		return UploadResult{}, pkgerror.NewBusiness(err.Error(), pkgerror.CodeInvalidFormat)
	}

	tableID, err := u.cache.Put(ctx, tbl)
	if err != nil {
		return UploadResult{}, normalizeErr(err)
	}

	slog.InfoContext(ctx, "csv table stored",
		"table_id", tableID,
		"filename", in.Filename,
		"rows", len(tbl.Rows),
		"invalid_rows", tbl.InvalidRows,
		"delimiter", tbl.Delimiter.String(),
	)

	u.publish(ctx, entity.TableEvent{
		Kind:        entity.TableEventStored,
		TableID:     tableID,
		Rows:        len(tbl.Rows),
		InvalidRows: tbl.InvalidRows,
	})

	return UploadResult{
		TableID:     tableID,
		Columns:     tbl.Columns,
		TotalRows:   tbl.TotalRows,
		InvalidRows: tbl.InvalidRows,
		Delimiter:   tbl.Delimiter,
		Errors:      slices.Clone(tbl.Errors[:min(len(tbl.Errors), u.maxErrors)]),
	}, nil
}

func (u *Usecase) Data(ctx context.Context, tableID string, params entity.QueryParams) (DataResult, error) {
	if u.cache == nil {
		return DataResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	if tableID == "" {
		return DataResult{}, pkgerror.NewInvalidInput(errors.New("id is required"))
	}

	tbl, ok := u.cache.Get(ctx, tableID)
	if !ok {
		slog.InfoContext(ctx, "csv table not found", "table_id", tableID)
		return DataResult{}, pkgerror.NewBusiness("csv data not found or expired", pkgerror.CodeNotFound)
	}

	result := Query(tbl, params)

	u.publish(ctx, entity.TableEvent{
		Kind:    entity.TableEventQueried,
		TableID: tableID,
		Rows:    len(result.Rows),
	})

	return DataResult{TableID: tableID, QueryResult: result}, nil
}

func (u *Usecase) reject(ctx context.Context, in UploadInput, reason entity.RejectReason) {
	slog.WarnContext(ctx, "rejected csv upload", "filename", in.Filename, "reason", reason)
	u.publish(ctx, entity.TableEvent{Kind: entity.TableEventRejected, Reason: reason})
}

// publish is best effort: observers must never fail an upload or a query.
func (u *Usecase) publish(ctx context.Context, event entity.TableEvent) {
	if u.events == nil {
		return
	}
	if u.id != nil {
		event.EventID = u.id.Generate()
	}

	if err := u.events.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish table event", "kind", event.Kind, "table_id", event.TableID, "error", err)
	}
}

func isCSV(filename, contentType string) bool {
	if strings.EqualFold(path.Ext(filename), ".csv") {
		return true
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && strings.EqualFold(mediaType, "text/csv")
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}
