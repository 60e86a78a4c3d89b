package inbound

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/tableview/internal/pkg/pkgerror"
	"github.com/shandysiswandi/tableview/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/tableview/internal/tableview/entity"
	"github.com/shandysiswandi/tableview/internal/tableview/usecase"
)

const (
	defaultMaxUploadBytes int64 = 10 << 20
	defaultPageSize             = 20
)

type HTTPEndpoint struct {
	uc              uc
	maxUploadBytes  int64
	defaultPageSize int
	now             func() time.Time
}

func NewHTTPEndpoint(uc uc, cfg Config) *HTTPEndpoint {
	maxBytes := cfg.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}

	pageSize := cfg.DefaultPageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	return &HTTPEndpoint{
		uc:              uc,
		maxUploadBytes:  maxBytes,
		defaultPageSize: pageSize,
		now:             time.Now,
	}
}

func (h *HTTPEndpoint) Upload(ctx context.Context, r *http.Request) (any, error) {
	in, err := h.extractUpload(r)
	if err != nil {
		return nil, err
	}

	result, err := h.uc.Upload(ctx, in)
	if err != nil {
		return nil, err
	}

	return UploadResponse{
		ID:          result.TableID,
		Columns:     result.Columns,
		TotalRows:   result.TotalRows,
		InvalidRows: result.InvalidRows,
		Delimiter:   result.Delimiter.String(),
		Errors:      result.Errors,
	}, nil
}

func (h *HTTPEndpoint) Data(ctx context.Context, r *http.Request) (any, error) {
	tableID := strings.TrimSpace(pkgrouter.GetParam(ctx, "id"))

	params, err := h.parseQuery(r)
	if err != nil {
		return nil, err
	}

	result, err := h.uc.Data(ctx, tableID, params)
	if err != nil {
		return nil, err
	}

	return DataResponse{
		Columns:    result.Columns,
		Rows:       result.Rows,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalRows:  result.TotalRows,
		TotalPages: result.TotalPages,
		HasMore:    result.HasMore,
	}, nil
}

func (h *HTTPEndpoint) Health(context.Context, *http.Request) (any, error) {
	return HealthResponse{
		Status:    "ok",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
	}, nil
}

// parseQuery rejects only non-integer page values; out-of-range integers are
// clamped by usecase.Query.
func (h *HTTPEndpoint) parseQuery(r *http.Request) (entity.QueryParams, error) {
	query := r.URL.Query()

	page, err := parseInt(query.Get("page"), 1)
	if err != nil {
		return entity.QueryParams{}, pkgerror.NewInvalidInput(errors.New("invalid page"))
	}

	pageSize, err := parseInt(query.Get("pageSize"), h.defaultPageSize)
	if err != nil {
		return entity.QueryParams{}, pkgerror.NewInvalidInput(errors.New("invalid pageSize"))
	}

	searchColumn := query.Get("searchColumn")
	if searchColumn == "" {
		searchColumn = entity.AllColumns
	}

	return entity.QueryParams{
		Search:        query.Get("search"),
		SearchColumn:  searchColumn,
		SortBy:        query.Get("sortBy"),
		SortDirection: entity.ParseSortDirection(query.Get("sortDirection")),
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

func parseInt(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}

	return strconv.Atoi(raw)
}

// extractUpload reads at most maxUploadBytes+1 bytes so the usecase can tell
// an oversized file from one exactly at the limit.
func (h *HTTPEndpoint) extractUpload(r *http.Request) (usecase.UploadInput, error) {
	if r.Body == nil {
		return usecase.UploadInput{}, pkgerror.NewBusiness("no file uploaded", pkgerror.CodeInvalidFormat)
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err == nil && strings.EqualFold(mediaType, "multipart/form-data") {
		return h.extractMultipartFile(r)
	}

	data, err := h.readLimited(r.Body)
	if err != nil {
		return usecase.UploadInput{}, err
	}
	if len(data) == 0 {
		return usecase.UploadInput{}, pkgerror.NewBusiness("no file uploaded", pkgerror.CodeInvalidFormat)
	}

	return usecase.UploadInput{
		Filename:    strings.TrimSpace(r.URL.Query().Get("filename")),
		ContentType: r.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (h *HTTPEndpoint) extractMultipartFile(r *http.Request) (usecase.UploadInput, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return usecase.UploadInput{}, pkgerror.NewInvalidFormat()
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return usecase.UploadInput{}, pkgerror.NewBusiness("no file uploaded", pkgerror.CodeInvalidFormat)
			}
			return usecase.UploadInput{}, pkgerror.NewInvalidFormat()
		}

		if part.FormName() != "file" {
			_ = part.Close()
			continue
		}

		data, err := h.readLimited(part)
		_ = part.Close()
		if err != nil {
			return usecase.UploadInput{}, err
		}

		return usecase.UploadInput{
			Filename:    part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
			Data:        data,
		}, nil
	}
}

func (h *HTTPEndpoint) readLimited(src io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(src, h.maxUploadBytes+1))
	if err != nil {
		return nil, pkgerror.NewInvalidFormat()
	}
	return data, nil
}
