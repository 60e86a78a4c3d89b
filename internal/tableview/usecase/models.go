package usecase

import "github.com/shandysiswandi/tableview/internal/tableview/entity"

type UploadInput struct {
	Filename    string
	ContentType string
	Data        []byte
}

type UploadResult struct {
	TableID     string
	Columns     []string
	TotalRows   int
	InvalidRows int
	Delimiter   entity.Delimiter
	Errors      []string // first maxErrors row messages only
}

type DataResult struct {
	TableID string
	entity.QueryResult
}
