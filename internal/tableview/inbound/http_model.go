package inbound

type UploadResponse struct {
	ID          string   `json:"id"`
	Columns     []string `json:"columns"`
	TotalRows   int      `json:"totalRows"`
	InvalidRows int      `json:"invalidRows"`
	Delimiter   string   `json:"delimiter"`
	Errors      []string `json:"errors"`
}

func (UploadResponse) Message() string {
	return "csv uploaded"
}

type DataResponse struct {
	Columns    []string   `json:"columns"`
	Rows       [][]string `json:"rows"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalRows  int        `json:"totalRows"`
	TotalPages int        `json:"totalPages"`
	HasMore    bool       `json:"hasMore"`
}

func (r DataResponse) Meta() map[string]any {
	return map[string]any{
		"page":        r.Page,
		"page_size":   r.PageSize,
		"total":       r.TotalRows,
		"total_pages": r.TotalPages,
	}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
