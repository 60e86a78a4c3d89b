package entity

type TableEventKind string

const (
	TableEventStored   TableEventKind = "STORED"
	TableEventRejected TableEventKind = "REJECTED"
	TableEventQueried  TableEventKind = "QUERIED"
)

// RejectReason is a bounded label for why an upload was refused.
type RejectReason string

const (
	RejectNotCSV        RejectReason = "not_csv"
	RejectTooLarge      RejectReason = "too_large"
	RejectEmpty         RejectReason = "empty"
	RejectMissingHeader RejectReason = "missing_header"
)

// TableEvent is emitted after uploads and queries for observers such as metrics.
type TableEvent struct {
	EventID     string
	Kind        TableEventKind
	TableID     string
	Rows        int
	InvalidRows int
	Reason      RejectReason // REJECTED only
}
