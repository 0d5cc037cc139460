package models

// Winner tells which side's version of a pushed record became authoritative.
type Winner string

const (
	WinnerClient Winner = "client"
	WinnerServer Winner = "server"
)

// PushRequest carries every pending row of one table.
//
// Hash is the hex HMAC-SHA256 of the JSON-encoded Rows when the deployment
// uses a shared integrity key, empty otherwise.
type PushRequest struct {
	Table Table    `json:"table"`
	Rows  []Record `json:"rows"`
	Hash  string   `json:"hash,omitempty"`
}

// PushResult is the outcome for one pushed row. A row rejected by validation
// has Error set and neither Winner nor Row.
type PushResult struct {
	ID     string  `json:"id"`
	Winner Winner  `json:"winner,omitempty"`
	Row    *Record `json:"row,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Rejected reports whether the server refused the row.
func (p PushResult) Rejected() bool {
	return p.Error != ""
}

// PushResponse lists one result per pushed row, in request order.
type PushResponse struct {
	Results []PushResult `json:"results"`
}

// PullRequest asks for rows of Table stored after Cursor.
type PullRequest struct {
	Table  Table `json:"table"`
	Cursor int64 `json:"cursor"`
}

// PullResponse is one page of the pull stream. Cursor is the highest
// sequence in Rows, or the request cursor when Rows is empty.
type PullResponse struct {
	Rows    []Record `json:"rows"`
	Cursor  int64    `json:"cursor"`
	HasMore bool     `json:"hasMore"`
}

// StatsRequest selects one table, or all tables when Table is empty.
type StatsRequest struct {
	Table Table `json:"table,omitempty"`
}

// RecordCounts aggregates the rows a user owns in one table.
type RecordCounts struct {
	Total   int64 `json:"total"`
	Active  int64 `json:"active"`
	Deleted int64 `json:"deleted"`
}

// TableStats is the observational summary of one table.
type TableStats struct {
	Table        Table        `json:"table"`
	Counts       RecordCounts `json:"counts"`
	LastSequence int64        `json:"lastSequence"`
}

// StatsResponse holds per-table stats plus their sum.
type StatsResponse struct {
	Tables []TableStats `json:"tables"`
	Totals RecordCounts `json:"totals"`
}
