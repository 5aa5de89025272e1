package contact

import "time"

type Record struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	NormalizedRow
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Columns lists every column a record exposes to the data table.
func Columns() []string {
	cols := []string{"id"}
	for _, f := range AllowedFields {
		cols = append(cols, string(f))
	}
	return append(cols, "created_at", "updated_at")
}

// Column renders a single column as text. Timestamps use RFC 3339.
func (r Record) Column(name string) string {
	switch name {
	case "id":
		return r.ID
	case "client_id":
		return r.ClientID
	case "created_at":
		return r.CreatedAt.UTC().Format(time.RFC3339)
	case "updated_at":
		return r.UpdatedAt.UTC().Format(time.RFC3339)
	}
	if f, ok := ParseField(name); ok {
		return r.Get(f)
	}
	return ""
}

// ImportRun is the audit entry written for every committed import.
type ImportRun struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"client_id"`
	Source        string    `json:"source"`
	Status        string    `json:"status"`
	TotalRows     int64     `json:"total_rows"`
	Inserted      int64     `json:"inserted"`
	FailedBatches int       `json:"failed_batches"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
