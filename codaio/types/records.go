package types

import "time"

// DocumentRecord is the metadata of a doc.
type DocumentRecord struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Href        string     `json:"href"`
	BrowserLink string     `json:"browserLink"`
	Name        string     `json:"name"`
	Owner       string     `json:"owner"`
	OwnerName   string     `json:"ownerName"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Workspace   *Reference `json:"workspace,omitempty"`
	Folder      *Reference `json:"folder,omitempty"`
}

// RequiredKeys implements Record.
func (DocumentRecord) RequiredKeys() []string { return []string{"id", "name"} }

// SectionRecord is a section (page) of a doc.
type SectionRecord struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Href        string     `json:"href"`
	BrowserLink string     `json:"browserLink"`
	Name        string     `json:"name"`
	Parent      *Reference `json:"parent,omitempty"`
}

// RequiredKeys implements Record.
func (SectionRecord) RequiredKeys() []string { return []string{"id", "name"} }

// Sort is one entry of a table's sort specification.
type Sort struct {
	Column    Reference `json:"column"`
	Direction string    `json:"direction"`
}

// TableRecord is the metadata of a table or view.
type TableRecord struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	TableType     string     `json:"tableType"`
	Href          string     `json:"href"`
	BrowserLink   string     `json:"browserLink"`
	Name          string     `json:"name"`
	Parent        *Reference `json:"parent,omitempty"`
	DisplayColumn *Reference `json:"displayColumn,omitempty"`
	RowCount      int        `json:"rowCount"`
	ColumnCount   int        `json:"columnCount"`
	Sorts         []Sort     `json:"sorts"`
	Layout        string     `json:"layout"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// RequiredKeys implements Record.
func (TableRecord) RequiredKeys() []string { return []string{"id", "name"} }

// ColumnFormat describes how a column renders its values.
type ColumnFormat struct {
	Type    string `json:"type"`
	IsArray bool   `json:"isArray"`
}

// ColumnRecord is the metadata of a column.
type ColumnRecord struct {
	ID           string        `json:"id"`
	Type         string        `json:"type"`
	Href         string        `json:"href"`
	Name         string        `json:"name"`
	Display      bool          `json:"display"`
	Calculated   bool          `json:"calculated"`
	Formula      string        `json:"formula,omitempty"`
	DefaultValue string        `json:"defaultValue,omitempty"`
	Format       *ColumnFormat `json:"format,omitempty"`
}

// RequiredKeys implements Record.
func (ColumnRecord) RequiredKeys() []string { return []string{"id", "name"} }

// RowRecord is a row with its raw column-id to value mapping.
type RowRecord struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Href        string         `json:"href"`
	Name        string         `json:"name"`
	Index       int            `json:"index"`
	BrowserLink string         `json:"browserLink"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Values      map[string]any `json:"values"`
}

// RequiredKeys implements Record.
func (RowRecord) RequiredKeys() []string { return []string{"id", "values"} }
