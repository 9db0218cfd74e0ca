package models

import "encoding/json"

// Exporter is implemented by all models that can be exported.
type Exporter interface {
	Export() (json.RawMessage, error)
}

// Registry contains all models for export.
var Registry = []Exporter{
	Client{},
	Category{},
	Transaction{},
}
