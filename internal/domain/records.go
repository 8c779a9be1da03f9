package domain

import "time"

// Zone bucket names. Zones are a naming convention over object storage;
// nothing in the code enforces cross-zone invariants.
const (
	ZoneRaw     = "raw-ingestion-zone"
	ZoneProcess = "process-zone"
	ZoneAccess  = "access-zone"
	ZoneGovern  = "govern-zone-metadata"
)

// Zones lists every zone bucket in pipeline order.
var Zones = []string{ZoneRaw, ZoneProcess, ZoneAccess, ZoneGovern}

// ObjectMetadata describes a dataset object stored in a zone bucket.
type ObjectMetadata struct {
	SourceBucket       string            `json:"source_bucket"`
	ObjectName         string            `json:"object_name"`
	UploadedAt         time.Time         `json:"uploaded_at"`
	Format             string            `json:"format,omitempty"`
	Rows               int               `json:"rows,omitempty"`
	Columns            []string          `json:"columns,omitempty"`
	ContentHash        string            `json:"content_hash,omitempty"`
	SizeBytes          int               `json:"size_bytes,omitempty"`
	Description        string            `json:"description,omitempty"`
	SourceSystem       string            `json:"source_system,omitempty"`
	DataOwner          string            `json:"data_owner,omitempty"`
	UpdateFrequency    string            `json:"update_frequency,omitempty"`
	DataClassification string            `json:"data_classification,omitempty"`
	Extra              map[string]string `json:"extra,omitempty"`
}

// DatasetRef identifies a dataset object by bucket and key.
type DatasetRef struct {
	Bucket string `json:"bucket"`
	Object string `json:"object"`
}

// TransformationRecord is one lineage edge: a source object transformed
// into a target object.
type TransformationRecord struct {
	ID             string     `json:"id"`
	Timestamp      time.Time  `json:"timestamp"`
	Source         DatasetRef `json:"source"`
	Target         DatasetRef `json:"target"`
	Transformation string     `json:"transformation"`
}

// QualityCheck is the outcome of a single data-quality rule on one column.
type QualityCheck struct {
	Check   string `json:"check"`
	Column  string `json:"column"`
	Passed  bool   `json:"passed"`
	Details string `json:"details"`
}

// QualityResult groups the checks run against one dataset.
type QualityResult struct {
	Dataset   string         `json:"dataset"`
	Timestamp time.Time      `json:"timestamp"`
	RowCount  int            `json:"row_count"`
	Checks    []QualityCheck `json:"checks"`
}

// Passed reports whether every check in the result passed.
func (r *QualityResult) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}
