// Package governance maintains the govern-zone artifacts: object metadata,
// transformation lineage, data-quality results, and policy documents. All
// records live as JSON or YAML objects in the govern bucket, not in a
// database; the catalog and reports are derived by listing and reading them.
package governance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"lake-demo/internal/domain"
	"lake-demo/internal/frame"
	"lake-demo/internal/objectstore"
)

const (
	metadataPrefix = "metadata/"
	lineagePrefix  = "lineage/"
	qualityPrefix  = "quality/"
	policyPrefix   = "policies/"
)

// MetadataStore reads and writes governance records in the govern bucket.
type MetadataStore struct {
	store  objectstore.Store
	bucket string
	logger *slog.Logger
	now    func() time.Time
}

// NewMetadataStore creates a store over the govern zone bucket.
func NewMetadataStore(store objectstore.Store, logger *slog.Logger) *MetadataStore {
	return &MetadataStore{
		store:  store,
		bucket: domain.ZoneGovern,
		logger: logger,
		now:    time.Now,
	}
}

func flatten(objectName string) string {
	return strings.ReplaceAll(objectName, "/", "_")
}

func (m *MetadataStore) putJSON(ctx context.Context, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return m.store.Upload(ctx, m.bucket, key, data, "application/json")
}

// StoreObjectMetadata records descriptive metadata for a dataset object.
func (m *MetadataStore) StoreObjectMetadata(ctx context.Context, meta domain.ObjectMetadata) error {
	if meta.UploadedAt.IsZero() {
		meta.UploadedAt = m.now()
	}
	key := fmt.Sprintf("%s%s/%s.json", metadataPrefix, meta.SourceBucket, flatten(meta.ObjectName))
	if err := m.putJSON(ctx, key, meta); err != nil {
		return err
	}
	m.logger.Info("object metadata stored", "key", key)
	return nil
}

// RecordTransformation appends one lineage edge from source to target.
func (m *MetadataStore) RecordTransformation(ctx context.Context, source, target domain.DatasetRef, description string) error {
	rec := domain.TransformationRecord{
		ID:             uuid.New().String(),
		Timestamp:      m.now(),
		Source:         source,
		Target:         target,
		Transformation: description,
	}
	key := fmt.Sprintf("%s%s_%s_to_%s_%s.json",
		lineagePrefix, source.Bucket, flatten(source.Object), target.Bucket, flatten(target.Object))
	if err := m.putJSON(ctx, key, rec); err != nil {
		return err
	}
	m.logger.Info("lineage recorded", "source", source.Bucket+"/"+source.Object, "target", target.Bucket+"/"+target.Object)
	return nil
}

// StoreQualityResult records the outcome of a data-quality run.
func (m *MetadataStore) StoreQualityResult(ctx context.Context, res domain.QualityResult) error {
	if res.Timestamp.IsZero() {
		res.Timestamp = m.now()
	}
	key := fmt.Sprintf("%s%s_%s.json", qualityPrefix, res.Dataset, res.Timestamp.Format("20060102_150405"))
	if err := m.putJSON(ctx, key, res); err != nil {
		return err
	}
	m.logger.Info("quality result stored", "dataset", res.Dataset, "passed", res.Passed())
	return nil
}

// Catalog lists all stored object metadata grouped by source bucket.
func (m *MetadataStore) Catalog(ctx context.Context) (map[string]map[string]domain.ObjectMetadata, error) {
	keys, err := m.store.List(ctx, m.bucket, metadataPrefix)
	if err != nil {
		return nil, err
	}
	catalog := make(map[string]map[string]domain.ObjectMetadata)
	for _, key := range keys {
		data, err := m.store.Download(ctx, m.bucket, key)
		if err != nil {
			m.logger.Warn("skipping unreadable metadata object", "key", key, "error", err)
			continue
		}
		var meta domain.ObjectMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			m.logger.Warn("skipping malformed metadata object", "key", key, "error", err)
			continue
		}
		bucket := meta.SourceBucket
		if catalog[bucket] == nil {
			catalog[bucket] = make(map[string]domain.ObjectMetadata)
		}
		catalog[bucket][meta.ObjectName] = meta
	}
	return catalog, nil
}

// TraceLineage walks lineage records backwards from the target dataset to
// its origin, returning the chain in chronological order.
func (m *MetadataStore) TraceLineage(ctx context.Context, target domain.DatasetRef) ([]domain.TransformationRecord, error) {
	keys, err := m.store.List(ctx, m.bucket, lineagePrefix)
	if err != nil {
		return nil, err
	}
	var records []domain.TransformationRecord
	for _, key := range keys {
		data, err := m.store.Download(ctx, m.bucket, key)
		if err != nil {
			m.logger.Warn("skipping unreadable lineage object", "key", key, "error", err)
			continue
		}
		var rec domain.TransformationRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			m.logger.Warn("skipping malformed lineage object", "key", key, "error", err)
			continue
		}
		records = append(records, rec)
	}

	var chain []domain.TransformationRecord
	current := target
	for i := 0; i <= len(records); i++ {
		found := false
		for _, rec := range records {
			if rec.Target == current {
				chain = append(chain, rec)
				current = rec.Source
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	// Reverse into chronological order, origin first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// QualityReport flattens all stored quality results into one frame with a
// row per individual check.
func (m *MetadataStore) QualityReport(ctx context.Context) (*frame.Frame, error) {
	keys, err := m.store.List(ctx, m.bucket, qualityPrefix)
	if err != nil {
		return nil, err
	}
	report := frame.New("dataset", "timestamp", "check_type", "column", "passed", "details")
	for _, key := range keys {
		data, err := m.store.Download(ctx, m.bucket, key)
		if err != nil {
			m.logger.Warn("skipping unreadable quality object", "key", key, "error", err)
			continue
		}
		var res domain.QualityResult
		if err := json.Unmarshal(data, &res); err != nil {
			m.logger.Warn("skipping malformed quality object", "key", key, "error", err)
			continue
		}
		for _, check := range res.Checks {
			if err := report.Append(res.Dataset, res.Timestamp, check.Check, check.Column, check.Passed, check.Details); err != nil {
				return nil, err
			}
		}
	}
	return report, nil
}
