package governance

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"lake-demo/internal/domain"
)

// ZonePolicy describes access rules for one zone bucket.
type ZonePolicy struct {
	Description  string              `yaml:"description"`
	AccessLevels map[string][]string `yaml:"access_levels"`
}

// SecurityPolicy is the illustrative access policy document for the lake.
// It documents intent; enforcement belongs to the backing services.
type SecurityPolicy struct {
	Version string                `yaml:"version"`
	Zones   map[string]ZonePolicy `yaml:"zones"`
}

// RetentionRule sets how long data in a zone is kept.
type RetentionRule struct {
	RetentionDays int    `yaml:"retention_days"`
	Action        string `yaml:"action"` // archive or delete
}

// RetentionPolicy is the illustrative lifecycle policy document.
type RetentionPolicy struct {
	Version string                   `yaml:"version"`
	Zones   map[string]RetentionRule `yaml:"zones"`
}

// DefaultSecurityPolicy returns the demo access policy covering every zone.
func DefaultSecurityPolicy() SecurityPolicy {
	return SecurityPolicy{
		Version: "1.0",
		Zones: map[string]ZonePolicy{
			domain.ZoneRaw: {
				Description: "Storage for raw, unmodified data",
				AccessLevels: map[string][]string{
					"read":  {"data_engineers", "data_scientists"},
					"write": {"ingestion_services"},
				},
			},
			domain.ZoneProcess: {
				Description: "Standardized and enriched datasets",
				AccessLevels: map[string][]string{
					"read":  {"data_engineers", "data_scientists", "analysts"},
					"write": {"data_engineers"},
				},
			},
			domain.ZoneAccess: {
				Description: "Analytics-ready aggregated datasets",
				AccessLevels: map[string][]string{
					"read":  {"analysts", "business_users"},
					"write": {"data_engineers"},
				},
			},
			domain.ZoneGovern: {
				Description: "Metadata, lineage, and quality records",
				AccessLevels: map[string][]string{
					"read":  {"data_stewards", "data_engineers"},
					"write": {"pipeline_services"},
				},
			},
		},
	}
}

// DefaultRetentionPolicy returns the demo lifecycle policy.
func DefaultRetentionPolicy() RetentionPolicy {
	return RetentionPolicy{
		Version: "1.0",
		Zones: map[string]RetentionRule{
			domain.ZoneRaw:     {RetentionDays: 90, Action: "archive"},
			domain.ZoneProcess: {RetentionDays: 365, Action: "archive"},
			domain.ZoneAccess:  {RetentionDays: 730, Action: "delete"},
			domain.ZoneGovern:  {RetentionDays: 1825, Action: "archive"},
		},
	}
}

// ZoneDoc documents the purpose and layout of one zone bucket.
type ZoneDoc struct {
	Purpose string   `yaml:"purpose"`
	Formats []string `yaml:"formats"`
	Layout  []string `yaml:"layout"`
}

// ZoneDocumentation returns the human-readable description of the lake
// layout stored alongside the policies.
func ZoneDocumentation() map[string]ZoneDoc {
	return map[string]ZoneDoc{
		domain.ZoneRaw: {
			Purpose: "Landing area for unmodified source data and documents",
			Formats: []string{"csv", "json"},
			Layout:  []string{"sales/", "crm/", "inventory/", "documents/"},
		},
		domain.ZoneProcess: {
			Purpose: "Standardized and enriched datasets registered with the query engine",
			Formats: []string{"parquet"},
			Layout:  []string{"sales/", "crm/", "inventory/", "integrated/", "dimensions/"},
		},
		domain.ZoneAccess: {
			Purpose: "Analytics-ready aggregates and data marts",
			Formats: []string{"parquet"},
			Layout:  []string{"analytics/", "sales_mart/"},
		},
		domain.ZoneGovern: {
			Purpose: "Metadata, lineage, quality results, reports, and policies",
			Formats: []string{"json", "yaml", "csv"},
			Layout:  []string{"metadata/", "lineage/", "quality/", "reports/", "policies/"},
		},
	}
}

// WritePolicies stores the security policy, retention policy, and zone
// documentation as YAML artifacts under the policies/ prefix of the govern
// bucket.
func (m *MetadataStore) WritePolicies(ctx context.Context) error {
	docs := []struct {
		name string
		v    any
	}{
		{"security_policy.yaml", DefaultSecurityPolicy()},
		{"retention_policy.yaml", DefaultRetentionPolicy()},
		{"zone_documentation.yaml", ZoneDocumentation()},
	}
	for _, doc := range docs {
		data, err := yaml.Marshal(doc.v)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", doc.name, err)
		}
		key := policyPrefix + doc.name
		if err := m.store.Upload(ctx, m.bucket, key, data, "application/x-yaml"); err != nil {
			return err
		}
		m.logger.Info("policy stored", "key", key)
	}
	return nil
}
