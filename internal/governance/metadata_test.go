package governance

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"lake-demo/internal/domain"
	"lake-demo/internal/testutil"
)

func newTestStore(t *testing.T) (*MetadataStore, *testutil.MemStore) {
	t.Helper()
	mem := testutil.NewMemStore()
	m := NewMetadataStore(mem, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return m, mem
}

func TestStoreObjectMetadataAndCatalog(t *testing.T) {
	m, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, m.StoreObjectMetadata(ctx, domain.ObjectMetadata{
		SourceBucket: domain.ZoneRaw,
		ObjectName:   "sales/transactions.csv",
		Format:       "csv",
		Rows:         1000,
		Description:  "Raw transactions",
	}))
	require.NoError(t, m.StoreObjectMetadata(ctx, domain.ObjectMetadata{
		SourceBucket: domain.ZoneProcess,
		ObjectName:   "sales/transactions.parquet",
		Format:       "parquet",
	}))

	catalog, err := m.Catalog(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	meta := catalog[domain.ZoneRaw]["sales/transactions.csv"]
	assert.Equal(t, 1000, meta.Rows)
	assert.Equal(t, "Raw transactions", meta.Description)
	assert.False(t, meta.UploadedAt.IsZero())
}

func TestCatalogSkipsMalformedObjects(t *testing.T) {
	m, mem := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, m.StoreObjectMetadata(ctx, domain.ObjectMetadata{
		SourceBucket: domain.ZoneRaw,
		ObjectName:   "good.csv",
	}))
	require.NoError(t, mem.Upload(ctx, domain.ZoneGovern, "metadata/broken.json", []byte("{"), "application/json"))

	catalog, err := m.Catalog(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Contains(t, catalog[domain.ZoneRaw], "good.csv")
}

func TestTraceLineage(t *testing.T) {
	m, _ := newTestStore(t)
	ctx := context.Background()

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { ts = ts.Add(time.Minute); return ts }

	raw := domain.DatasetRef{Bucket: domain.ZoneRaw, Object: "sales/transactions.csv"}
	proc := domain.DatasetRef{Bucket: domain.ZoneProcess, Object: "sales/transactions.parquet"}
	agg := domain.DatasetRef{Bucket: domain.ZoneAccess, Object: "analytics/customer_summary.parquet"}

	require.NoError(t, m.RecordTransformation(ctx, raw, proc, "standardized"))
	require.NoError(t, m.RecordTransformation(ctx, proc, agg, "aggregated"))

	chain, err := m.TraceLineage(ctx, agg)
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, raw, chain[0].Source)
	assert.Equal(t, proc, chain[0].Target)
	assert.Equal(t, proc, chain[1].Source)
	assert.Equal(t, agg, chain[1].Target)
	assert.NotEmpty(t, chain[0].ID)
}

func TestTraceLineageUnknownTarget(t *testing.T) {
	m, mem := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, mem.EnsureBucket(ctx, domain.ZoneGovern))

	chain, err := m.TraceLineage(ctx, domain.DatasetRef{Bucket: "x", Object: "y"})
	require.NoError(t, err)
	assert.Empty(t, chain)
}

func TestQualityReport(t *testing.T) {
	m, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, m.StoreQualityResult(ctx, domain.QualityResult{
		Dataset:   "processed_transactions",
		Timestamp: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		RowCount:  1000,
		Checks: []domain.QualityCheck{
			{Check: "no_nulls", Column: "transaction_id", Passed: true, Details: "0 null values found"},
			{Check: "unique", Column: "transaction_id", Passed: true, Details: "0 duplicate values found"},
		},
	}))
	require.NoError(t, m.StoreQualityResult(ctx, domain.QualityResult{
		Dataset:   "processed_customers",
		Timestamp: time.Date(2024, 5, 1, 9, 1, 0, 0, time.UTC),
		Checks: []domain.QualityCheck{
			{Check: "pattern", Column: "email", Passed: false, Details: "2 values do not match pattern"},
		},
	}))

	report, err := m.QualityReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"dataset", "timestamp", "check_type", "column", "passed", "details"}, report.Columns())
	require.Equal(t, 3, report.NumRows())

	failed := 0
	for i := 0; i < report.NumRows(); i++ {
		if !report.Row(i).Bool("passed") {
			failed++
		}
	}
	assert.Equal(t, 1, failed)
}

func TestWritePolicies(t *testing.T) {
	m, mem := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, m.WritePolicies(ctx))

	data, err := mem.Download(ctx, domain.ZoneGovern, "policies/security_policy.yaml")
	require.NoError(t, err)
	var sec SecurityPolicy
	require.NoError(t, yaml.Unmarshal(data, &sec))
	assert.Len(t, sec.Zones, 4)
	assert.Contains(t, sec.Zones, domain.ZoneRaw)

	data, err = mem.Download(ctx, domain.ZoneGovern, "policies/retention_policy.yaml")
	require.NoError(t, err)
	var ret RetentionPolicy
	require.NoError(t, yaml.Unmarshal(data, &ret))
	assert.Equal(t, 90, ret.Zones[domain.ZoneRaw].RetentionDays)

	data, err = mem.Download(ctx, domain.ZoneGovern, "policies/zone_documentation.yaml")
	require.NoError(t, err)
	var zones map[string]ZoneDoc
	require.NoError(t, yaml.Unmarshal(data, &zones))
	assert.Len(t, zones, 4)
	assert.Contains(t, zones[domain.ZoneGovern].Layout, "lineage/")
}
