package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lake-demo/internal/domain"
)

func TestResolveExecutionOrder(t *testing.T) {
	tests := []struct {
		name       string
		tasks      []Task
		wantLevels [][]string
		wantErr    string
	}{
		{
			name:       "single_task",
			tasks:      []Task{{Name: "ingest"}},
			wantLevels: [][]string{{"ingest"}},
		},
		{
			name: "linear_chain",
			tasks: []Task{
				{Name: "ingest"},
				{Name: "process", DependsOn: []string{"ingest"}},
				{Name: "access", DependsOn: []string{"process"}},
			},
			wantLevels: [][]string{{"ingest"}, {"process"}, {"access"}},
		},
		{
			name: "diamond",
			tasks: []Task{
				{Name: "ingest"},
				{Name: "process", DependsOn: []string{"ingest"}},
				{Name: "dimension", DependsOn: []string{"ingest"}},
				{Name: "access", DependsOn: []string{"process", "dimension"}},
			},
			wantLevels: [][]string{{"ingest"}, {"process", "dimension"}, {"access"}},
		},
		{
			name: "independent_tasks_keep_declaration_order",
			tasks: []Task{
				{Name: "c"},
				{Name: "a"},
				{Name: "b"},
			},
			wantLevels: [][]string{{"c", "a", "b"}},
		},
		{
			name:    "duplicate_task",
			tasks:   []Task{{Name: "x"}, {Name: "x"}},
			wantErr: "duplicate task",
		},
		{
			name:    "unknown_dependency",
			tasks:   []Task{{Name: "x", DependsOn: []string{"ghost"}}},
			wantErr: "unknown dependency",
		},
		{
			name:    "self_dependency",
			tasks:   []Task{{Name: "x", DependsOn: []string{"x"}}},
			wantErr: "self dependency",
		},
		{
			name: "cycle",
			tasks: []Task{
				{Name: "a", DependsOn: []string{"b"}},
				{Name: "b", DependsOn: []string{"a"}},
			},
			wantErr: "cycle detected",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			levels, err := ResolveExecutionOrder(tt.tasks)
			if tt.wantErr != "" {
				require.Error(t, err)
				var verr *domain.ValidationError
				assert.ErrorAs(t, err, &verr)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevels, levels)
		})
	}
}

func TestResolveExecutionOrderEmpty(t *testing.T) {
	levels, err := ResolveExecutionOrder(nil)
	require.NoError(t, err)
	assert.Nil(t, levels)
}
