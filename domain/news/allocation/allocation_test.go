package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceQuotas(t *testing.T) {
	tests := []struct {
		name       string
		totalLimit int
		numSources int
		want       []int
	}{
		{
			name:       "even split with remainder",
			totalLimit: 20,
			numSources: 3,
			want:       []int{7, 7, 6},
		},
		{
			name:       "four sources",
			totalLimit: 15,
			numSources: 4,
			want:       []int{4, 4, 4, 3},
		},
		{
			name:       "exact division",
			totalLimit: 12,
			numSources: 4,
			want:       []int{3, 3, 3, 3},
		},
		{
			name:       "single source takes everything",
			totalLimit: 9,
			numSources: 1,
			want:       []int{9},
		},
		{
			name:       "fewer articles than sources",
			totalLimit: 2,
			numSources: 5,
			want:       []int{1, 1, 0, 0, 0},
		},
		{
			name:       "one article many sources",
			totalLimit: 1,
			numSources: 3,
			want:       []int{1, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SourceQuotas(tt.totalLimit, tt.numSources)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSourceQuotasSumAndBounds(t *testing.T) {
	for totalLimit := 1; totalLimit <= 40; totalLimit++ {
		for numSources := 1; numSources <= 10; numSources++ {
			quotas := SourceQuotas(totalLimit, numSources)
			require.Len(t, quotas, numSources)

			sum := 0
			for _, q := range quotas {
				sum += q
			}

			if totalLimit >= numSources {
				assert.Equal(t, totalLimit, sum)
				base := totalLimit / numSources
				for _, q := range quotas {
					assert.Contains(t, []int{base, base + 1}, q)
				}
			} else {
				assert.Equal(t, totalLimit, sum)
			}
		}
	}
}

func TestSourceQuotasInvalidInput(t *testing.T) {
	assert.Nil(t, SourceQuotas(10, 0))
	assert.Nil(t, SourceQuotas(0, 3))
	assert.Nil(t, SourceQuotas(-1, 3))
}

func TestPlanTopicsCeilingRegime(t *testing.T) {
	plan := PlanTopics([]string{"tecnologia", "economia", "política"}, 20)

	require.Len(t, plan.Served, 3)
	for _, tq := range plan.Served {
		assert.Equal(t, 2, tq.Quota)
	}
	assert.Empty(t, plan.Dropped)
	assert.Equal(t, 6, plan.TotalQuota())
}

func TestPlanTopicsFloorRegimeWithExtras(t *testing.T) {
	topics := []string{"a", "b", "c", "d", "e"}
	plan := PlanTopics(topics, 8)

	require.Len(t, plan.Served, 5)
	assert.Empty(t, plan.Dropped)

	// Three extras go to the first three topics in order
	quotas := make([]int, 0, 5)
	for _, tq := range plan.Served {
		quotas = append(quotas, tq.Quota)
	}
	assert.Equal(t, []int{2, 2, 2, 1, 1}, quotas)
	assert.Equal(t, 8, plan.TotalQuota())
}

func TestPlanTopicsTruncationRegime(t *testing.T) {
	topics := []string{"a", "b", "c", "d", "e", "f"}
	plan := PlanTopics(topics, 5)

	require.Len(t, plan.Served, 5)
	for i, tq := range plan.Served {
		assert.Equal(t, topics[i], tq.Topic)
		assert.Equal(t, 1, tq.Quota)
	}

	// The sixth topic is reported dropped, not silently omitted
	assert.Equal(t, []string{"f"}, plan.Dropped)
}

func TestPlanTopicsExactFloor(t *testing.T) {
	plan := PlanTopics([]string{"a", "b", "c"}, 3)

	require.Len(t, plan.Served, 3)
	for _, tq := range plan.Served {
		assert.Equal(t, 1, tq.Quota)
	}
	assert.Empty(t, plan.Dropped)
}

func TestPlanTopicsEmptyInput(t *testing.T) {
	plan := PlanTopics(nil, 10)
	assert.Empty(t, plan.Served)
	assert.Empty(t, plan.Dropped)

	plan = PlanTopics([]string{"a"}, 0)
	assert.Empty(t, plan.Served)
	assert.Equal(t, []string{"a"}, plan.Dropped)
}

func TestPlanTopicsDeterminism(t *testing.T) {
	topics := []string{"tecnologia", "economia", "política", "esportes", "saúde"}

	first := PlanTopics(topics, 7)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, PlanTopics(topics, 7))
	}

	quotas := SourceQuotas(17, 5)
	for i := 0; i < 50; i++ {
		assert.Equal(t, quotas, SourceQuotas(17, 5))
	}
}

func TestPlanTopicsWithConfigCustomCeiling(t *testing.T) {
	plan := PlanTopicsWithConfig([]string{"a", "b"}, 10, 2, 4)

	require.Len(t, plan.Served, 2)
	assert.Equal(t, 4, plan.Served[0].Quota)
	assert.Equal(t, 4, plan.Served[1].Quota)
	assert.Empty(t, plan.Dropped)
}
