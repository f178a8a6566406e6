package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateByTopic(t *testing.T) {
	log := Log{
		{Topic: "A", Percentage: 80},
		{Topic: "A", Percentage: 60},
		{Topic: "B", Percentage: 100},
	}
	assert.Equal(t, map[string]float64{"A": 70, "B": 100}, AggregateByTopic(log))
}

func TestAggregateByTopic_Empty(t *testing.T) {
	got := AggregateByTopic(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAggregateByTopic_NotWeightedByTotal(t *testing.T) {
	log := Log{
		{Topic: "A", Score: 1, TotalQuestions: 1, Percentage: 100},
		{Topic: "A", Score: 0, TotalQuestions: 5, Percentage: 0},
	}
	assert.Equal(t, 50.0, AggregateByTopic(log)["A"])
}

func TestAggregateByTopic_ExactMatch(t *testing.T) {
	log := Log{
		{Topic: "Jupyter", Percentage: 100},
		{Topic: "jupyter", Percentage: 0},
	}
	got := AggregateByTopic(log)
	assert.Len(t, got, 2)
	assert.Equal(t, 100.0, got["Jupyter"])
}

func TestAggregateByDate(t *testing.T) {
	log := Log{
		{Topic: "A", Percentage: 50, Timestamp: "2026-01-01 09:00"},
		{Topic: "A", Percentage: 100, Timestamp: "2026-01-01 09:00"},
		{Topic: "A", Percentage: 0, Timestamp: "2026-01-02 10:00"},
		{Topic: "B", Percentage: 100, Timestamp: "2026-01-02 10:00"},
	}
	want := map[string]float64{
		"2026-01-01 09:00": 75,
		"2026-01-02 10:00": 0,
	}
	assert.Equal(t, want, AggregateByDate(log, "A"))
	assert.Empty(t, AggregateByDate(log, "C"))
}

func TestAggregateByDay(t *testing.T) {
	log := Log{
		{Topic: "A", Percentage: 50, Timestamp: "2026-01-01 09:00"},
		{Topic: "A", Percentage: 100, Timestamp: "2026-01-01 17:30"},
		{Topic: "A", Percentage: 0, Timestamp: "2026-01-02 10:00"},
	}
	want := map[string]float64{"2026-01-01": 75, "2026-01-02": 0}
	assert.Equal(t, want, AggregateByDay(log, "A"))
}

func TestOverallAverage(t *testing.T) {
	avg, ok := OverallAverage(Log{{Percentage: 50}, {Percentage: 100}})
	assert.True(t, ok)
	assert.Equal(t, 75.0, avg)

	_, ok = OverallAverage(Log{})
	assert.False(t, ok)
}

func TestUniqueTopics(t *testing.T) {
	log := Log{{Topic: "B"}, {Topic: "A"}, {Topic: "B"}, {Topic: "C"}}
	assert.Equal(t, []string{"B", "A", "C"}, UniqueTopics(log))
	assert.Empty(t, UniqueTopics(nil))
}

func TestFilterTopic(t *testing.T) {
	log := Log{{Name: "1", Topic: "A"}, {Name: "2", Topic: "B"}, {Name: "3", Topic: "A"}}
	got := FilterTopic(log, "A")
	assert.Equal(t, Log{{Name: "1", Topic: "A"}, {Name: "3", Topic: "A"}}, got)
}

func TestSortedKeys(t *testing.T) {
	m := map[string]float64{"b": 1, "a": 2, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(m))
}
