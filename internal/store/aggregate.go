package store

import "sort"

const dayLayout = "2006-01-02"

// AggregateByTopic returns the mean percentage per topic. Topics are matched
// exactly and every attempt weighs the same regardless of its question count.
// Topics without attempts are absent; an empty log yields an empty map.
func AggregateByTopic(log Log) map[string]float64 {
	return meanBy(log, func(a Attempt) (string, bool) {
		return a.Topic, true
	})
}

// AggregateByDate returns the mean percentage per timestamp for the attempts
// of one topic. Attempts are grouped by their stored timestamp string.
func AggregateByDate(log Log, topic string) map[string]float64 {
	return meanBy(log, func(a Attempt) (string, bool) {
		return a.Timestamp, a.Topic == topic
	})
}

// AggregateByDay is AggregateByDate at day granularity (YYYY-MM-DD).
// Timestamps that do not parse keep their full string as the key.
func AggregateByDay(log Log, topic string) map[string]float64 {
	return meanBy(log, func(a Attempt) (string, bool) {
		if a.Topic != topic {
			return "", false
		}
		t, err := a.Time()
		if err != nil {
			return a.Timestamp, true
		}
		return t.Format(dayLayout), true
	})
}

// OverallAverage returns the mean percentage across all attempts.
// ok is false when the log is empty.
func OverallAverage(log Log) (avg float64, ok bool) {
	if len(log) == 0 {
		return 0, false
	}
	var sum float64
	for _, a := range log {
		sum += a.Percentage
	}
	return sum / float64(len(log)), true
}

// FilterTopic returns the attempts for topic in log order.
func FilterTopic(log Log, topic string) Log {
	var out Log
	for _, a := range log {
		if a.Topic == topic {
			out = append(out, a)
		}
	}
	return out
}

// UniqueTopics returns the topics present in log in order of first appearance.
func UniqueTopics(log Log) []string {
	seen := make(map[string]bool)
	var topics []string
	for _, a := range log {
		if !seen[a.Topic] {
			seen[a.Topic] = true
			topics = append(topics, a.Topic)
		}
	}
	return topics
}

// SortedKeys returns the keys of an aggregate in ascending order.
func SortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func meanBy(log Log, key func(Attempt) (string, bool)) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, a := range log {
		k, ok := key(a)
		if !ok {
			continue
		}
		sums[k] += a.Percentage
		counts[k]++
	}

	means := make(map[string]float64, len(sums))
	for k, sum := range sums {
		means[k] = sum / float64(counts[k])
	}
	return means
}
