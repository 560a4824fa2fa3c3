package chunkdb

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
)

// storeMetrics holds the per-database operation counters. All counters are
// registered in the process-wide default metrics set, labeled by database
// id, and can be exposed via metrics.WritePrometheus.
type storeMetrics struct {
	sets          *metrics.Counter
	gets          *metrics.Counter
	deletes       *metrics.Counter
	cacheHits     *metrics.Counter
	cacheMisses   *metrics.Counter
	chunkedWrites *metrics.Counter
}

func newStoreMetrics(databaseID string) *storeMetrics {
	counter := func(name string) *metrics.Counter {
		return metrics.GetOrCreateCounter(fmt.Sprintf(`chunkdb_%s_total{database=%q}`, name, databaseID))
	}

	return &storeMetrics{
		sets:          counter("sets"),
		gets:          counter("gets"),
		deletes:       counter("deletes"),
		cacheHits:     counter("cache_hits"),
		cacheMisses:   counter("cache_misses"),
		chunkedWrites: counter("chunked_writes"),
	}
}
