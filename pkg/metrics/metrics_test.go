package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/rgt24/orderboard/pkg/metrics"
)

func TestMustRegister_IsIdempotent(t *testing.T) {
	// Должно выполняться без паники даже при повторном вызове.
	metrics.MustRegister()
	metrics.MustRegister()
}

func TestSyncCounters_Inc(t *testing.T) {
	metrics.MustRegister()

	beforeMerged := testutil.ToFloat64(metrics.SyncBatchesMerged.WithLabelValues("page"))
	beforeRejected := testutil.ToFloat64(metrics.SyncRecordsRejected.WithLabelValues("invalid"))

	metrics.SyncBatchesMerged.WithLabelValues("page").Inc()
	metrics.SyncRecordsRejected.WithLabelValues("invalid").Inc()

	if got := testutil.ToFloat64(metrics.SyncBatchesMerged.WithLabelValues("page")); got != beforeMerged+1 {
		t.Fatalf("SyncBatchesMerged: got=%v want=%v", got, beforeMerged+1)
	}
	if got := testutil.ToFloat64(metrics.SyncRecordsRejected.WithLabelValues("invalid")); got != beforeRejected+1 {
		t.Fatalf("SyncRecordsRejected: got=%v want=%v", got, beforeRejected+1)
	}
}

func TestCacheOps_CountersByLabel(t *testing.T) {
	metrics.MustRegister()

	hitBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("load_hit"))
	missBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("load_miss"))

	metrics.CacheOps.WithLabelValues("load_hit").Inc()
	metrics.CacheOps.WithLabelValues("load_hit").Inc()

	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("load_hit")); got != hitBefore+2 {
		t.Fatalf("CacheOps(load_hit): got=%v want=%v", got, hitBefore+2)
	}
	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("load_miss")); got != missBefore {
		t.Fatalf("CacheOps(load_miss): got=%v want=%v", got, missBefore)
	}
}

func TestCollectionGauges_Set(t *testing.T) {
	metrics.MustRegister()

	cur := testutil.ToFloat64(metrics.CollectionSize)

	metrics.CollectionSize.Set(cur + 5)
	if got := testutil.ToFloat64(metrics.CollectionSize); got != cur+5 {
		t.Fatalf("CollectionSize after +5: got=%v want=%v", got, cur+5)
	}

	metrics.CollectionSize.Set(cur) // вернуть как было
	if got := testutil.ToFloat64(metrics.CollectionSize); got != cur {
		t.Fatalf("CollectionSize restore: got=%v want=%v", got, cur)
	}
}
