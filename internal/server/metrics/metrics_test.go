package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/swappool/internal/pool"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticStats pool.Stats

func (s staticStats) Stats() pool.Stats { return pool.Stats(s) }

func TestCollector_PoolGauges(t *testing.T) {
	c := NewCollector("swappool", staticStats{Entries: 5, NSFW: 2, SaveForever: 1, Viewers: 3})

	assert.Equal(t, 5.0, testutil.ToFloat64(c.Entries))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.NSFW))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.SaveForever))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.Viewers))
}

func TestCollector_CountsPoolEvents(t *testing.T) {
	p := pool.New(pool.Options{})
	c := NewCollector("swappool", p)
	p.Subscribe(c)

	e, err := p.Add(pool.NewEntry{OwnerID: "A", MediaURL: "https://x/a.jpg", MediaKind: pool.MediaImage})
	require.NoError(t, err)
	_, err = p.GetRandom("B", pool.FilterSFW)
	require.NoError(t, err)
	require.NoError(t, p.DeleteContent(e.ID, "A"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Events.WithLabelValues("added", "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Events.WithLabelValues("viewed", "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Events.WithLabelValues("removed", "deleted")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.Entries))
}

func TestCollector_Observations(t *testing.T) {
	c := NewCollector("swappool", staticStats{})

	c.ObserveSelection(pool.TierUnseen, false)
	c.ObserveSelection(pool.TierNone, false)
	c.ObserveSelection(pool.TierUnseen, true)
	c.ObserveHTTP("GET", "/api/v1/next", 200, 10*time.Millisecond)
	c.ObserveRPC("Next", "OK")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Selections.WithLabelValues("unseen", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Selections.WithLabelValues("none", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Selections.WithLabelValues("unseen", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/api/v1/next", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RPCRequests.WithLabelValues("Next", "OK")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("swappool", staticStats{Entries: 7})

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "swappool_pool_entries 7"), body)
	assert.Contains(t, body, "go_goroutines")
}

func TestCollector_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewCollector("swappool", staticStats{})
		NewCollector("swappool", staticStats{})
	})
}
