package pool

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/swappool/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRandom_Scenarios(t *testing.T) {
	p, clock := newTestPool(t, Options{})

	// 1. empty pool
	pick, err := p.GetRandom("A", FilterSFW)
	require.NoError(t, err)
	assert.True(t, pick.Exhausted())

	// 2. first view of the only candidate
	e1 := mustAdd(t, p, upload("A", false))
	pick, err = p.GetRandom("B", FilterSFW)
	require.NoError(t, err)
	require.False(t, pick.Exhausted())
	assert.Equal(t, e1.ID, pick.Entry.ID)
	assert.Equal(t, TierUnseen, pick.Tier)
	assert.Equal(t, int64(1), pick.Entry.ViewCount)

	// 3. same viewer again: history resets, same entry comes back
	pick, err = p.GetRandom("B", FilterSFW)
	require.NoError(t, err)
	assert.Equal(t, e1.ID, pick.Entry.ID)
	assert.Equal(t, TierReset, pick.Tier)
	assert.Equal(t, int64(2), pick.Entry.ViewCount)

	// 4. owner of the only entry
	pick, err = p.GetRandom("A", FilterSFW)
	require.NoError(t, err)
	assert.True(t, pick.Exhausted())

	// 5. nsfw entry from C
	e2 := mustAdd(t, p, upload("C", true))
	pick, err = p.GetRandom("B", FilterNSFW)
	require.NoError(t, err)
	assert.Equal(t, e2.ID, pick.Entry.ID)

	pick, err = p.GetRandom("B", FilterAll)
	require.NoError(t, err)
	assert.Contains(t, []string{e1.ID, e2.ID}, pick.Entry.ID)

	// 6. save-forever survives the TTL, a contemporaneous entry does not
	e3 := mustAdd(t, p, upload("D", false))
	_, err = p.GetRandom("B", FilterSFW)
	require.NoError(t, err)
	_, err = p.SetSaveForever(e1.ID, "A", true)
	require.NoError(t, err)

	clock.Advance(p.TTL() + time.Second)
	p.Sweep()

	_, err = p.GetByID(e1.ID)
	assert.NoError(t, err)
	_, err = p.GetByID(e3.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	for _, v := range []string{"A", "B", "C", "D"} {
		assert.False(t, p.HasSeen(v, e3.ID), v)
	}
}

func TestGetRandom_InvalidMode(t *testing.T) {
	p, _ := newTestPool(t, Options{})
	mustAdd(t, p, upload("A", false))

	_, err := p.GetRandom("B", FilterMode("spicy"))
	require.ErrorIs(t, err, common.ErrorValidation)

	e := p.ListByOwner("A")[0]
	assert.Zero(t, e.ViewCount, "rejected call must not touch state")
}

func TestGetRandom_SelfExclusionAndFilter(t *testing.T) {
	p, _ := newTestPool(t, Options{})
	owners := []string{"u1", "u2", "u3", "u4"}
	for i := 0; i < 40; i++ {
		mustAdd(t, p, upload(owners[i%len(owners)], i%3 == 0))
	}

	for i := 0; i < 500; i++ {
		viewer := owners[i%len(owners)]
		for _, mode := range []FilterMode{FilterSFW, FilterAll, FilterNSFW} {
			pick, err := p.GetRandom(viewer, mode)
			require.NoError(t, err)
			require.False(t, pick.Exhausted())
			assert.NotEqual(t, viewer, pick.Entry.OwnerID)
			switch mode {
			case FilterSFW:
				assert.False(t, pick.Entry.IsNSFW)
			case FilterNSFW:
				assert.True(t, pick.Entry.IsNSFW)
			}
		}
	}
}

func TestGetRandom_FilterWithNoMatchIsExhausted(t *testing.T) {
	p, _ := newTestPool(t, Options{})
	mustAdd(t, p, upload("A", false))

	pick, err := p.GetRandom("B", FilterNSFW)
	require.NoError(t, err)
	assert.True(t, pick.Exhausted())
}

func TestGetRandom_NoRepeatUntilExhaustion(t *testing.T) {
	p, _ := newTestPool(t, Options{})
	const n = 12
	for i := 0; i < n; i++ {
		mustAdd(t, p, upload(fmt.Sprintf("owner-%d", i), false))
	}
	// Entries the viewer must never get.
	mustAdd(t, p, upload("viewer", false))
	mustAdd(t, p, upload("someone", true))

	for round := 0; round < 3; round++ {
		seen := make(map[string]struct{}, n)
		for i := 0; i < n; i++ {
			pick, err := p.GetRandom("viewer", FilterSFW)
			require.NoError(t, err)
			_, dup := seen[pick.Entry.ID]
			require.False(t, dup, "round %d draw %d repeated %s", round, i, pick.Entry.ID)
			seen[pick.Entry.ID] = struct{}{}

			wantTier := TierUnseen
			if round > 0 && i == 0 {
				wantTier = TierReset
			}
			assert.Equal(t, wantTier, pick.Tier, "round %d draw %d", round, i)
		}
		assert.Len(t, seen, n)
	}
}

func TestGetRandom_UniformOverEligible(t *testing.T) {
	p, _ := newTestPool(t, Options{})
	ids := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		ids = append(ids, mustAdd(t, p, upload(fmt.Sprintf("o%d", i), false)).ID)
	}

	const draws = 40000
	counts := make(map[string]int, len(ids))
	for i := 0; i < draws; i++ {
		// Anonymous viewers keep no history, so every draw is over all four.
		pick, err := p.GetRandom("", FilterSFW)
		require.NoError(t, err)
		counts[pick.Entry.ID]++
	}

	expected := draws / len(ids)
	for _, id := range ids {
		assert.InDelta(t, expected, counts[id], float64(expected)*0.08, "entry %s drawn %d times", id, counts[id])
	}
}

func TestGetRandom_FairAfterReset(t *testing.T) {
	p, _ := newTestPool(t, Options{})
	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		ids = append(ids, mustAdd(t, p, upload(fmt.Sprintf("o%d", i), false)).ID)
	}

	// Exhaust once, then the first draw after each reset must range over
	// the whole eligible set.
	firstAfterReset := make(map[string]int)
	for i := 0; i < 3*3000; i++ {
		pick, err := p.GetRandom("v", FilterSFW)
		require.NoError(t, err)
		if pick.Tier == TierReset {
			firstAfterReset[pick.Entry.ID]++
		}
	}
	for _, id := range ids {
		assert.InDelta(t, 1000, firstAfterReset[id], 150, "entry %s", id)
	}
}

func TestGetRandom_AnonymousKeepsNoHistory(t *testing.T) {
	p, _ := newTestPool(t, Options{})
	e := mustAdd(t, p, upload("A", false))

	for i := 0; i < 3; i++ {
		pick, err := p.GetRandom("", FilterSFW)
		require.NoError(t, err)
		assert.Equal(t, TierUnseen, pick.Tier)
	}
	assert.False(t, p.HasSeen("", e.ID))
	assert.Zero(t, p.Stats().Viewers)

	got, err := p.GetByID(e.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ViewCount)
}

func TestGetRandom_HistoryCapLetsOldestBack(t *testing.T) {
	p, _ := newTestPool(t, Options{MaxHistory: 2})
	for i := 0; i < 3; i++ {
		mustAdd(t, p, upload(fmt.Sprintf("o%d", i), false))
	}

	// With room for two ids, the viewer never runs out of unseen entries.
	for i := 0; i < 30; i++ {
		pick, err := p.GetRandom("v", FilterSFW)
		require.NoError(t, err)
		assert.Equal(t, TierUnseen, pick.Tier)
	}
}

func TestGetRandom_ConcurrentViewers(t *testing.T) {
	p, _ := newTestPool(t, Options{})
	const (
		entries = 20
		viewers = 16
	)
	for i := 0; i < entries; i++ {
		mustAdd(t, p, upload(fmt.Sprintf("o%d", i), false))
	}

	var wg sync.WaitGroup
	errs := make(chan error, viewers)
	for v := 0; v < viewers; v++ {
		wg.Add(1)
		go func(viewer string) {
			defer wg.Done()
			seen := make(map[string]struct{}, entries)
			for i := 0; i < entries; i++ {
				pick, err := p.GetRandom(viewer, FilterAll)
				if err != nil {
					errs <- err
					return
				}
				if _, dup := seen[pick.Entry.ID]; dup {
					errs <- fmt.Errorf("viewer %s got %s twice before exhaustion", viewer, pick.Entry.ID)
					return
				}
				seen[pick.Entry.ID] = struct{}{}
			}
		}(fmt.Sprintf("viewer-%d", v))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	var total int64
	for i := 0; i < entries; i++ {
		for _, e := range p.ListByOwner(fmt.Sprintf("o%d", i)) {
			total += e.ViewCount
		}
	}
	assert.Equal(t, int64(entries*viewers), total, "no lost view increments")
}

func TestGetRandom_ConcurrentWithAddAndDelete(t *testing.T) {
	p, _ := newTestPool(t, Options{})
	for i := 0; i < 10; i++ {
		mustAdd(t, p, upload(fmt.Sprintf("o%d", i), false))
	}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				e, err := p.Add(upload(fmt.Sprintf("w%d", w), false))
				if err != nil {
					t.Error(err)
					return
				}
				if i%2 == 0 {
					if err := p.DeleteContent(e.ID, e.OwnerID); err != nil {
						t.Error(err)
						return
					}
				}
			}
		}(w)
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			viewer := fmt.Sprintf("w%d", w)
			for i := 0; i < 200; i++ {
				pick, err := p.GetRandom(viewer, FilterSFW)
				if err != nil {
					t.Error(err)
					return
				}
				if !pick.Exhausted() && pick.Entry.OwnerID == viewer {
					t.Errorf("viewer %s was shown its own entry", viewer)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 10+4*25, p.Stats().Entries)
}

func TestTier_String(t *testing.T) {
	assert.Equal(t, "none", TierNone.String())
	assert.Equal(t, "unseen", TierUnseen.String())
	assert.Equal(t, "reset", TierReset.String())
}
