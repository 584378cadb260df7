package media

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/swappool/internal/logging"
	"github.com/dmitrijs2005/swappool/internal/pool"
	"github.com/stretchr/testify/assert"
)

func removed(ref string) pool.Event {
	return pool.Event{Kind: pool.EventRemoved, Entry: pool.Entry{ID: "e", MediaURL: ref}, Reason: pool.RemovedExpired}
}

func TestJanitor_DeletesRemovedObjects(t *testing.T) {
	s, fs := newTestStorage()
	fs.failDel = errBoom
	j := NewJanitor(s, logging.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go j.Run(ctx)

	j.HandleEvent(pool.Event{Kind: pool.EventViewed, Entry: pool.Entry{MediaURL: "s3://swaps/uploads/v"}})
	j.HandleEvent(removed("https://cdn.example.com/a.jpg"))
	j.HandleEvent(removed("s3://swaps/uploads/bad"))
	j.HandleEvent(removed("s3://swaps/uploads/a"))
	j.HandleEvent(removed("s3://swaps/uploads/b"))

	assert.Eventually(t, func() bool {
		return len(fs.deletedKeys()) == 2
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"uploads/a", "uploads/b"}, fs.deletedKeys())
}

func TestJanitor_FullQueueDrops(t *testing.T) {
	s, fs := newTestStorage()
	j := NewJanitor(s, logging.Nop())
	j.queue = make(chan string, 1)

	j.HandleEvent(removed("s3://swaps/uploads/a"))
	j.HandleEvent(removed("s3://swaps/uploads/b"))
	assert.Len(t, j.queue, 1)

	ctx, cancel := context.WithCancel(context.Background())
	go j.Run(ctx)
	assert.Eventually(t, func() bool { return len(fs.deletedKeys()) == 1 }, time.Second, 10*time.Millisecond)
	cancel()
}

func TestJanitor_AsPoolListener(t *testing.T) {
	s, fs := newTestStorage()
	j := NewJanitor(s, logging.Nop())

	p := pool.New(pool.Options{})
	p.Subscribe(j)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go j.Run(ctx)

	e, err := p.Add(pool.NewEntry{OwnerID: "A", MediaURL: "s3://swaps/uploads/image/x", MediaKind: pool.MediaImage})
	assert.NoError(t, err)
	assert.NoError(t, p.DeleteContent(e.ID, "A"))

	assert.Eventually(t, func() bool { return len(fs.deletedKeys()) == 1 }, time.Second, 10*time.Millisecond)
}
