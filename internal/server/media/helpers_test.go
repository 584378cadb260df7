package media

import (
	"context"
	"errors"
	"sync"
	"time"
)

type fakeStore struct {
	mu      sync.Mutex
	puts    []string
	gets    []string
	deleted []string
	failDel error
	failPre error
}

func (f *fakeStore) PresignPut(_ context.Context, bucket, key, contentType string, ttl time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPre != nil {
		return "", f.failPre
	}
	f.puts = append(f.puts, key)
	return "https://s3.test/" + bucket + "/" + key + "?put&type=" + contentType + "&ttl=" + ttl.String(), nil
}

func (f *fakeStore) PresignGet(_ context.Context, bucket, key string, ttl time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPre != nil {
		return "", f.failPre
	}
	f.gets = append(f.gets, key)
	return "https://s3.test/" + bucket + "/" + key + "?get&ttl=" + ttl.String(), nil
}

func (f *fakeStore) Delete(_ context.Context, _, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDel != nil && key == "uploads/bad" {
		return f.failDel
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStore) deletedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

var errBoom = errors.New("boom")
