package service

import (
	"context"
	"errors"
	"time"
)

var errCacheMissForTest = errors.New("cache miss")

// fakePageCache is an in-memory TripPageCache.
type fakePageCache struct {
	pages       map[[2]int][]byte
	invalidated int
}

func newFakePageCache() *fakePageCache {
	return &fakePageCache{pages: make(map[[2]int][]byte)}
}

func (f *fakePageCache) GetTripPage(_ context.Context, page, pageSize int) ([]byte, error) {
	payload, ok := f.pages[[2]int{page, pageSize}]
	if !ok {
		return nil, errCacheMissForTest
	}
	return payload, nil
}

func (f *fakePageCache) SetTripPage(_ context.Context, page, pageSize int, payload []byte, _ time.Duration) error {
	f.pages[[2]int{page, pageSize}] = payload
	return nil
}

func (f *fakePageCache) InvalidateTripPages(_ context.Context) error {
	f.invalidated++
	f.pages = make(map[[2]int][]byte)
	return nil
}
