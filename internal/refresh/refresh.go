// Package refresh runs fire-and-forget background refetches of stale resolve
// cache entries. Jobs are deduplicated by property key and dropped when the
// queue is saturated; a skipped refresh just means the entry stays stale a
// little longer.
package refresh

import (
	"context"
	"sync"
	"time"
)

type Job struct {
	PropertyKey string
	Line1       string
	City        string
	State       string
	Zip         string
}

type Refresher struct {
	ch    chan Job
	inFly sync.Map // property key -> struct{}
	do    func(ctx context.Context, j Job)
}

func New(capacity int, workerCount int, do func(ctx context.Context, j Job)) *Refresher {
	if capacity <= 0 {
		capacity = 256
	}
	if workerCount <= 0 {
		workerCount = 2
	}
	r := &Refresher{ch: make(chan Job, capacity), do: do}
	for i := 0; i < workerCount; i++ {
		go r.worker()
	}
	return r
}

func (r *Refresher) Enqueue(j Job) {
	if _, exists := r.inFly.LoadOrStore(j.PropertyKey, struct{}{}); exists {
		return
	}
	select {
	case r.ch <- j:
	default:
		// drop if saturated
		r.inFly.Delete(j.PropertyKey)
	}
}

func (r *Refresher) worker() {
	for j := range r.ch {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		func() {
			defer func() {
				r.inFly.Delete(j.PropertyKey)
				cancel()
			}()
			if r.do != nil {
				r.do(ctx, j)
			}
		}()
	}
}
