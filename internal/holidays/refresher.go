package holidays

import (
	"context"
	"log"
	"sync"
	"time"
)

const refreshPollInterval = 30 * 24 * time.Hour

// Refresher keeps the current- and next-year holiday sets warm in the cache
// so plan runs rarely wait on the upstream API.
type Refresher struct {
	client   *Client
	country  string
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewRefresher(client *Client, country string) *Refresher {
	return &Refresher{
		client:   client,
		country:  country,
		stopChan: make(chan struct{}),
	}
}

func (r *Refresher) Start() {
	if r.client == nil || r.country == "" {
		return
	}

	go r.loop()
	log.Printf("Holiday refresher started for %s", r.country)
}

func (r *Refresher) Stop() {
	r.stopOnce.Do(func() { close(r.stopChan) })
}

func (r *Refresher) loop() {
	// Run on startup as well as by interval.
	r.refresh(context.Background(), time.Now().UTC())

	ticker := time.NewTicker(refreshPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case <-ticker.C:
			r.refresh(context.Background(), time.Now().UTC())
		}
	}
}

func (r *Refresher) refresh(ctx context.Context, now time.Time) {
	for _, year := range []int{now.Year(), now.Year() + 1} {
		if _, err := r.client.Refresh(ctx, r.country, year); err != nil {
			log.Printf("holidays: refresh failed for %s/%d: %v", r.country, year, err)
		}
	}
}
