package holidays

import (
	"strconv"
	"sync"
	"testing"
	"time"
)

func TestRefresherStop_SafeToCallConcurrently(t *testing.T) {
	now := time.Now().UTC()
	server := holidayServer(t, map[string][]string{
		strconv.Itoa(now.Year()):     {"2026-01-01"},
		strconv.Itoa(now.Year() + 1): {"2027-01-01"},
	})
	defer server.Close()

	client := NewClient(nil, "test-key")
	client.baseURL = server.URL

	refresher := NewRefresher(client, "KZ")
	refresher.Start()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			refresher.Stop()
		}()
	}
	wg.Wait()

	// A late stop after shutdown must be a no-op as well.
	refresher.Stop()
}
