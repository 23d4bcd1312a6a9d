package businessflow

import "sync"

// campaignLocks serializes status transitions per campaign UUID. Lock
// entries are never evicted; the working set is bounded by the number
// of campaigns touched since process start.
var campaignLocks sync.Map

func lockCampaign(uuid string) *sync.Mutex {
	mu, _ := campaignLocks.LoadOrStore(uuid, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m
}
