package tieralloc

// Stats returns a diagnostic snapshot of this Arena's front end: how many
// SA/LB/LA headers it currently caches and how much of its static slab is
// unused. It is not an accounting guarantee — counts reflect the bounded
// self-organizing lists as of the call, not total memory owned.
func (a *Arena) Stats() map[string]interface{} {
	return map[string]interface{}{
		"sas":              a.t.sas.Len(),
		"lbs":              a.t.lbs.Len(),
		"las":              a.t.las.Len(),
		"static.slabbytes": a.t.static.slabSize,
		"static.unused":    a.t.static.slabSize - a.t.static.off,
	}
}

// GlobalStats reports, per shard, how many HugeBlocks the process-wide back
// end currently holds. Shards are independent, so an imbalance across the
// slice is expected under skewed ThreadAlloc ids, not a bug.
func GlobalStats() []int {
	counts := make([]int, shardCount)
	for i := range galloc.shards {
		sh := &galloc.shards[i]
		sh.mu.Lock()
		counts[i] = sh.hbs.Len()
		sh.mu.Unlock()
	}
	return counts
}
