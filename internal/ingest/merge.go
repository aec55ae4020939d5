package ingest

import (
	"sort"

	"github.com/julienmorel/caisse-backend/pkg/enums"
)

// MergeResult carries the unified transaction set plus counters the
// pipeline reports to metrics.
type MergeResult struct {
	Transactions []Transaction
	// DuplicatesDropped counts local rows superseded by their synced
	// mirror once synchronization caught up.
	DuplicatesDropped int
}

// Merge combines the three ledgers into one de-duplicated set.
//
// A transaction id present in both local and synced keeps the synced
// version: the local row is the pre-sync copy of the same sale and
// counting both would double it. External invoices live in their own
// id namespace and are always included (canceled ones never reach
// this step). Output is ordered by timestamp, then id, so repeated
// runs over the same inputs produce identical slices.
func Merge(local, synced, external []Transaction) MergeResult {
	seen := make(map[string]struct{}, len(local)+len(synced)+len(external))
	out := make([]Transaction, 0, len(local)+len(synced)+len(external))
	duplicates := 0

	for _, txn := range synced {
		if _, ok := seen[txn.ID]; ok {
			continue
		}
		seen[txn.ID] = struct{}{}
		txn.Origin = enums.SourceOriginSynced
		out = append(out, txn)
	}

	for _, txn := range local {
		if _, ok := seen[txn.ID]; ok {
			duplicates++
			continue
		}
		seen[txn.ID] = struct{}{}
		txn.Origin = enums.SourceOriginLocal
		out = append(out, txn)
	}

	for _, txn := range external {
		if _, ok := seen[txn.ID]; ok {
			continue
		}
		seen[txn.ID] = struct{}{}
		txn.Origin = enums.SourceOriginExternal
		out = append(out, txn)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})

	return MergeResult{Transactions: out, DuplicatesDropped: duplicates}
}
