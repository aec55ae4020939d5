package ingest

import "time"

// Window bounds a session's date range. Both ends are inclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether ts falls inside the window.
func (w Window) Contains(ts time.Time) bool {
	if ts.Before(w.Start) {
		return false
	}
	return !ts.After(w.End)
}

// FilterAfterCheckpoint keeps transactions strictly after the reset
// checkpoint and, when a window is given, inside the session range.
//
// The checkpoint comparison is deliberately strict: the transaction
// whose timestamp defines the checkpoint was already counted before
// the reset, so including it again would double count. Flipping this
// to >= changes financial totals.
func FilterAfterCheckpoint(transactions []Transaction, checkpoint *time.Time, window *Window) []Transaction {
	out := make([]Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if checkpoint != nil && !txn.Timestamp.After(*checkpoint) {
			continue
		}
		if window != nil && !window.Contains(txn.Timestamp) {
			continue
		}
		out = append(out, txn)
	}
	return out
}
