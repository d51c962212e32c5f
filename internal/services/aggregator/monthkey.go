package aggregator

import (
	"sort"
	"time"

	"ledgerdash/internal/models"
)

const (
	isoDateLayout  = "2006-01-02"
	monthKeyLayout = "2006-01"
)

// MonthKey buckets a raw transaction date into a "2006-01" month key.
// Unparseable dates fall back to the current month; see monthKeyAt.
func MonthKey(date string) string {
	key, _ := monthKeyAt(date, time.Now())
	return key
}

// monthKeyAt normalizes a date string to a month key. It accepts ISO
// "2006-01-02", then the compact 8-digit "20060102" form by fixed-width
// slicing. Anything else buckets into now's month and reports ok=false;
// the caller counts these rather than failing the aggregation. Bucketing
// bad dates into the current month is a known approximation inherited
// from the upstream tolerance-over-failure policy.
func monthKeyAt(date string, now time.Time) (key string, ok bool) {
	if t, err := time.Parse(isoDateLayout, date); err == nil {
		return t.Format(monthKeyLayout), true
	}
	if len(date) == 8 && allDigits(date) {
		return date[0:4] + "-" + date[4:6], true
	}
	return now.Format(monthKeyLayout), false
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// bucketDates computes the month key of every transaction up front so the
// per-month passes can compare keys instead of re-parsing dates. Returns
// one key per transaction plus the fallback count.
func bucketDates(txs []models.Transaction, now time.Time) ([]string, int) {
	keys := make([]string, len(txs))
	fallbacks := 0
	for i := range txs {
		key, ok := monthKeyAt(txs[i].Date, now)
		if !ok {
			fallbacks++
		}
		keys[i] = key
	}
	return keys, fallbacks
}

// distinctSorted returns the sorted set of unique keys.
func distinctSorted(keys []string) []string {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
