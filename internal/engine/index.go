package engine

import (
	"slices"
	"sort"
)

// DateIndex groups photo records by Hebrew (month, day), ignoring the year.
// Records inside a bucket keep their input order.
type DateIndex map[DateKey][]PhotoRecord

// BuildIndex groups records in a single pass. Duplicates are preserved.
func BuildIndex(records []PhotoRecord) DateIndex {
	idx := make(DateIndex)
	for _, r := range records {
		k := r.Key()
		idx[k] = append(idx[k], r)
	}
	return idx
}

// Keys returns the populated keys ordered by month, then day.
func (idx DateIndex) Keys() []DateKey {
	keys := make([]DateKey, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Len returns the number of indexed records.
func (idx DateIndex) Len() int {
	n := 0
	for _, bucket := range idx {
		n += len(bucket)
	}
	return n
}

// DateCount is a populated key with its number of photos.
type DateCount struct {
	Key   DateKey `json:"key"`
	Count int     `json:"count"`
}

// PopularDates returns the keys holding the most photos, skipping the
// excluded keys. Ties are broken by calendar order. A limit <= 0 means no cap.
func PopularDates(idx DateIndex, exclude []DateKey, limit int) []DateCount {
	var out []DateCount
	for _, k := range idx.Keys() {
		if slices.Contains(exclude, k) {
			continue
		}
		out = append(out, DateCount{Key: k, Count: len(idx[k])})
	}

	// Keys() is already in calendar order, so a stable sort keeps it for ties.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
