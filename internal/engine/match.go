package engine

import "sort"

// Match returns every indexed record whose (month, day) is one of keys.
// A record matching several keys is returned once. Results follow the order
// of keys, then the bucket order.
func Match(idx DateIndex, keys ...DateKey) []PhotoRecord {
	seen := make(map[string]struct{})
	var out []PhotoRecord
	for _, k := range keys {
		for _, r := range idx[k] {
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}

// MatchRecords is Match over a flat record list, keeping input order.
func MatchRecords(records []PhotoRecord, keys ...DateKey) []PhotoRecord {
	want := make(map[DateKey]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}

	seen := make(map[string]struct{})
	var out []PhotoRecord
	for _, r := range records {
		if _, ok := want[r.Key()]; !ok {
			continue
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

// SortByDateDesc orders records newest first.
func SortByDateDesc(records []PhotoRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].GregorianDate > records[j].GregorianDate
	})
}
