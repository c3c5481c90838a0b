package engine

import "github.com/tartampluch/go-chailights/internal/config"

// Suggest proposes dates near target, for use when target matched no photos:
// its eve when flags.IncludeErev is set, then every expanded holiday date in
// the same month within one day of target, labeled with the holiday name.
// A holiday falling on target itself is listed too.
func (e *Expander) Suggest(target DateKey, flags Flags, refYear int) []Suggestion {
	year := e.ResolveYear(refYear)

	var out []Suggestion
	seen := make(map[Suggestion]struct{})
	add := func(s Suggestion) {
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	if flags.IncludeErev {
		add(Suggestion{Key: e.eve(config.LabelEve, target, year), Label: config.LabelEve})
	}

	for _, h := range e.Holidays.All() {
		for _, k := range e.expand(h, flags, year).Keys() {
			if k.Month != target.Month || abs(k.Day-target.Day) > 1 {
				continue
			}
			add(Suggestion{Key: k, Label: h.Label})
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
