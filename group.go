package roadmap

// Group partitions entries by timeline and then by phase. Both levels keep the
// order in which keys are first seen; nothing is sorted.
func Group(entries []TimelineEntry) []TimelineGroup {
	var groups []TimelineGroup
	timelineIdx := make(map[string]int)
	phaseIdx := make(map[Pair]int)

	for _, e := range entries {
		ti, ok := timelineIdx[e.Timeline]
		if !ok {
			ti = len(groups)
			timelineIdx[e.Timeline] = ti
			groups = append(groups, TimelineGroup{Timeline: e.Timeline})
		}
		g := &groups[ti]

		key := Pair{Timeline: e.Timeline, Phase: e.Phase}
		pi, ok := phaseIdx[key]
		if !ok {
			pi = len(g.Phases)
			phaseIdx[key] = pi
			g.Phases = append(g.Phases, PhaseGroup{Phase: e.Phase})
		}
		g.Phases[pi].Workpackages = append(g.Phases[pi].Workpackages, e.Workpackages...)
	}
	return groups
}

// Pairs returns the distinct (timeline, phase) pairs in first-seen order.
func Pairs(entries []TimelineEntry) []Pair {
	var out []Pair
	seen := make(map[Pair]bool)
	for _, e := range entries {
		p := Pair{Timeline: e.Timeline, Phase: e.Phase}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
