package ipv4

import (
	"slices"
)

// Collapse returns the smallest set of disjoint networks covering exactly the
// addresses covered by nets, sorted by base address then prefix length.
// nets is left untouched.
func Collapse(nets []Network) []Network {
	out := slices.Clone(nets)
	for {
		slices.SortFunc(out, Network.Compare)
		var changed bool
		out, changed = collapsePass(out)
		if !changed {
			return out
		}
	}
}

// collapsePass expects sorted input. Containers sort ahead of what they
// contain, so only the last kept network needs checking; a merged parent stays
// on the stack so it can take its own sibling straight away.
func collapsePass(sorted []Network) ([]Network, bool) {
	kept := make([]Network, 0, len(sorted))
	changed := false
	for _, n := range sorted {
		if len(kept) > 0 && kept[len(kept)-1].Contains(n) {
			changed = true
			continue
		}
		kept = append(kept, n)
		for len(kept) >= 2 {
			lo, hi := kept[len(kept)-2], kept[len(kept)-1]
			if !lo.siblingOf(hi) {
				break
			}
			parent, _ := lo.Supernet()
			kept = append(kept[:len(kept)-2], parent)
			changed = true
		}
	}
	return kept, changed
}
