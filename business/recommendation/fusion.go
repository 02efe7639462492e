package recommendation

import "sort"

type FusedScore struct {
	Name  string
	Score float64
}

// Fuse merges two candidate lists. Every occurrence in userCandidates adds
// userWeight and every occurrence in contentCandidates adds contentWeight.
// Weights are applied as given. The result is ordered by descending score,
// ties in first-insertion order, and truncated to topN.
func Fuse(userCandidates, contentCandidates []string, userWeight, contentWeight float64, topN int) []FusedScore {
	scores := make(map[string]float64, len(userCandidates)+len(contentCandidates))
	order := make([]string, 0, len(userCandidates)+len(contentCandidates))

	add := func(names []string, w float64) {
		for _, name := range names {
			if _, ok := scores[name]; !ok {
				order = append(order, name)
			}
			scores[name] += w
		}
	}
	add(userCandidates, userWeight)
	add(contentCandidates, contentWeight)

	fused := make([]FusedScore, 0, len(order))
	for _, name := range order {
		fused = append(fused, FusedScore{Name: name, Score: scores[name]})
	}
	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].Score > fused[j].Score
	})

	if topN >= 0 && len(fused) > topN {
		fused = fused[:topN]
	}
	return fused
}

func names(fused []FusedScore) []string {
	out := make([]string, 0, len(fused))
	for _, f := range fused {
		out = append(out, f.Name)
	}
	return out
}
