package ranking

import (
	"sort"

	"lablink/models"
)

// newLabFloorRank is the best rank a new lab may display at.
const newLabFloorRank = 4

// applyNewLabFloor pushes any new lab out of the top three display ranks.
// A demoted lab keeps rank 4, which may duplicate an incumbent's rank; the
// stable re-sort then keeps the pre-push slice order between the tied labs.
func applyNewLabFloor(ranked []models.RankedLab) []models.RankedLab {
	changed := false
	for i := range ranked {
		if ranked[i].Lab.IsNewLab && ranked[i].Rank < newLabFloorRank {
			ranked[i].Rank = newLabFloorRank
			changed = true
		}
	}
	if changed {
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Rank < ranked[j].Rank
		})
	}
	return ranked
}
