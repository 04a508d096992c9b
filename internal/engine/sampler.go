package engine

// FullDiffBudget is how many commits of a history receive the expensive
// content-based diff; every other commit gets the fast tree-only diff.
const FullDiffBudget = 30

// SampleIndices selects budget indices evenly spaced across [0, n), so
// full-diff accuracy is spread over the whole timeline instead of
// clustering at one end. Every index is selected when n <= budget.
func SampleIndices(n, budget int) map[int]bool {
	selected := make(map[int]bool, budget)
	if n <= 0 || budget <= 0 {
		return selected
	}

	if n <= budget {
		for i := range n {
			selected[i] = true
		}
		return selected
	}

	for i := range budget {
		selected[i*n/budget] = true
	}
	return selected
}
