package correct

import "github.com/agnivade/levenshtein"

// maxFuzzyDistance is the largest edit distance the fuzzy matcher accepts.
const maxFuzzyDistance = 3

// Distance returns the Levenshtein edit distance between a and b:
// the minimal number of unit-cost insertions, deletions, and
// substitutions turning a into b. It is symmetric and zero for equal
// strings.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}
