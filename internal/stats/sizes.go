package stats

import "github.com/gitpulse/gitpulse/internal/diff"

// sizeBounds are the inclusive upper edges of the histogram buckets;
// anything beyond the last bound lands in the open-ended 1000+ bucket
var sizeBounds = []int{0, 10, 50, 100, 500, 1000}

var sizeLabels = []string{"0", "1-10", "11-50", "51-100", "101-500", "501-1000", "1000+"}

// SizeDistribution buckets commits by total changed lines. The bucket
// counts always sum to the number of details given.
func SizeDistribution(details []diff.CommitDetail) []SizeBucket {
	buckets := make([]SizeBucket, len(sizeLabels))
	for i, label := range sizeLabels {
		buckets[i] = SizeBucket{Label: label}
	}

	for _, detail := range details {
		idx := len(sizeBounds)
		for i, bound := range sizeBounds {
			if detail.Stats.Total <= bound {
				idx = i
				break
			}
		}
		buckets[idx].Count++
	}
	return buckets
}
