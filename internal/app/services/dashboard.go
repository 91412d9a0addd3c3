package services

import (
	"sort"

	"github.com/seojin/tastemap/internal/app/models/dto"
)

// buildCategoryRatios turns per-category counts into ratio slices sorted by
// count descending, category ascending for equal counts. Ratios sum to 1
// when any records exist.
func buildCategoryRatios(counts map[string]int) (int, []dto.CategoryRatio) {
	total := 0
	for _, c := range counts {
		total += c
	}

	ratios := make([]dto.CategoryRatio, 0, len(counts))
	for category, count := range counts {
		ratio := 0.0
		if total > 0 {
			ratio = float64(count) / float64(total)
		}
		ratios = append(ratios, dto.CategoryRatio{
			Category: category,
			Count:    count,
			Ratio:    ratio,
		})
	}

	sort.Slice(ratios, func(i, j int) bool {
		if ratios[i].Count != ratios[j].Count {
			return ratios[i].Count > ratios[j].Count
		}
		return ratios[i].Category < ratios[j].Category
	})

	return total, ratios
}
