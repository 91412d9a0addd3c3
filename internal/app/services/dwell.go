package services

import (
	"time"

	"github.com/seojin/tastemap/internal/app/models"
	"github.com/seojin/tastemap/internal/pkg/geo"
)

// Dwell detection thresholds. A ping extends the previous stay when it
// lands within dwellRadiusM of it and no more than dwellMaxGap after its
// end; otherwise it opens a new stay.
const (
	dwellRadiusM = 50.0
	dwellMaxGap  = 5 * time.Minute
)

// extendsStay reports whether a ping at (lat, lng) observed at pingTime
// continues the given stay
func extendsStay(prev *models.Stay, lat, lng float64, pingTime time.Time) bool {
	if prev == nil {
		return false
	}
	if pingTime.Sub(prev.EndedAt) > dwellMaxGap {
		return false
	}
	return geo.HaversineDistance(prev.Latitude, prev.Longitude, lat, lng) <= dwellRadiusM
}
