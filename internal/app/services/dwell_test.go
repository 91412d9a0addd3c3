package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/seojin/tastemap/internal/app/models"
)

func stayAt(lat, lng float64, endedAt time.Time) *models.Stay {
	return &models.Stay{
		UserID:    1,
		Latitude:  lat,
		Longitude: lng,
		Category:  "CE7",
		StartedAt: endedAt.Add(-10 * time.Minute),
		EndedAt:   endedAt,
	}
}

func TestExtendsStay_NilPrevious(t *testing.T) {
	assert.False(t, extendsStay(nil, 37.5665, 126.9780, time.Now()))
}

func TestExtendsStay_WithinRadiusAndGap(t *testing.T) {
	end := time.Now()
	prev := stayAt(37.5665, 126.9780, end)

	// ~11 m away, 4 minutes later
	assert.True(t, extendsStay(prev, 37.5666, 126.9780, end.Add(4*time.Minute)))
}

func TestExtendsStay_TooFar(t *testing.T) {
	end := time.Now()
	prev := stayAt(37.5665, 126.9780, end)

	// ~111 m away, well past the 50 m threshold
	assert.False(t, extendsStay(prev, 37.5675, 126.9780, end.Add(time.Minute)))
}

func TestExtendsStay_GapTooLong(t *testing.T) {
	end := time.Now()
	prev := stayAt(37.5665, 126.9780, end)

	assert.False(t, extendsStay(prev, 37.5665, 126.9780, end.Add(6*time.Minute)))
}

func TestExtendsStay_GapExactlyAtLimit(t *testing.T) {
	end := time.Now()
	prev := stayAt(37.5665, 126.9780, end)

	// 5 minutes is inclusive
	assert.True(t, extendsStay(prev, 37.5665, 126.9780, end.Add(5*time.Minute)))
}
