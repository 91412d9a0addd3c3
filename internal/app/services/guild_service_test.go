package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seojin/tastemap/internal/app/models"
)

func TestMemberListFilter_OwnerSeesPending(t *testing.T) {
	// No status filter means PENDING rows come back too
	assert.Equal(t, models.MembershipStatus(""), memberListFilter(1, 1))
}

func TestMemberListFilter_MemberSeesOnlyApproved(t *testing.T) {
	assert.Equal(t, models.MembershipApproved, memberListFilter(1, 2))
}
