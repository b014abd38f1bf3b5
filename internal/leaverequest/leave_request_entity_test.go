package leaverequest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeTotalDays(t *testing.T) {
	t.Run("single day", func(t *testing.T) {
		assert.Equal(t, float64(1), ComputeTotalDays(day(2027, 3, 1), day(2027, 3, 1), false))
	})

	t.Run("inclusive range", func(t *testing.T) {
		assert.Equal(t, float64(5), ComputeTotalDays(day(2027, 3, 1), day(2027, 3, 5), false))
	})

	t.Run("half day", func(t *testing.T) {
		assert.Equal(t, 0.5, ComputeTotalDays(day(2027, 3, 1), day(2027, 3, 1), true))
	})

	t.Run("crosses month boundary", func(t *testing.T) {
		assert.Equal(t, float64(4), ComputeTotalDays(day(2027, 3, 30), day(2027, 4, 2), false))
	})
}

func TestIsAllowedStatusTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{StatusDraft, StatusPending},
		{StatusDraft, StatusApproved},
		{StatusDraft, StatusRejected},
		{StatusDraft, StatusCanceled},
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusPending, StatusCanceled},
	}
	for _, tc := range allowed {
		assert.True(t, isAllowedStatusTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to string }{
		{StatusPending, StatusPending},
		{StatusPending, StatusDraft},
		{StatusApproved, StatusPending},
		{StatusApproved, StatusCanceled},
		{StatusRejected, StatusApproved},
		{StatusCanceled, StatusPending},
	}
	for _, tc := range denied {
		assert.False(t, isAllowedStatusTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
