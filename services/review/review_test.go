package review

import (
	"context"
	"testing"
	"time"

	"pizzeria/database"
	reviewRepo "pizzeria/database/repository/review"
	"pizzeria/models"
	"pizzeria/services/notification"
	"pizzeria/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	jobs []notification.Job
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, job notification.Job) {
	d.jobs = append(d.jobs, job)
}

func newTestService() (*Service, *recordingDispatcher) {
	d := &recordingDispatcher{}
	svc := NewService(reviewRepo.NewReviewRepo(database.NewMemoryStore()), d, nil)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	svc.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	return svc, d
}

func TestCreateValidatesRating(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(ctx, models.ReviewRequest{ClientName: "Ana", Rating: rating})
		var vErr *utils.ValidationError
		assert.ErrorAs(t, err, &vErr, "rating %d", rating)
	}
	assert.Empty(t, d.jobs)

	rv, err := svc.Create(ctx, models.ReviewRequest{ClientName: "Ana", Rating: 5, Comment: "Excelente"})
	require.NoError(t, err)
	assert.False(t, rv.IsApproved)
	require.Len(t, d.jobs, 1)
	assert.Equal(t, notification.KindReviewCreated, d.jobs[0].Kind)
}

func TestApproveStatsAndTop(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	ratings := []int{5, 4, 3, 5}
	var ids []string
	for _, r := range ratings {
		rv, err := svc.Create(ctx, models.ReviewRequest{ClientName: "c", Rating: r, EventID: "ev-1"})
		require.NoError(t, err)
		ids = append(ids, rv.ID)
	}
	pending, err := svc.Create(ctx, models.ReviewRequest{ClientName: "p", Rating: 1})
	require.NoError(t, err)

	for _, id := range ids {
		rv, err := svc.Approve(ctx, id)
		require.NoError(t, err)
		assert.True(t, rv.IsApproved)
		assert.NotNil(t, rv.ApprovedAt)
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalReviews)
	assert.Equal(t, 4.25, stats.AverageRating)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 1, 4: 1, 5: 2}, stats.RatingDistribution)

	top, err := svc.Top(ctx)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, ids[3], top[0].ID)
	assert.Equal(t, ids[0], top[1].ID)
	assert.Equal(t, 4, top[2].Rating)

	approved, err := svc.List(ctx, true, 0)
	require.NoError(t, err)
	assert.Len(t, approved, 4)
	all, err := svc.List(ctx, false, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	byEvent, err := svc.ByEvent(ctx, "ev-1")
	require.NoError(t, err)
	assert.Len(t, byEvent, 4)

	require.NoError(t, svc.Delete(ctx, pending.ID))
	_, err = svc.Get(ctx, pending.ID)
	var nErr *utils.NotFoundError
	assert.ErrorAs(t, err, &nErr)
}

func TestStatsEmpty(t *testing.T) {
	svc, _ := newTestService()
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalReviews)
	assert.Zero(t, stats.AverageRating)
	assert.Len(t, stats.RatingDistribution, 5)
}
