package quote

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/creator-booking-backend/internal/draft"
	"github.com/nekogravitycat/creator-booking-backend/internal/resource"
)

const (
	creatorA = "6b1f2d0e-3c4a-4f5b-8a9c-0d1e2f3a4b5c"
	creatorB = "5a0e1c9d-2b3a-4e4f-9a8b-fc0d1e2f3a4b"
	studioID = "7c2a3e1f-4d5b-4a6c-9b0d-1e2f3a4b5c6d"
)

func line(id string, rate float64, qty int) draft.Line {
	return draft.Line{
		Resource: resource.Resource{ID: id, Category: resource.CategoryCreator, Name: id[:4], HourlyRate: rate, IsAvailable: true},
		Quantity: qty,
	}
}

func studio(rate float64) *resource.Resource {
	return &resource.Resource{ID: studioID, Category: resource.CategoryStudio, Name: "Loft", HourlyRate: rate, IsAvailable: true}
}

func TestComputeTwoCreatorsAndStudio(t *testing.T) {
	d := draft.New()
	d.Lines = []draft.Line{line(creatorA, 500, 2), line(creatorB, 600, 1)}
	d.Studio = studio(1200)

	q := Compute(d)

	assert.Equal(t, 3, q.TotalVideoCount)
	assert.Equal(t, 2, q.EstimatedHours)
	require.Len(t, q.LineCosts, 2)
	assert.Equal(t, 1000.0, q.LineCosts[0].Cost)
	assert.Equal(t, 600.0, q.LineCosts[1].Cost)
	assert.Equal(t, 1600.0, q.LineCostsSum)
	assert.Equal(t, 2400.0, q.StudioCost)
	assert.InDelta(t, 400.0, q.PlatformFee, 1e-9)
	assert.Equal(t, 4400.0, q.Total)
}

func TestComputeOwnTalent(t *testing.T) {
	d := draft.New()
	d.Style = "unboxing"
	d.GlobalQuantity = 6
	d.Date = "2026-03-14"
	d.Time = "10:00 AM"

	q := Compute(d)

	assert.Equal(t, 6, q.TotalVideoCount)
	assert.Equal(t, 0, q.EstimatedHours)
	assert.Empty(t, q.LineCosts)
	assert.NotNil(t, q.LineCosts)
	assert.Zero(t, q.StudioCost)
	assert.Zero(t, q.PlatformFee)
	assert.Zero(t, q.Total)
}

func TestComputeOwnTalentWithStudio(t *testing.T) {
	d := draft.New()
	d.GlobalQuantity = 10
	d.Studio = studio(1000)

	q := Compute(d)

	assert.Equal(t, 10, q.TotalVideoCount)
	assert.Equal(t, 5, q.EstimatedHours)
	assert.Equal(t, 5000.0, q.StudioCost)
	assert.InDelta(t, 500.0, q.PlatformFee, 1e-9)
	assert.Equal(t, 5500.0, q.Total)
}

func TestGlobalQuantityIgnoredWithCreators(t *testing.T) {
	d := draft.New()
	d.GlobalQuantity = 40
	d.Lines = []draft.Line{line(creatorA, 100, 1)}

	q := Compute(d)
	assert.Equal(t, 1, q.TotalVideoCount)
	assert.Equal(t, 110.0, q.Total)
}

func TestEstimatedHours(t *testing.T) {
	tests := []struct {
		videos int
		want   int
	}{
		{1, 2}, {2, 2}, {3, 2}, {4, 2},
		{5, 3}, {6, 3}, {7, 4}, {10, 5}, {11, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EstimatedHours(tt.videos), "videos=%d", tt.videos)
	}
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 10.13, RoundCents(10.125))
	assert.Equal(t, 10.12, RoundCents(10.1249))
	assert.Equal(t, 0.0, RoundCents(0))
}

func randomDraft(r *rand.Rand) draft.Draft {
	d := draft.New()
	d.GlobalQuantity = 1 + r.IntN(20)
	ids := []string{creatorA, creatorB}
	n := r.IntN(len(ids) + 1)
	for i := 0; i < n; i++ {
		d.Lines = append(d.Lines, line(ids[i], float64(r.IntN(200000))/100, 1+r.IntN(8)))
	}
	if r.IntN(2) == 0 {
		d.Studio = studio(float64(r.IntN(500000)) / 100)
	}
	return d
}

func TestComputeProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))

	for i := 0; i < 500; i++ {
		d := randomDraft(r)
		q := Compute(d)

		// Determinism
		assert.Equal(t, q, Compute(d))

		// Total is subtotal plus fee, within a cent
		subtotal := q.LineCostsSum + q.StudioCost
		assert.InDelta(t, subtotal+PlatformFeeRate*subtotal, q.Total, 0.005)

		// Hours floor
		if d.Studio != nil {
			assert.GreaterOrEqual(t, q.EstimatedHours, MinStudioHours)
			assert.Equal(t, int(math.Max(2, math.Ceil(float64(q.TotalVideoCount)*0.5))), q.EstimatedHours)
		} else {
			assert.Zero(t, q.EstimatedHours)
			assert.Zero(t, q.StudioCost)
		}

		var sum float64
		for _, lc := range q.LineCosts {
			sum += lc.Cost
		}
		assert.Equal(t, q.LineCostsSum, sum)
	}
}
