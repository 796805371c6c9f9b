package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/creator-booking-backend/internal/resource"
)

const (
	creatorA = "6b1f2d0e-3c4a-4f5b-8a9c-0d1e2f3a4b5c"
	creatorB = "5a0e1c9d-2b3a-4e4f-9a8b-fc0d1e2f3a4b"
	studioID = "7c2a3e1f-4d5b-4a6c-9b0d-1e2f3a4b5c6d"
	sampleID = "9e4c5a3b-6f7d-4c8e-9d2f-3a4b5c6d7e8f"
)

func creator(id string, rate float64) resource.Resource {
	return resource.Resource{ID: id, Category: resource.CategoryCreator, Name: "creator " + id[:4], HourlyRate: rate, IsAvailable: true}
}

func studio(rate float64) resource.Resource {
	return resource.Resource{ID: studioID, Category: resource.CategoryStudio, Name: "Loft", HourlyRate: rate, IsAvailable: true}
}

func TestNew(t *testing.T) {
	d := New()
	assert.Empty(t, d.Lines)
	assert.NotNil(t, d.Lines)
	assert.Nil(t, d.Studio)
	assert.Equal(t, 1, d.GlobalQuantity)
	assert.Empty(t, d.Style)
	assert.Empty(t, d.Date)
	assert.Empty(t, d.Time)
}

func TestCreatorLines(t *testing.T) {
	d := New()

	require.NoError(t, d.AddCreator(creator(creatorA, 500)))
	require.NoError(t, d.AddCreator(creator(creatorB, 600)))
	// Selecting again keeps a single line
	require.NoError(t, d.AddCreator(creator(creatorA, 500)))
	assert.Equal(t, []string{creatorA, creatorB}, d.CreatorIDs())
	assert.Equal(t, 1, d.Lines[0].Quantity)

	require.NoError(t, d.SetCreatorQuantity(creatorA, 2))
	assert.Equal(t, 2, d.Lines[0].Quantity)
	assert.ErrorIs(t, d.SetCreatorQuantity(creatorA, 0), ErrInvalidQuantity)
	assert.Equal(t, 2, d.Lines[0].Quantity)

	require.NoError(t, d.SetCreatorSample(creatorB, sampleID))
	assert.Equal(t, sampleID, d.Lines[1].SampleID)
	assert.ErrorIs(t, d.SetCreatorSample(creatorB, "sample-1"), ErrInvalidSample)
	require.NoError(t, d.SetCreatorSample(creatorB, ""))
	assert.Empty(t, d.Lines[1].SampleID)

	require.NoError(t, d.RemoveCreator(creatorA))
	assert.Equal(t, []string{creatorB}, d.CreatorIDs())
	assert.ErrorIs(t, d.RemoveCreator(creatorA), ErrCreatorNotSelected)
	assert.ErrorIs(t, d.SetCreatorQuantity(creatorA, 3), ErrCreatorNotSelected)
}

func TestAddCreatorRejects(t *testing.T) {
	d := New()
	assert.ErrorIs(t, d.AddCreator(studio(1200)), ErrNotCreator)

	offline := creator(creatorA, 500)
	offline.IsAvailable = false
	assert.ErrorIs(t, d.AddCreator(offline), ErrResourceUnavailable)
	assert.False(t, d.HasCreators())
}

func TestStudio(t *testing.T) {
	d := New()
	assert.ErrorIs(t, d.SetStudio(creator(creatorA, 500)), ErrNotStudio)

	require.NoError(t, d.SetStudio(studio(1200)))
	assert.Equal(t, studioID, d.StudioID())

	d.ClearStudio()
	assert.Nil(t, d.Studio)
	assert.Empty(t, d.StudioID())
}

func TestScalarFields(t *testing.T) {
	d := New()

	assert.ErrorIs(t, d.SetStyle("interpretive-dance"), ErrUnknownStyle)
	require.NoError(t, d.SetStyle("unboxing"))
	assert.Equal(t, "unboxing", d.Style)

	assert.ErrorIs(t, d.SetGlobalQuantity(0), ErrInvalidQuantity)
	require.NoError(t, d.SetGlobalQuantity(6))
	assert.Equal(t, 6, d.GlobalQuantity)

	assert.ErrorIs(t, d.SetDate("2026/03/14"), ErrInvalidDate)
	require.NoError(t, d.SetDate("2026-03-14"))
	assert.Equal(t, "2026-03-14", d.Date)

	assert.ErrorIs(t, d.SetTime("12:00 PM"), ErrInvalidTime)
	require.NoError(t, d.SetTime("10:00 AM"))
	assert.Equal(t, "10:00 AM", d.Time)
}

func TestReset(t *testing.T) {
	d := New()
	require.NoError(t, d.AddCreator(creator(creatorA, 500)))
	require.NoError(t, d.SetStudio(studio(1200)))
	require.NoError(t, d.SetStyle("review"))
	require.NoError(t, d.SetGlobalQuantity(4))
	require.NoError(t, d.SetDate("2026-03-14"))
	require.NoError(t, d.SetTime("09:00 AM"))

	d.Reset()
	assert.Equal(t, New(), d)
}

func TestValidate(t *testing.T) {
	scheduled := func() Draft {
		d := New()
		d.Date = "2026-03-14"
		d.Time = "10:00 AM"
		return d
	}

	tests := []struct {
		name    string
		draft   func() Draft
		wantErr error
	}{
		{"Own talent with default quantity", scheduled, nil},
		{"Missing date", func() Draft { d := scheduled(); d.Date = ""; return d }, ErrScheduleMissing},
		{"Missing time", func() Draft { d := scheduled(); d.Time = ""; return d }, ErrScheduleMissing},
		{"Bad stored date", func() Draft { d := scheduled(); d.Date = "tomorrow"; return d }, ErrInvalidDate},
		{"Bad stored time", func() Draft { d := scheduled(); d.Time = "noon"; return d }, ErrInvalidTime},
		{"No videos", func() Draft { d := scheduled(); d.GlobalQuantity = 0; return d }, ErrNoVideos},
		{"Creators make global quantity irrelevant", func() Draft {
			d := scheduled()
			d.GlobalQuantity = 0
			d.Lines = append(d.Lines, Line{Resource: creator(creatorA, 500), Quantity: 1})
			return d
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.draft()
			err := d.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
