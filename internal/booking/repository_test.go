package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertBookingQuery(t *testing.T) {
	b := &Booking{
		UserID:    userID,
		StudioID:  studioID,
		Style:     "review",
		Date:      "2026-03-14",
		TimeLabel: "09:00 AM",
		StartTime: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		Status:    StatusPending,
	}

	sql, args, err := insertBookingQuery(b).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "INSERT INTO public.bookings")
	assert.Contains(t, sql, "RETURNING id, created_at, updated_at")
	assert.Len(t, args, 15)
	assert.Equal(t, StatusPending, args[14])
}

func TestInsertLinesQuery(t *testing.T) {
	lines := []Line{
		{CreatorID: creatorA, Quantity: 2, HourlyRate: 500, Cost: 1000},
		{CreatorID: creatorB, Quantity: 1, SampleID: "9e4c5a3b-6f7d-4c8e-9d2f-3a4b5c6d7e8f", HourlyRate: 600, Cost: 600},
	}

	sql, args, err := insertLinesQuery("b1", lines).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "INSERT INTO public.booking_lines (booking_id,position,creator_id,quantity,sample_id,hourly_rate,cost)")
	assert.Contains(t, sql, "($1,$2,$3,$4,$5,$6,$7),($8,$9,$10,$11,$12,$13,$14)")
	require.Len(t, args, 14)
	assert.Nil(t, args[4], "empty sample id is stored as NULL")
	assert.Equal(t, 1, args[8])
	assert.Equal(t, "9e4c5a3b-6f7d-4c8e-9d2f-3a4b5c6d7e8f", args[11])
}

func TestListBookingsQuery(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		sql, args, err := listBookingsQuery(Filter{UserID: userID}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "WHERE b.user_id = $1")
		assert.Contains(t, sql, "ORDER BY b.start_time DESC, b.id DESC")
		assert.Contains(t, sql, "LIMIT 20 OFFSET 0")
		assert.Equal(t, []any{userID}, args)
	})

	t.Run("Status and paging", func(t *testing.T) {
		sql, args, err := listBookingsQuery(Filter{UserID: userID, Status: "approved", Page: 3, PageSize: 10, SortOrder: "ASC"}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "b.status = $2")
		assert.Contains(t, sql, "ORDER BY b.start_time ASC, b.id ASC")
		assert.Contains(t, sql, "LIMIT 10 OFFSET 20")
		assert.Equal(t, []any{userID, "approved"}, args)
	})

	t.Run("Unknown sort order falls back to DESC", func(t *testing.T) {
		sql, _, err := listBookingsQuery(Filter{SortOrder: "sideways"}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "ORDER BY b.start_time DESC")
		assert.NotContains(t, sql, "WHERE")
	})
}
