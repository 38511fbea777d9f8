package service

import (
	"Beacon/internal/api/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDateRange(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 30, 0, 0, time.UTC)

	t.Run("defaults to last 30 days", func(t *testing.T) {
		start, end, err := ResolveDateRange(nil, now)
		require.NoError(t, err)
		assert.Equal(t, now.AddDate(0, 0, -30), start)
		assert.Equal(t, now, end)
	})

	t.Run("explicit dates win over period", func(t *testing.T) {
		start, end, err := ResolveDateRange(&dto.AnalyticsQueryDTO{
			StartDate: "2026-01-01",
			EndDate:   "2026-02-01",
			Period:    dto.PeriodLast7Days,
		}, now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("end date defaults to now", func(t *testing.T) {
		start, end, err := ResolveDateRange(&dto.AnalyticsQueryDTO{StartDate: "2026-08-01"}, now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, now, end)
	})

	t.Run("periods", func(t *testing.T) {
		tests := []struct {
			period string
			want   time.Time
		}{
			{dto.PeriodLast7Days, now.AddDate(0, 0, -7)},
			{dto.PeriodLast30Days, now.AddDate(0, 0, -30)},
			{dto.PeriodLast90Days, now.AddDate(0, 0, -90)},
			{dto.PeriodThisMonth, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)},
			{dto.PeriodThisYear, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)},
		}
		for _, tt := range tests {
			start, end, err := ResolveDateRange(&dto.AnalyticsQueryDTO{Period: tt.period}, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, start, tt.period)
			assert.Equal(t, now, end, tt.period)
		}
	})

	t.Run("rfc3339 accepted", func(t *testing.T) {
		start, _, err := ResolveDateRange(&dto.AnalyticsQueryDTO{StartDate: "2026-08-01T08:00:00Z"}, now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.August, 1, 8, 0, 0, 0, time.UTC), start)
	})

	t.Run("malformed input rejected", func(t *testing.T) {
		_, _, err := ResolveDateRange(&dto.AnalyticsQueryDTO{StartDate: "not-a-date"}, now)
		assert.ErrorIs(t, err, ErrParamInvalid)

		_, _, err = ResolveDateRange(&dto.AnalyticsQueryDTO{EndDate: "2026/08/01"}, now)
		assert.ErrorIs(t, err, ErrParamInvalid)

		_, _, err = ResolveDateRange(&dto.AnalyticsQueryDTO{Period: "14d"}, now)
		assert.ErrorIs(t, err, ErrParamInvalid)
	})
}
