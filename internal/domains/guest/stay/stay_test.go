package stay_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkin/internal/domains/guest/stay"
	"checkin/shared/constant"
	"checkin/shared/timezone"
)

func date(value string) time.Time {
	t, err := timezone.Parse(constant.StayDateFormat, value)
	if err != nil {
		panic(err)
	}

	return t
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{
			name: "valid pair",
			from: "2024-06-01",
			to:   "2024-06-05",
		},
		{
			name:    "garbage from",
			from:    "not-a-date",
			to:      "2024-06-05",
			wantErr: stay.ErrInvalidDate,
		},
		{
			name:    "garbage to",
			from:    "2024-06-01",
			to:      "05/06/2024",
			wantErr: stay.ErrInvalidDate,
		},
		{
			name:    "empty",
			from:    "",
			to:      "",
			wantErr: stay.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interval, err := stay.Parse(tt.from, tt.to)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, date(tt.from), interval.From)
			assert.Equal(t, date(tt.to), interval.To)
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		parsed, err := stay.ParseDate("2024-06-01")

		require.NoError(t, err)
		assert.Equal(t, date("2024-06-01"), parsed)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := stay.ParseDate("not-a-date")

		assert.ErrorIs(t, err, stay.ErrInvalidDate)
	})
}

// A guest checking in on the current date must never be rejected as a
// past-date booking. Dates arrive without a zone, so parsing them anywhere
// other than the application timezone shifts them relative to Today() when
// the configured zone is west of UTC.
func TestParse_SameDayCheckInInAppTimezone(t *testing.T) {
	today := timezone.Today()

	interval, err := stay.Parse(
		today.Format(constant.StayDateFormat),
		today.AddDate(0, 0, 2).Format(constant.StayDateFormat),
	)

	require.NoError(t, err)
	assert.Equal(t, timezone.GetLocation(), interval.From.Location())
	assert.True(t, interval.From.Equal(today))
	assert.NoError(t, interval.Validate(today, 0))
}

func TestInterval_Validate(t *testing.T) {
	today := date("2024-06-01")

	tests := []struct {
		name        string
		interval    stay.Interval
		maxStayDays int
		wantErr     error
	}{
		{
			name:     "valid future stay",
			interval: stay.Interval{From: date("2024-06-02"), To: date("2024-06-06")},
		},
		{
			name:     "check-in today is allowed",
			interval: stay.Interval{From: date("2024-06-01"), To: date("2024-06-03")},
		},
		{
			name:     "check-in in the past",
			interval: stay.Interval{From: date("2024-05-30"), To: date("2024-06-03")},
			wantErr:  stay.ErrDateInPast,
		},
		{
			name:     "check-out before check-in",
			interval: stay.Interval{From: date("2024-06-05"), To: date("2024-06-02")},
			wantErr:  stay.ErrInvalidRange,
		},
		{
			name:     "zero-length stay",
			interval: stay.Interval{From: date("2024-06-05"), To: date("2024-06-05")},
			wantErr:  stay.ErrInvalidRange,
		},
		{
			name:     "past check-in reported before inverted range",
			interval: stay.Interval{From: date("2024-05-20"), To: date("2024-05-10")},
			wantErr:  stay.ErrDateInPast,
		},
		{
			name:        "stay longer than the cap",
			interval:    stay.Interval{From: date("2024-06-02"), To: date("2024-07-10")},
			maxStayDays: 30,
		},
		{
			name:        "cap disabled",
			interval:    stay.Interval{From: date("2024-06-02"), To: date("2025-06-02")},
			maxStayDays: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.interval.Validate(today, tt.maxStayDays)

			if tt.name == "stay longer than the cap" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "cannot exceed 30 days")

				return
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInterval_Overlaps(t *testing.T) {
	existing := stay.Interval{From: date("2024-06-01"), To: date("2024-06-05")}

	tests := []struct {
		name      string
		candidate stay.Interval
		want      bool
	}{
		{
			name:      "overlapping tail",
			candidate: stay.Interval{From: date("2024-06-03"), To: date("2024-06-07")},
			want:      true,
		},
		{
			name:      "overlapping head",
			candidate: stay.Interval{From: date("2024-05-28"), To: date("2024-06-02")},
			want:      true,
		},
		{
			name:      "fully contained",
			candidate: stay.Interval{From: date("2024-06-02"), To: date("2024-06-04")},
			want:      true,
		},
		{
			name:      "fully containing",
			candidate: stay.Interval{From: date("2024-05-28"), To: date("2024-06-10")},
			want:      true,
		},
		{
			name:      "abutting after is not a conflict",
			candidate: stay.Interval{From: date("2024-06-05"), To: date("2024-06-10")},
			want:      false,
		},
		{
			name:      "abutting before is not a conflict",
			candidate: stay.Interval{From: date("2024-05-28"), To: date("2024-06-01")},
			want:      false,
		},
		{
			name:      "disjoint",
			candidate: stay.Interval{From: date("2024-07-01"), To: date("2024-07-05")},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.candidate.Overlaps(existing))
			assert.Equal(t, tt.want, existing.Overlaps(tt.candidate))
		})
	}
}

func TestFindConflict(t *testing.T) {
	existing := []stay.Interval{
		{From: date("2024-06-01"), To: date("2024-06-05")},
		{From: date("2024-06-10"), To: date("2024-06-15")},
	}

	t.Run("no existing bookings never conflicts", func(t *testing.T) {
		_, found := stay.FindConflict(stay.Interval{From: date("2024-06-03"), To: date("2024-06-07")}, nil)
		assert.False(t, found)
	})

	t.Run("reports the conflicting range", func(t *testing.T) {
		conflict, found := stay.FindConflict(stay.Interval{From: date("2024-06-12"), To: date("2024-06-20")}, existing)
		require.True(t, found)
		assert.Equal(t, existing[1], conflict)
	})

	t.Run("back-to-back with both bookings is accepted", func(t *testing.T) {
		_, found := stay.FindConflict(stay.Interval{From: date("2024-06-05"), To: date("2024-06-10")}, existing)
		assert.False(t, found)
	})
}

func TestConflict(t *testing.T) {
	err := stay.Conflict(stay.Interval{From: date("2024-06-01"), To: date("2024-06-05")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "2024-06-01 to 2024-06-05")
}
