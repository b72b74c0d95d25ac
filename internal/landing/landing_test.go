package landing_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/cluemart-landing/internal/landing"
)

var launch = time.Date(2025, time.December, 25, 0, 1, 0, 0, time.FixedZone("NZDT", 13*3600))

func TestCountdown(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want landing.TimeLeft
	}{
		{
			name: "days ahead",
			now:  launch.Add(-(3*24*time.Hour + 4*time.Hour + 5*time.Minute + 6*time.Second + 700*time.Millisecond)),
			want: landing.TimeLeft{Days: 3, Hours: 4, Minutes: 5, Seconds: 6},
		},
		{
			name: "under a second",
			now:  launch.Add(-500 * time.Millisecond),
			want: landing.TimeLeft{},
		},
		{
			name: "exactly at launch",
			now:  launch,
			want: landing.TimeLeft{Launched: true},
		},
		{
			name: "after launch",
			now:  launch.Add(time.Hour),
			want: landing.TimeLeft{Launched: true},
		},
		{
			name: "different zone same instant",
			now:  launch.Add(-25 * time.Hour).UTC(),
			want: landing.TimeLeft{Days: 1, Hours: 1},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, landing.Countdown(launch, tc.now))
		})
	}
}

func TestTeaserAt_Wraps(t *testing.T) {
	n := len(landing.Teasers)
	assert.Equal(t, landing.Teasers[0], landing.TeaserAt(0))
	assert.Equal(t, landing.Teasers[1], landing.TeaserAt(n+1))
	assert.Equal(t, landing.Teasers[n-1], landing.TeaserAt(-1))
}

func TestPageRender(t *testing.T) {
	p := landing.Page{
		ProductName:    "ClueMart",
		LaunchAt:       launch,
		TeaserInterval: 5 * time.Second,
		SubscribeURL:   "/api/subscribe",
	}

	var buf bytes.Buffer
	require.NoError(t, p.Render(&buf, launch.Add(-2*time.Hour)))
	html := buf.String()

	assert.Contains(t, html, "ClueMart Beta opens in")
	assert.Contains(t, html, `data-role="stallholder"`)
	assert.Contains(t, html, `data-role="organiser"`)
	assert.Contains(t, html, `data-role="visitor"`)
	assert.Contains(t, html, ">Organiser</button>")
	assert.Contains(t, html, `<span id="hours">02</span>`)
	assert.Contains(t, html, "Your market is about to come alive.")
}
