package visualize

import (
	"testing"

	"tweetsens/backend/internal/models"
)

func TestHourOfDay(t *testing.T) {
	tests := []struct {
		name string
		date string
		want int
	}{
		{"rfc3339", "2024-05-01T14:30:00Z", 14},
		{"space_separated_tz", "2024-05-01 23:30:00+00:00", 23},
		{"space_separated", "2024-05-01 07:05:00", 7},
		{"garbage", "not a date", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hourOfDay(tt.date); got != tt.want {
				t.Fatalf("hourOfDay(%q) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestEngagementGrid(t *testing.T) {
	tweets := []models.Tweet{
		{Sentiment: "positive", Date: "2024-05-01T09:00:00Z", Likes: 3, Retweets: 2},
		{Sentiment: "positive", Date: "2024-05-01T09:40:00Z", Likes: 1, Retweets: 0},
		{Sentiment: "negative", Date: "2024-05-01T21:00:00Z", Likes: 7, Retweets: 3},
		{Sentiment: "bogus", Date: "2024-05-01T05:00:00Z", Likes: 1, Retweets: 1},
	}

	grid := engagementGrid(tweets)

	// Rows follow sentimentRows order: negative, neutral, positive.
	if got := grid[2][9]; got != 6 {
		t.Fatalf("positive@9h = %d, want 6 (engagement summed per cell)", got)
	}
	if got := grid[0][21]; got != 10 {
		t.Fatalf("negative@21h = %d, want 10", got)
	}
	if got := grid[1][5]; got != 2 {
		t.Fatalf("unknown label should land in the neutral row, got %d", got)
	}
}

func TestWordCounts(t *testing.T) {
	tweets := []models.Tweet{
		{Content: "Loving the new release! https://example.com @alice #golang"},
		{Content: "the release is here"},
	}

	counts := wordCounts(tweets)

	if counts["release"] != 2 {
		t.Fatalf("release counted %d times, want 2", counts["release"])
	}
	if _, ok := counts["the"]; ok {
		t.Fatalf("stopword 'the' should be dropped")
	}
	for _, noise := range []string{"https://example.com", "@alice", "#golang", "golang"} {
		if _, ok := counts[noise]; ok {
			t.Fatalf("noise token %q should be stripped", noise)
		}
	}
}
