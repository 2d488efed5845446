package visualize

import (
	"fmt"
	"time"

	"github.com/fogleman/gg"
	"github.com/rs/zerolog/log"

	"tweetsens/backend/internal/models"
	"tweetsens/backend/internal/sentiment"
)

const heatmapFilename = "tweet_heatmap.png"

const hoursPerDay = 24

// Row order on the heatmap, top to bottom.
var sentimentRows = []string{sentiment.Negative, sentiment.Neutral, sentiment.Positive}

// Date layouts tried when bucketing by hour of day. Unparseable dates land
// in hour 0 rather than dropping the record.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
}

// Heatmap renders a sentiment-by-hour engagement heatmap and returns the URL
// path of the generated image. Engagement is likes plus retweets, summed per
// cell.
func (r *Renderer) Heatmap(tweets []models.Tweet) (string, error) {
	grid := engagementGrid(tweets)

	const (
		width      = 1200
		height     = 400
		marginLeft = 90.0
		marginTop  = 50.0
		marginBot  = 40.0
	)
	cellW := (float64(width) - marginLeft - 10) / hoursPerDay
	cellH := (float64(height) - marginTop - marginBot) / float64(len(sentimentRows))

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if err := dc.LoadFontFace(r.fontPath, 13); err != nil {
		log.Warn().Err(err).Str("font", r.fontPath).Msg("Failed to load font, using built-in face")
	}

	max := 0
	for _, row := range grid {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}

	for rowIdx, label := range sentimentRows {
		for hour := 0; hour < hoursPerDay; hour++ {
			x := marginLeft + float64(hour)*cellW
			y := marginTop + float64(rowIdx)*cellH

			// White through red, scaled to the hottest cell.
			intensity := 0.0
			if max > 0 {
				intensity = float64(grid[rowIdx][hour]) / float64(max)
			}
			dc.SetRGB(1, 1-intensity*0.85, 1-intensity*0.85)
			dc.DrawRectangle(x, y, cellW, cellH)
			dc.Fill()

			dc.SetRGB(0.85, 0.85, 0.85)
			dc.DrawRectangle(x, y, cellW, cellH)
			dc.Stroke()

			if v := grid[rowIdx][hour]; v > 0 {
				dc.SetRGB(0.1, 0.1, 0.1)
				dc.DrawStringAnchored(fmt.Sprint(v), x+cellW/2, y+cellH/2, 0.5, 0.5)
			}
		}

		dc.SetRGB(0.1, 0.1, 0.1)
		dc.DrawStringAnchored(label, marginLeft-8, marginTop+float64(rowIdx)*cellH+cellH/2, 1, 0.5)
	}

	dc.SetRGB(0.1, 0.1, 0.1)
	for hour := 0; hour < hoursPerDay; hour++ {
		x := marginLeft + float64(hour)*cellW + cellW/2
		dc.DrawStringAnchored(fmt.Sprint(hour), x, float64(height)-marginBot+14, 0.5, 0.5)
	}
	dc.DrawStringAnchored("Hour of Day", marginLeft+(float64(width)-marginLeft-10)/2, float64(height)-12, 0.5, 0.5)
	dc.DrawStringAnchored("Tweet Engagement Heatmap", float64(width)/2, marginTop/2, 0.5, 0.5)

	if err := r.savePNG(heatmapFilename, dc.Image()); err != nil {
		return "", err
	}
	return "/static/" + heatmapFilename, nil
}

// engagementGrid sums engagement per sentiment row and hour-of-day column.
func engagementGrid(tweets []models.Tweet) [][]int {
	grid := make([][]int, len(sentimentRows))
	for i := range grid {
		grid[i] = make([]int, hoursPerDay)
	}

	rowFor := make(map[string]int, len(sentimentRows))
	for i, label := range sentimentRows {
		rowFor[label] = i
	}

	for _, t := range tweets {
		row, ok := rowFor[t.Sentiment]
		if !ok {
			// Caller-supplied records may carry labels outside the
			// closed set; those land in the neutral row.
			row = rowFor[sentiment.Neutral]
		}
		grid[row][hourOfDay(t.Date)] += t.Likes + t.Retweets
	}
	return grid
}

// hourOfDay extracts the hour from the string-encoded timestamp, trying the
// known layouts in order.
func hourOfDay(date string) int {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, date); err == nil {
			return ts.Hour()
		}
	}
	return 0
}
