// Package visualize renders PNG images from caller-supplied batches of
// records into the static directory. Rendering is stateless; each call
// overwrites the previous image of the same kind.
package visualize

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/psykhi/wordclouds"

	"tweetsens/backend/internal/models"
)

const wordcloudFilename = "tweet_wordcloud.png"

// Noise removed before counting words: URLs, @mentions and #hashtags.
var noisePattern = regexp.MustCompile(`http\S+|@\S+|#[A-Za-z0-9_]+`)

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(
		"a about after all also an and any are as at be because been but by can " +
			"could did do does for from had has have he her his how i if in into is " +
			"it its just like me more my no not now of on or our out over own so " +
			"she some than that the their them then there these they this to was we " +
			"were what when which who will with would you your") {
		stopwords[w] = struct{}{}
	}
}

// Renderer writes generated images into staticDir. fontPath points at a TTF
// used for all text drawing.
type Renderer struct {
	staticDir string
	fontPath  string
}

// NewRenderer ensures staticDir exists and returns a renderer.
func NewRenderer(staticDir, fontPath string) (*Renderer, error) {
	if err := os.MkdirAll(staticDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create static directory: %w", err)
	}
	return &Renderer{staticDir: staticDir, fontPath: fontPath}, nil
}

// Wordcloud renders a word cloud of the tweet contents and returns the URL
// path of the generated image.
func (r *Renderer) Wordcloud(tweets []models.Tweet) (string, error) {
	counts := wordCounts(tweets)
	if len(counts) == 0 {
		return "", fmt.Errorf("no words to render")
	}

	cloud := wordclouds.NewWordcloud(counts,
		wordclouds.FontFile(r.fontPath),
		wordclouds.Width(800),
		wordclouds.Height(400),
		wordclouds.FontMaxSize(96),
		wordclouds.FontMinSize(12),
		wordclouds.BackgroundColor(color.White),
		wordclouds.Colors([]color.Color{
			color.RGBA{R: 0x00, G: 0xbf, B: 0xff, A: 0xff},
			color.RGBA{R: 0x64, G: 0x95, B: 0xed, A: 0xff},
			color.RGBA{R: 0x94, G: 0x70, B: 0xdb, A: 0xff},
			color.RGBA{R: 0xda, G: 0x70, B: 0xd6, A: 0xff},
		}),
	)

	if err := r.savePNG(wordcloudFilename, cloud.Draw()); err != nil {
		return "", err
	}
	return "/static/" + wordcloudFilename, nil
}

// savePNG writes img into the static directory under filename.
func (r *Renderer) savePNG(filename string, img image.Image) error {
	path := filepath.Join(r.staticDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// wordCounts tallies cleaned, lower-cased words across all tweet contents,
// dropping stopwords and one-letter tokens.
func wordCounts(tweets []models.Tweet) map[string]int {
	counts := make(map[string]int)
	for _, t := range tweets {
		cleaned := noisePattern.ReplaceAllString(t.Content, "")
		for _, word := range strings.Fields(cleaned) {
			word = strings.ToLower(strings.Trim(word, `.,!?;:"'()[]{}`))
			if len(word) < 2 {
				continue
			}
			if _, stop := stopwords[word]; stop {
				continue
			}
			counts[word]++
		}
	}
	return counts
}
