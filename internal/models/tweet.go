package models

// Tweet represents a row in the 'tweets' table. A record is immutable once
// committed: there is no update or delete path in this service.
//
// The json tags define the wire representation used by both the query API and
// the visualization endpoints.
type Tweet struct {
	ID        int64  `db:"id" json:"-"`
	TweetID   string `db:"tweet_id" json:"tweet_id"`
	Username  string `db:"username" json:"username"`
	Content   string `db:"content" json:"content"`
	Date      string `db:"date" json:"date"`
	Sentiment string `db:"sentiment" json:"sentiment"`
	Likes     int    `db:"likes" json:"likes"`
	Retweets  int    `db:"retweets" json:"retweets"`
}
