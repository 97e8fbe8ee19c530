package models

import (
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// Trailer is a video from the video platform with its engagement counters.
type Trailer struct {
	bun.BaseModel `bun:"table:trailers,alias:t"`

	ID           int64     `bun:"id,pk,autoincrement" json:"-"`
	Title        string    `bun:"title,notnull" json:"title"`
	VideoID      string    `bun:"video_id,unique,notnull" json:"video_id"`
	ViewCount    int64     `bun:"view_count,notnull,default:0" json:"view_count"`
	LikeCount    int64     `bun:"like_count,notnull,default:0" json:"like_count"`
	CommentCount int64     `bun:"comment_count,notnull,default:0" json:"comment_count"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"-"`
}

// Validate checks that the video id is present and counters are non-negative.
func (t *Trailer) Validate() error {
	if t.VideoID == "" {
		return errors.New("video id is required")
	}
	if t.ViewCount < 0 || t.LikeCount < 0 || t.CommentCount < 0 {
		return errors.New("engagement counts must not be negative")
	}
	return nil
}
