package store

import (
	"context"

	"picture-guess/internal/db"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MinScore = 1
	MaxScore = 10
)

// RatingBook stores player ratings of a room's drawing.
type RatingBook struct {
	db *gorm.DB
}

func NewRatingBook(conn *gorm.DB) *RatingBook {
	return &RatingBook{db: conn}
}

type RatingSummary struct {
	Count       int64
	Cuteness    float64
	Creativity  float64
	Resemblance float64
}

func validScore(v int) bool {
	return v >= MinScore && v <= MaxScore
}

// Rate appends one rating. The room is not required to exist.
func (b *RatingBook) Rate(ctx context.Context, roomID, rater string, scores db.RatingScores) error {
	if !validScore(scores.Cuteness) || !validScore(scores.Creativity) || !validScore(scores.Resemblance) {
		return ErrInvalidScore
	}
	record := db.Rating{
		RoomID: roomID,
		Rater:  rater,
		Scores: datatypes.NewJSONType(scores),
	}
	return storageErr("record rating", b.db.WithContext(ctx).Create(&record).Error)
}

// Summary averages every rating left on roomID.
func (b *RatingBook) Summary(ctx context.Context, roomID string) (RatingSummary, error) {
	var rows []db.Rating
	if err := b.db.WithContext(ctx).Where("room_id = ?", roomID).Find(&rows).Error; err != nil {
		return RatingSummary{}, storageErr("list ratings", err)
	}
	summary := RatingSummary{Count: int64(len(rows))}
	if len(rows) == 0 {
		return summary, nil
	}
	for _, row := range rows {
		scores := row.Scores.Data()
		summary.Cuteness += float64(scores.Cuteness)
		summary.Creativity += float64(scores.Creativity)
		summary.Resemblance += float64(scores.Resemblance)
	}
	n := float64(len(rows))
	summary.Cuteness /= n
	summary.Creativity /= n
	summary.Resemblance /= n
	return summary, nil
}
