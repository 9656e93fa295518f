package db

import (
	"time"

	"gorm.io/datatypes"
)

type Room struct {
	ID            string  `gorm:"column:id;primaryKey"`
	CorrectAnswer string  `gorm:"column:correct_answer"`
	DrawingBase64 *string `gorm:"column:drawing_base64"`
}

func (Room) TableName() string { return "rooms" }

type Guess struct {
	ID      uint   `gorm:"column:id;primaryKey;autoIncrement"`
	RoomID  string `gorm:"column:room_id;index"`
	Guesser string `gorm:"column:guesser"`
	Text    string `gorm:"column:guess"`
	Correct bool   `gorm:"column:correct"`
}

func (Guess) TableName() string { return "guesses" }

type RatingScores struct {
	Cuteness    int `json:"cuteness"`
	Creativity  int `json:"creativity"`
	Resemblance int `json:"resemblance"`
}

type Rating struct {
	ID        uint                             `gorm:"column:id;primaryKey;autoIncrement"`
	RoomID    string                           `gorm:"column:room_id;index;not null"`
	Rater     string                           `gorm:"column:rater;not null"`
	Scores    datatypes.JSONType[RatingScores] `gorm:"column:scores;not null"`
	CreatedAt time.Time                        `gorm:"column:created_at;not null"`
}

func (Rating) TableName() string { return "ratings" }
