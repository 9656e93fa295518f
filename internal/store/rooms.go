// Package store persists rooms, the guesses made against them and the
// ratings players leave on drawings.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"picture-guess/internal/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DefaultMaxRoomIDLength = 20

// RoomStore owns the rooms table. The answer is only read back through
// GuessLedger.
type RoomStore struct {
	db          *gorm.DB
	maxIDLength int
}

func NewRoomStore(conn *gorm.DB, maxIDLength int) *RoomStore {
	if maxIDLength <= 0 {
		maxIDLength = DefaultMaxRoomIDLength
	}
	return &RoomStore{db: conn, maxIDLength: maxIDLength}
}

// ValidateRoomID checks the id is non-empty, within the length limit and
// usable as a single URL path segment.
func (s *RoomStore) ValidateRoomID(roomID string) error {
	if roomID == "" {
		return fmt.Errorf("%w: room id is required", ErrInvalidRoomID)
	}
	if utf8.RuneCountInString(roomID) > s.maxIDLength {
		return fmt.Errorf("%w: room id must be %d characters or fewer", ErrInvalidRoomID, s.maxIDLength)
	}
	if strings.ContainsRune(roomID, '/') {
		return fmt.Errorf("%w: room id must not contain '/'", ErrInvalidRoomID)
	}
	for _, r := range roomID {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: room id contains unsupported characters", ErrInvalidRoomID)
		}
	}
	return nil
}

// MaxRoomIDLength is the configured id limit.
func (s *RoomStore) MaxRoomIDLength() int {
	return s.maxIDLength
}

// Save replaces the answer and drawing for roomID in one transaction. An
// empty drawing is stored as NULL.
func (s *RoomStore) Save(ctx context.Context, roomID, answer, encodedDrawing string) error {
	if err := s.ValidateRoomID(roomID); err != nil {
		return err
	}
	record := db.Room{
		ID:            roomID,
		CorrectAnswer: answer,
	}
	if encodedDrawing != "" {
		record.DrawingBase64 = &encodedDrawing
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"correct_answer", "drawing_base64"}),
		}).Create(&record).Error
	})
	return storageErr("save room", err)
}

// Get returns the encoded drawing most recently saved for roomID.
func (s *RoomStore) Get(ctx context.Context, roomID string) (string, error) {
	var record db.Room
	err := s.db.WithContext(ctx).
		Select("id", "drawing_base64").
		Where("id = ?", roomID).
		Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrRoomNotFound
		}
		return "", storageErr("get room", err)
	}
	if record.DrawingBase64 == nil || *record.DrawingBase64 == "" {
		return "", ErrRoomNotFound
	}
	return *record.DrawingBase64, nil
}

// Exists reports whether roomID has been saved.
func (s *RoomStore) Exists(ctx context.Context, roomID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&db.Room{}).Where("id = ?", roomID).Count(&count).Error
	if err != nil {
		return false, storageErr("count rooms", err)
	}
	return count > 0, nil
}

// lookupAnswer reads the current answer inside tx. found is false when the
// room does not exist.
func lookupAnswer(tx *gorm.DB, roomID string) (answer string, found bool, err error) {
	var record db.Room
	err = tx.Select("id, COALESCE(correct_answer, '') AS correct_answer").Where("id = ?", roomID).Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return record.CorrectAnswer, true, nil
}
