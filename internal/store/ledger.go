package store

import (
	"context"
	"strings"

	"picture-guess/internal/db"

	"gorm.io/gorm"
)

// GuessLedger is the append-only log of guess attempts.
type GuessLedger struct {
	db *gorm.DB
}

func NewGuessLedger(conn *gorm.DB) *GuessLedger {
	return &GuessLedger{db: conn}
}

// GuessStats summarizes a room's guesses without exposing their text.
type GuessStats struct {
	Attempts int64
	SolvedBy []string
}

// AnswerMatches compares ignoring surrounding whitespace and case.
func AnswerMatches(answer, guess string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(guess))
}

// SubmitGuess scores guessText against the room's current answer and records
// the attempt. A room that does not exist scores false but is still recorded.
// When the answer lookup itself fails nothing is written.
func (l *GuessLedger) SubmitGuess(ctx context.Context, roomID, guesserName, guessText string) (bool, error) {
	var correct bool
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		answer, found, err := lookupAnswer(tx, roomID)
		if err != nil {
			return storageErr("lookup answer", err)
		}
		correct = found && AnswerMatches(answer, guessText)
		record := db.Guess{
			RoomID:  roomID,
			Guesser: guesserName,
			Text:    guessText,
			Correct: correct,
		}
		if err := tx.Create(&record).Error; err != nil {
			return storageErr("record guess", err)
		}
		return nil
	})
	if err != nil {
		return false, asStorageErr("submit guess", err)
	}
	return correct, nil
}

// Count returns the number of recorded guesses for roomID, or for every room
// when roomID is empty.
func (l *GuessLedger) Count(ctx context.Context, roomID string) (int64, error) {
	var count int64
	query := l.db.WithContext(ctx).Model(&db.Guess{})
	if roomID != "" {
		query = query.Where("room_id = ?", roomID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, storageErr("count guesses", err)
	}
	return count, nil
}

// Stats returns the attempt count and the distinct names of players who
// guessed correctly, in order of their first correct guess.
func (l *GuessLedger) Stats(ctx context.Context, roomID string) (GuessStats, error) {
	attempts, err := l.Count(ctx, roomID)
	if err != nil {
		return GuessStats{}, err
	}
	var rows []db.Guess
	err = l.db.WithContext(ctx).
		Select("id", "guesser").
		Where("room_id = ? AND correct = ?", roomID, true).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return GuessStats{}, storageErr("list correct guesses", err)
	}
	seen := make(map[string]struct{}, len(rows))
	solvedBy := make([]string, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.Guesser]; ok {
			continue
		}
		seen[row.Guesser] = struct{}{}
		solvedBy = append(solvedBy, row.Guesser)
	}
	return GuessStats{Attempts: attempts, SolvedBy: solvedBy}, nil
}

// History returns the guesses recorded for roomID, oldest first. It exposes
// guess text and is meant for operators, not players.
func (l *GuessLedger) History(ctx context.Context, roomID string) ([]db.Guess, error) {
	var rows []db.Guess
	err := l.db.WithContext(ctx).Where("room_id = ?", roomID).Order("id").Find(&rows).Error
	if err != nil {
		return nil, storageErr("list guesses", err)
	}
	return rows, nil
}
