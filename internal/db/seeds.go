package db

import (
	"encoding/csv"
	"os"
	"strings"
)

// RoomSeed is one row of a room seed file: room_id,answer,image_path.
type RoomSeed struct {
	RoomID    string
	Answer    string
	ImagePath string
}

// ReadRoomSeeds parses a room seed CSV. The first row is a header; rows
// without a room id are skipped.
func ReadRoomSeeds(path string) ([]RoomSeed, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var seeds []RoomSeed
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 2 {
			continue
		}
		roomID := strings.TrimSpace(row[0])
		if roomID == "" {
			continue
		}
		seed := RoomSeed{
			RoomID: roomID,
			Answer: row[1],
		}
		if len(row) >= 3 {
			seed.ImagePath = strings.TrimSpace(row[2])
		}
		seeds = append(seeds, seed)
	}
	return seeds, nil
}
