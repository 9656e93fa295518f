package server

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const roomIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const suggestedRoomIDLength = 6

func newRoomID() (string, error) {
	return gonanoid.Generate(roomIDAlphabet, suggestedRoomIDLength)
}
