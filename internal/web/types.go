package web

type DrawPage struct {
	RoomID          string
	MaxRoomIDLength int
	PreviewChars    int
}

type GuessPage struct {
	RoomID          string
	GuesserName     string
	MaxRoomIDLength int
}
