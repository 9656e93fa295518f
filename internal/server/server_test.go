package server

import (
	"image/png"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViews(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, path := range []string{"/", "/draw", "/draw?room=kitchen", "/guess", "/guess/kitchen", "/guess?room=kitchen", "/legacy"} {
		resp := doRequest(t, ts, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html", path)
	}
}

func TestDrawViewEscapesRoomID(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, `/draw?room=%22%3E%3Cscript%3E`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.NotContains(t, body, `"><script>`)
	assert.Contains(t, body, `type="password"`)
}

func TestGuessViewRedirectsInvalidRoom(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/guess/"+strings.Repeat("x", 21), nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/guess", resp.Header.Get("Location"))
}

func TestSuggestRoomID(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/suggest", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	id, ok := decodeBody(t, resp)["room_id"].(string)
	require.True(t, ok)
	assert.Len(t, id, suggestedRoomIDLength)
	for _, r := range id {
		assert.Contains(t, roomIDAlphabet, string(r))
	}
}

func TestSaveAndLoadDrawing(t *testing.T) {
	ts, _ := newTestServer(t)

	saved := saveDrawing(t, ts, "kitchen", "Cat")
	assert.Equal(t, "kitchen", saved["room_id"])
	preview, _ := saved["preview"].(string)
	assert.NotEmpty(t, preview)
	assert.LessOrEqual(t, len(preview), 100)
	assert.NotContains(t, saved, "answer")

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/kitchen/drawing", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["available"])
	assert.Equal(t, float64(2), body["width"])
	assert.Equal(t, float64(2), body["height"])
	image, _ := body["image_data"].(string)
	assert.True(t, strings.HasPrefix(image, pngDataURLPrefix))
	assert.NotContains(t, body, "answer")
}

func TestSaveTrimsRoomID(t *testing.T) {
	ts, _ := newTestServer(t)

	saved := saveDrawing(t, ts, "  kitchen ", "Cat")
	assert.Equal(t, "kitchen", saved["room_id"])
	body := submitGuess(t, ts, "kitchen", "alice", "cat")
	assert.Equal(t, true, body["correct"])
}

func TestSaveFloatPixels(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms", map[string]any{
		"room_id":      "floaty",
		"answer":       "dot",
		"width":        1,
		"height":       1,
		"float_pixels": []float64{1, 0, 0, 1},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, ts, http.MethodGet, "/api/rooms/floaty/drawing.png", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	r, g, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0, 0xffff}, []uint32{r, g, b, a})
}

func TestGetDrawingUnknownRoom(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/nowhere/drawing", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["available"])
	assert.Equal(t, msgNoDrawing, body["message"])

	resp = doRequest(t, ts, http.MethodGet, "/api/rooms/nowhere/drawing.png", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetDrawingRejectsLongRoomID(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/"+strings.Repeat("a", 21)+"/drawing", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeBody(t, resp)["error"], "20 characters")
}

func TestSaveDrawingValidation(t *testing.T) {
	ts, _ := newTestServer(t)

	cases := []struct {
		name    string
		payload map[string]any
		message string
	}{
		{
			name:    "missing room id",
			payload: map[string]any{"answer": "cat", "width": 2, "height": 2, "pixels": testPixels()},
			message: "room id is required",
		},
		{
			name:    "room id too long",
			payload: map[string]any{"room_id": strings.Repeat("r", 21), "width": 2, "height": 2, "pixels": testPixels()},
			message: "room id must be 20 characters or fewer",
		},
		{
			name:    "missing width",
			payload: map[string]any{"room_id": "kitchen", "height": 2, "pixels": testPixels()},
			message: "canvas width is required",
		},
		{
			name:    "canvas too wide",
			payload: map[string]any{"room_id": "kitchen", "width": 2000, "height": 2, "pixels": testPixels()},
			message: "canvas is too wide",
		},
		{
			name:    "missing pixels",
			payload: map[string]any{"room_id": "kitchen", "width": 2, "height": 2},
			message: "pixel buffer is missing",
		},
		{
			name:    "pixel count mismatch",
			payload: map[string]any{"room_id": "kitchen", "width": 3, "height": 2, "pixels": testPixels()},
			message: "expected 24 channel values, got 16",
		},
		{
			name:    "pixels not base64",
			payload: map[string]any{"room_id": "kitchen", "width": 2, "height": 2, "pixels": "!!!"},
			message: "pixels must be base64",
		},
		{
			name:    "answer too long",
			payload: map[string]any{"room_id": "kitchen", "answer": strings.Repeat("a", 61), "width": 2, "height": 2, "pixels": testPixels()},
			message: "answer must be 60 characters or fewer",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, ts, http.MethodPost, "/api/rooms", tc.payload)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, decodeBody(t, resp)["error"], tc.message)
		})
	}

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/kitchen/drawing", nil)
	assert.Equal(t, false, decodeBody(t, resp)["available"])
}

func TestGuessFlow(t *testing.T) {
	ts, _ := newTestServer(t)
	saveDrawing(t, ts, "kitchen", "Cat")

	body := submitGuess(t, ts, "kitchen", "bob", "dog")
	assert.Equal(t, false, body["correct"])
	assert.Equal(t, msgWrong, body["message"])

	body = submitGuess(t, ts, "kitchen", "alice", " CAT ")
	assert.Equal(t, true, body["correct"])
	assert.Equal(t, msgCorrect, body["message"])

	body = submitGuess(t, ts, "kitchen", "bob", "cats")
	assert.Equal(t, false, body["correct"])

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/kitchen/guesses", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decodeBody(t, resp)
	assert.Equal(t, float64(3), stats["attempts"])
	assert.Equal(t, []any{"alice"}, stats["solved_by"])
}

func TestOverwriteChangesAnswer(t *testing.T) {
	ts, _ := newTestServer(t)
	saveDrawing(t, ts, "kitchen", "Cat")
	saveDrawing(t, ts, "kitchen", "Dog")

	assert.Equal(t, false, submitGuess(t, ts, "kitchen", "alice", "cat")["correct"])
	assert.Equal(t, true, submitGuess(t, ts, "kitchen", "alice", "dog")["correct"])
}

func TestGuessUnknownRoomIsRecordedAsWrong(t *testing.T) {
	ts, _ := newTestServer(t)

	body := submitGuess(t, ts, "no-such-room", "alice", "anything")
	assert.Equal(t, false, body["correct"])

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/no-such-room/guesses", nil)
	assert.Equal(t, float64(1), decodeBody(t, resp)["attempts"])
}

func TestGuessValidation(t *testing.T) {
	ts, _ := newTestServer(t)
	saveDrawing(t, ts, "kitchen", "Cat")

	cases := []struct {
		name    string
		payload map[string]string
		message string
	}{
		{"missing name", map[string]string{"guess": "cat"}, "name is required"},
		{"blank guess", map[string]string{"guesser": "alice", "guess": "   "}, "guess must be 60 characters or fewer"},
		{"long name", map[string]string{"guesser": strings.Repeat("n", 21), "guess": "cat"}, "name must be 20 characters or fewer"},
		{"control characters", map[string]string{"guesser": "alice", "guess": "ca\x00t"}, "guess must be 60 characters or fewer"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, ts, http.MethodPost, "/api/rooms/kitchen/guesses", tc.payload)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, decodeBody(t, resp)["error"], tc.message)
		})
	}

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/kitchen/guesses", nil)
	assert.Equal(t, float64(0), decodeBody(t, resp)["attempts"])
}

func TestGuessStorageFailure(t *testing.T) {
	ts, conn := newTestServer(t)
	require.NoError(t, conn.Exec("DROP TABLE guesses").Error)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/kitchen/guesses", map[string]string{
		"guesser": "alice",
		"guess":   "cat",
	})
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "guess could not be recorded", decodeBody(t, resp)["error"])
}

func TestGuesserNameIsRemembered(t *testing.T) {
	ts, _ := newTestServer(t)
	saveDrawing(t, ts, "kitchen", "Cat")

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/kitchen/guesses", map[string]string{
		"guesser": "  alice  ",
		"guess":   "cat",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var remembered *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == nameCookie {
			remembered = cookie
		}
	}
	require.NotNil(t, remembered)
	assert.True(t, remembered.HttpOnly)

	resp = doRequest(t, ts, http.MethodGet, "/guess/kitchen", nil, remembered)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, `id="guesser" name="guesser" type="text" autocomplete="off" maxlength="20" value="alice"`)
	assert.Contains(t, body, `id="rater" name="rater" type="text" autocomplete="off" maxlength="20" value="alice"`)
}

func TestGuessViewHasRaterField(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/guess/kitchen", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, `<label for="rater">Your name</label>`)
	assert.Contains(t, body, `rater: raterField.value`)
}

func TestRoomIDWithSlashIsRejected(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms", map[string]any{
		"room_id": "a/b",
		"answer":  "Cat",
		"width":   2,
		"height":  2,
		"pixels":  testPixels(),
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "room id must not contain '/'", decodeBody(t, resp)["error"])

	for _, id := range []string{"..", "50%25"} {
		saved := saveDrawing(t, ts, strings.ReplaceAll(id, "%25", "%"), "Cat")
		roomID, _ := saved["room_id"].(string)
		resp := doRequest(t, ts, http.MethodGet, "/api/rooms/"+id+"/drawing", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, id)
		body := decodeBody(t, resp)
		assert.Equal(t, true, body["available"], id)
		assert.Equal(t, roomID, body["room_id"], id)
	}
}

func TestUnreadableDrawingIsUnavailable(t *testing.T) {
	ts, conn := newTestServer(t)
	require.NoError(t, conn.Exec(
		"INSERT INTO rooms (id, correct_answer, drawing_base64) VALUES (?, ?, ?)",
		"broken", "Cat", "bm90IGEgcG5n",
	).Error)

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/broken/drawing", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["available"])
	assert.Equal(t, msgBadDrawing, body["message"])
	assert.NotContains(t, body, "image_data")

	resp = doRequest(t, ts, http.MethodGet, "/api/rooms/broken/drawing.png", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestBindErrorsListEveryField(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/kitchen/guesses", map[string]string{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "name is required; guess is required", decodeBody(t, resp)["error"])

	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/kitchen/ratings", map[string]any{
		"rater":       "alice",
		"cuteness":    0,
		"creativity":  11,
		"resemblance": 11,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "cuteness score is required; scores range from 1 to 10", decodeBody(t, resp)["error"])

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/rooms/kitchen/guesses", strings.NewReader("{not json"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	raw, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Body.Close() })
	require.Equal(t, http.StatusBadRequest, raw.StatusCode)
	assert.Equal(t, "invalid guess", decodeBody(t, raw)["error"])
}

func TestRatings(t *testing.T) {
	ts, _ := newTestServer(t)
	saveDrawing(t, ts, "kitchen", "Cat")

	for _, score := range []int{4, 8} {
		resp := doRequest(t, ts, http.MethodPost, "/api/rooms/kitchen/ratings", map[string]any{
			"rater":       "alice",
			"cuteness":    score,
			"creativity":  score,
			"resemblance": 10,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, msgRatingThanks, decodeBody(t, resp)["message"])
	}

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/kitchen/ratings", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decodeBody(t, resp)
	assert.Equal(t, float64(2), summary["count"])
	assert.InDelta(t, 6.0, summary["cuteness"], 1e-9)
	assert.InDelta(t, 6.0, summary["creativity"], 1e-9)
	assert.InDelta(t, 10.0, summary["resemblance"], 1e-9)
}

func TestRatingOutOfRange(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/kitchen/ratings", map[string]any{
		"rater":       "alice",
		"cuteness":    11,
		"creativity":  5,
		"resemblance": 5,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "scores range from 1 to 10", decodeBody(t, resp)["error"])
}

func TestLegacyCheck(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, ts, http.MethodPost, "/api/legacy/check", map[string]string{"answer": "Cat", "guess": " cat "})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["correct"])
	assert.Equal(t, msgCorrect, body["message"])

	resp = doRequest(t, ts, http.MethodPost, "/api/legacy/check", map[string]string{"answer": "Cat", "guess": "cats"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decodeBody(t, resp)["correct"])

	resp = doRequest(t, ts, http.MethodPost, "/api/legacy/ratings", map[string]int{"cuteness": 3, "creativity": 4, "resemblance": 5})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, msgRatingThanks, decodeBody(t, resp)["message"])
}

func TestRequestIDHeader(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/suggest", nil)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
