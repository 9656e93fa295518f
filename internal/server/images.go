package server

const pngDataURLPrefix = "data:image/png;base64,"

// drawingDataURL turns a stored drawing into something an <img> can show.
func drawingDataURL(encoded string) string {
	if encoded == "" {
		return ""
	}
	return pngDataURLPrefix + encoded
}
