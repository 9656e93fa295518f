// Package imagecodec converts raw RGBA pixel buffers to a text-safe PNG
// encoding and back.
package imagecodec

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
)

// ChannelKind tags which slice of a Buffer carries the pixel data.
type ChannelKind int

const (
	IntegerChannels ChannelKind = iota
	FloatChannels
)

// RGBA is the only supported channel layout.
const RGBA = 4

// floatTolerance keeps k/255 from truncating to k-1.
const floatTolerance = 1e-6

// Buffer is a row-major pixel buffer. Exactly one of Ints or Floats is read,
// selected by Kind.
type Buffer struct {
	Width    int
	Height   int
	Channels int
	Kind     ChannelKind
	Ints     []uint8
	Floats   []float64
}

// NewIntBuffer wraps 8-bit RGBA data.
func NewIntBuffer(width, height int, pix []uint8) *Buffer {
	return &Buffer{Width: width, Height: height, Channels: RGBA, Kind: IntegerChannels, Ints: pix}
}

// NewFloatBuffer wraps normalized RGBA data in [0,1].
func NewFloatBuffer(width, height int, pix []float64) *Buffer {
	return &Buffer{Width: width, Height: height, Channels: RGBA, Kind: FloatChannels, Floats: pix}
}

// EncodeError reports a buffer that cannot be encoded.
type EncodeError struct {
	Reason string
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("encode drawing: %s: %v", e.Reason, e.Err)
	}
	return "encode drawing: " + e.Reason
}

func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError reports stored text that is not a valid encoded drawing.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode drawing: %s: %v", e.Reason, e.Err)
	}
	return "decode drawing: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Encode normalizes the buffer to 8-bit RGBA, compresses it as PNG and maps
// the bytes to standard base64 without line breaks.
func Encode(buf *Buffer) (string, error) {
	img, err := buf.Image()
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return "", &EncodeError{Reason: "png encoding failed", Err: err}
	}
	return base64.StdEncoding.EncodeToString(out.Bytes()), nil
}

// Decode reverses Encode. The returned buffer always carries IntegerChannels.
func Decode(encoded string) (*Buffer, error) {
	img, err := DecodeImage(encoded)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

// DecodeImage reverses Encode up to the image step.
func DecodeImage(encoded string) (image.Image, error) {
	raw, err := decodeText(encoded)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, &DecodeError{Reason: "corrupt or unsupported image", Err: err}
	}
	return img, nil
}

// Dimensions reads the width and height from the PNG header without
// decoding any pixels.
func Dimensions(encoded string) (width, height int, err error) {
	raw, err := decodeText(encoded)
	if err != nil {
		return 0, 0, err
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return 0, 0, &DecodeError{Reason: "corrupt or unsupported image", Err: err}
	}
	return cfg.Width, cfg.Height, nil
}

func decodeText(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, &DecodeError{Reason: "no image data"}
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &DecodeError{Reason: "malformed base64", Err: err}
	}
	return raw, nil
}

// FromImage copies any image into an 8-bit RGBA buffer.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pix := make([]uint8, 0, width*height*RGBA)
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < height; y++ {
			start := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			pix = append(pix, nrgba.Pix[start:start+width*RGBA]...)
		}
		return NewIntBuffer(width, height, pix)
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pix = append(pix, c.R, c.G, c.B, c.A)
		}
	}
	return NewIntBuffer(width, height, pix)
}

// Image validates the buffer and returns its canonical 8-bit form.
func (b *Buffer) Image() (*image.NRGBA, error) {
	if b == nil {
		return nil, &EncodeError{Reason: "pixel buffer is missing"}
	}
	if b.Width <= 0 || b.Height <= 0 {
		return nil, &EncodeError{Reason: fmt.Sprintf("invalid dimensions %dx%d", b.Width, b.Height)}
	}
	if b.Channels != RGBA {
		return nil, &EncodeError{Reason: fmt.Sprintf("expected %d channels, got %d", RGBA, b.Channels)}
	}
	want := b.Width * b.Height * RGBA
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	switch b.Kind {
	case IntegerChannels:
		if len(b.Ints) != want {
			return nil, &EncodeError{Reason: fmt.Sprintf("expected %d channel values, got %d", want, len(b.Ints))}
		}
		copy(img.Pix, b.Ints)
	case FloatChannels:
		if len(b.Floats) != want {
			return nil, &EncodeError{Reason: fmt.Sprintf("expected %d channel values, got %d", want, len(b.Floats))}
		}
		for i, v := range b.Floats {
			img.Pix[i] = floatToByte(v)
		}
	default:
		return nil, &EncodeError{Reason: "unknown channel kind"}
	}
	return img, nil
}

func floatToByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + floatTolerance)
}

// Preview returns at most n characters of an encoded drawing.
func Preview(encoded string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(encoded) <= n {
		return encoded
	}
	return encoded[:n]
}
