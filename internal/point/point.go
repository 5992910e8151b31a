// Package point defines the point-annotation types stored in assets.json.
package point

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"math"
	"strings"
)

// Point is a 2D pixel coordinate with an ordinal annotation index.
type Point struct {
	X uint32 `json:"x"`
	Y uint32 `json:"y"`
	N int    `json:"n"` // Ordinal index of the point within its image
}

// New returns a Point at (x, y) with index n.
func New(x, y uint32, n int) Point {
	return Point{X: x, Y: y, N: n}
}

// Image returns the coordinate as an image.Point, dropping the index.
func (p Point) Image() image.Point {
	return image.Pt(int(p.X), int(p.Y))
}

// FromImage converts an image.Point to a Point with index n.
// Returns an error if either coordinate is outside the uint32 range.
func FromImage(ip image.Point, n int) (Point, error) {
	if ip.X < 0 || ip.Y < 0 || uint64(ip.X) > math.MaxUint32 || uint64(ip.Y) > math.MaxUint32 {
		return Point{}, fmt.Errorf("coordinate out of range: %v", ip)
	}
	if n < 0 {
		return Point{}, fmt.Errorf("negative index: %d", n)
	}
	return New(uint32(ip.X), uint32(ip.Y), n), nil
}

// String formats the point as "(x,y)#n".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)#%d", p.X, p.Y, p.N)
}

// wirePoint mirrors Point with optional fields so missing keys can be detected.
type wirePoint struct {
	X *uint32 `json:"x"`
	Y *uint32 `json:"y"`
	N *int    `json:"n"`
}

// UnmarshalJSON requires all of x, y and n to be present.
func (p *Point) UnmarshalJSON(data []byte) error {
	var w wirePoint
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch {
	case w.X == nil:
		return errors.New("point is missing \"x\"")
	case w.Y == nil:
		return errors.New("point is missing \"y\"")
	case w.N == nil:
		return errors.New("point is missing \"n\"")
	case *w.N < 0:
		return fmt.Errorf("point has negative \"n\": %d", *w.N)
	}
	*p = New(*w.X, *w.Y, *w.N)
	return nil
}

// ImageRecord associates an image path with its annotated points.
type ImageRecord struct {
	Path   string  `json:"path"`
	Points []Point `json:"points"`
}

// MarshalJSON writes a nil point slice as an empty array.
func (r ImageRecord) MarshalJSON() ([]byte, error) {
	type plain ImageRecord
	if r.Points == nil {
		r.Points = []Point{}
	}
	return json.Marshal(plain(r))
}

type wireRecord struct {
	Path   *string  `json:"path"`
	Points *[]Point `json:"points"`
}

// UnmarshalJSON requires both "path" and "points" to be present.
func (r *ImageRecord) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Path == nil {
		return errors.New("image record is missing \"path\"")
	}
	if w.Points == nil {
		return fmt.Errorf("image record %q is missing \"points\"", *w.Path)
	}
	r.Path = *w.Path
	r.Points = *w.Points
	return nil
}

// NormalizePath converts Windows-style separators to forward slashes.
// Paths in assets.json are always POSIX-style.
func NormalizePath(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}
