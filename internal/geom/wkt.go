package geom

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// ReadWKT reads a file holding one or more WKT geometries. A geometry may
// span several lines; geometries are split where parentheses balance.
func ReadWKT(path string) (orb.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := ParseWKT(string(data))
	if err != nil {
		return nil, fmt.Errorf("wkt %s: %w", path, err)
	}
	return c, nil
}

// ParseWKT parses a sequence of WKT geometries.
func ParseWKT(s string) (orb.Collection, error) {
	var out orb.Collection
	var cur strings.Builder
	depth := 0
	flush := func() error {
		text := strings.TrimSpace(cur.String())
		cur.Reset()
		if text == "" {
			return nil
		}
		g, err := wkt.Unmarshal(text)
		if err != nil {
			return err
		}
		out = append(out, g)
		return nil
	}
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cur.WriteString(line)
		cur.WriteByte(' ')
		depth += strings.Count(line, "(") - strings.Count(line, ")")
		if depth <= 0 {
			if err := flush(); err != nil {
				return nil, err
			}
			depth = 0
		}
	}
	if depth != 0 {
		return nil, errors.New("unbalanced parentheses")
	}
	if len(out) == 0 {
		return nil, errors.New("empty wkt")
	}
	return out, nil
}

// ParsePoint accepts "lon lat", "lon,lat" or a WKT POINT.
func ParsePoint(s string) (orb.Point, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return orb.Point{}, errors.New("empty point")
	}
	if strings.HasPrefix(strings.ToUpper(s), "POINT") {
		return wkt.UnmarshalPoint(s)
	}
	parts := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(parts) != 2 {
		return orb.Point{}, fmt.Errorf("point %q: want two coordinates", s)
	}
	lon, err1 := strconv.ParseFloat(parts[0], 64)
	lat, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil {
		return orb.Point{}, fmt.Errorf("point %q: invalid number", s)
	}
	return orb.Point{lon, lat}, nil
}
