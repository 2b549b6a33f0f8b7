package geom

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// ReadAreaFile reads a generic area file: one vertex per line, two decimal
// degree values separated by a comma or whitespace. latFirst selects the
// ".are" order (lat, lon); ".afs" files are lon, lat. A hemisphere letter
// may prefix or suffix a value; S and W negate it. Blank lines and lines
// starting with '#' are ignored.
func ReadAreaFile(path string, latFirst bool) (orb.Ring, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ring orb.Ring
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
		if len(fields) < 2 {
			return nil, fmt.Errorf("%s:%d: want two values, got %q", path, line, s)
		}
		a, err := parseDegrees(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		b, err := parseDegrees(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		if latFirst {
			a, b = b, a
		}
		ring = append(ring, orb.Point{a, b})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(ring) < 2 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoArea)
	}
	return ring, nil
}

// parseDegrees parses a decimal degree value with an optional N/S/E/W
// hemisphere letter before or after it.
func parseDegrees(s string) (float64, error) {
	sign := 1.0
	up := strings.ToUpper(s)
	if up == "" {
		return 0, fmt.Errorf("empty coordinate")
	}
	for _, h := range []byte{up[0], up[len(up)-1]} {
		switch h {
		case 'S', 'W':
			sign = -1
		case 'N', 'E':
		default:
			continue
		}
		up = strings.Trim(up, "NSEW")
		break
	}
	v, err := strconv.ParseFloat(up, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid coordinate %q", s)
	}
	return sign * v, nil
}
