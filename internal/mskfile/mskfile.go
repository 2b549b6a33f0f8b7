// Package mskfile reads and writes land mask files: a zero-padded ASCII
// header of HeaderSize bytes followed by one byte per cell, southern row
// first, west to east within a row.
package mskfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"shapemask/internal/logx"
)

// HeaderSize is the fixed on-disk header length.
const HeaderSize = 16384

// maxCells matches the largest raster the generator will allocate.
const maxCells = 1 << 32

// ErrHeader is returned for a missing, oversized or malformed header.
var ErrHeader = errors.New("invalid mask header")

const (
	keyHeaderSize = "HEADER SIZE"
	keyVersion    = "VERSION"
	keyDate       = "CREATION DATE"
	keyStartLat   = "START LAT"
	keyStartLon   = "START LON"
	keyLatRes     = "LAT RESOLUTION"
	keyLonRes     = "LON RESOLUTION"
	keyHeight     = "HEIGHT"
	keyWidth      = "WIDTH"
	keyBinSize    = "NOMINAL BIN SIZE IN METERS"
	keyNSDiff     = "NORTH SOUTH LON BIN SIZE DIFFERENCE IN METERS"
	keyEnd        = "END OF HEADER"
)

// Header is the metadata block of a mask file.
type Header struct {
	Version       string
	Created       time.Time
	StartLat      float64
	StartLon      float64
	LatResolution float64
	LonResolution float64
	Height        int
	Width         int
	BinSize       int
	NSDifference  float64
}

// Fields returns the header as ordered key/value pairs, formatted the way
// they are written.
func (h Header) Fields() [][2]string {
	return [][2]string{
		{keyHeaderSize, strconv.Itoa(HeaderSize)},
		{keyVersion, h.Version},
		{keyDate, h.Created.UTC().Format(time.ANSIC)},
		{keyStartLat, fmt.Sprintf("%.11f", h.StartLat)},
		{keyStartLon, fmt.Sprintf("%.11f", h.StartLon)},
		{keyLatRes, fmt.Sprintf("%.11f", h.LatResolution)},
		{keyLonRes, fmt.Sprintf("%.11f", h.LonResolution)},
		{keyHeight, strconv.Itoa(h.Height)},
		{keyWidth, strconv.Itoa(h.Width)},
		{keyBinSize, strconv.Itoa(h.BinSize)},
		{keyNSDiff, fmt.Sprintf("%.08f", h.NSDifference)},
	}
}

// MarshalText renders the header text without padding.
func (h Header) MarshalText() ([]byte, error) {
	var b bytes.Buffer
	for _, kv := range h.Fields() {
		fmt.Fprintf(&b, "[%s] = %s\n", kv[0], kv[1])
	}
	fmt.Fprintf(&b, "[%s]\n", keyEnd)
	if b.Len() > HeaderSize {
		return nil, fmt.Errorf("%d bytes: %w", b.Len(), ErrHeader)
	}
	return b.Bytes(), nil
}

// Encode writes the padded header and then cells.
func Encode(w io.Writer, h Header, cells []byte) error {
	if len(cells) != h.Width*h.Height {
		return fmt.Errorf("%d cells for %dx%d raster", len(cells), h.Width, h.Height)
	}
	text, err := h.MarshalText()
	if err != nil {
		return err
	}
	block := make([]byte, HeaderSize)
	copy(block, text)
	if _, err := w.Write(block); err != nil {
		return err
	}
	_, err = w.Write(cells)
	return err
}

// Write creates path and encodes the mask into it. A partially written file
// is left in place on error.
func Write(path string, h Header, cells []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(f, 1<<20)
	if err := Encode(bw, h, cells); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logx.Logger().Info("mask written", "path", path, "width", h.Width, "height", h.Height)
	return nil
}

// Mask is a decoded mask file.
type Mask struct {
	Header
	Cells []byte
}

// Decode reads a mask from r.
func Decode(r io.Reader) (*Mask, error) {
	block := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, block); err != nil {
		return nil, fmt.Errorf("read header: %w: %v", ErrHeader, err)
	}
	h, err := parseHeader(block)
	if err != nil {
		return nil, err
	}
	n := int64(h.Width) * int64(h.Height)
	if h.Width <= 0 || h.Height <= 0 || n > maxCells {
		return nil, fmt.Errorf("%dx%d raster: %w", h.Width, h.Height, ErrHeader)
	}
	cells := make([]byte, int(n))
	if _, err := io.ReadFull(r, cells); err != nil {
		return nil, fmt.Errorf("read %d cells: %w", n, err)
	}
	return &Mask{Header: h, Cells: cells}, nil
}

// Read opens and decodes the mask at path.
func Read(path string) (*Mask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Decode(bufio.NewReaderSize(f, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func parseHeader(block []byte) (Header, error) {
	if i := bytes.IndexByte(block, 0); i >= 0 {
		block = block[:i]
	}
	var h Header
	seen := map[string]bool{}
	ended := false
	for _, line := range strings.Split(string(block), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "["+keyEnd+"]" {
			ended = true
			break
		}
		key, val, ok := splitLine(line)
		if !ok {
			return h, fmt.Errorf("line %q: %w", line, ErrHeader)
		}
		if err := h.set(key, val); err != nil {
			return h, fmt.Errorf("%s: %w: %v", key, ErrHeader, err)
		}
		seen[key] = true
	}
	if !ended {
		return h, fmt.Errorf("no [%s]: %w", keyEnd, ErrHeader)
	}
	for _, k := range []string{keyHeaderSize, keyStartLat, keyStartLon, keyLatRes, keyLonRes, keyHeight, keyWidth} {
		if !seen[k] {
			return h, fmt.Errorf("missing [%s]: %w", k, ErrHeader)
		}
	}
	if !(h.LatResolution > 0) || !(h.LonResolution > 0) {
		return h, fmt.Errorf("resolution %g, %g: %w", h.LatResolution, h.LonResolution, ErrHeader)
	}
	return h, nil
}

func splitLine(line string) (key, val string, ok bool) {
	if !strings.HasPrefix(line, "[") {
		return "", "", false
	}
	end := strings.Index(line, "]")
	if end < 0 {
		return "", "", false
	}
	key = line[1:end]
	rest := strings.TrimSpace(line[end+1:])
	if !strings.HasPrefix(rest, "=") {
		return "", "", false
	}
	return key, strings.TrimSpace(rest[1:]), true
}

func (h *Header) set(key, val string) error {
	var err error
	switch key {
	case keyHeaderSize:
		var n int
		if n, err = strconv.Atoi(val); err == nil && n != HeaderSize {
			err = fmt.Errorf("size %d, want %d", n, HeaderSize)
		}
	case keyVersion:
		h.Version = val
	case keyDate:
		h.Created, err = time.Parse(time.ANSIC, val)
	case keyStartLat:
		h.StartLat, err = strconv.ParseFloat(val, 64)
	case keyStartLon:
		h.StartLon, err = strconv.ParseFloat(val, 64)
	case keyLatRes:
		h.LatResolution, err = strconv.ParseFloat(val, 64)
	case keyLonRes:
		h.LonResolution, err = strconv.ParseFloat(val, 64)
	case keyHeight:
		h.Height, err = strconv.Atoi(val)
	case keyWidth:
		h.Width, err = strconv.Atoi(val)
	case keyBinSize:
		h.BinSize, err = strconv.Atoi(val)
	case keyNSDiff:
		h.NSDifference, err = strconv.ParseFloat(val, 64)
	}
	// unknown keys are ignored
	return err
}

// Index returns the cell index for (lon, lat), or false when the point lies
// outside the mask.
func (m *Mask) Index(lon, lat float64) (col, row int, ok bool) {
	fc := math.Floor((lon - m.StartLon) / m.LonResolution)
	fr := math.Floor((lat - m.StartLat) / m.LatResolution)
	if math.IsNaN(fc) || math.IsNaN(fr) || fc < 0 || fr < 0 || fc >= float64(m.Width) || fr >= float64(m.Height) {
		return 0, 0, false
	}
	return int(fc), int(fr), true
}

// At returns the cell at (col, row). It panics when out of range.
func (m *Mask) At(col, row int) bool { return m.Cells[row*m.Width+col] != 0 }

// Lookup reports whether (lon, lat) is land. ok is false outside the mask.
func (m *Mask) Lookup(lon, lat float64) (land, ok bool) {
	col, row, ok := m.Index(lon, lat)
	if !ok {
		return false, false
	}
	return m.At(col, row), true
}

// Bounds returns the mask extent as west, south, east, north.
func (m *Mask) Bounds() (west, south, east, north float64) {
	return m.StartLon, m.StartLat,
		m.StartLon + float64(m.Width)*m.LonResolution,
		m.StartLat + float64(m.Height)*m.LatResolution
}

// LandFraction returns the share of cells marked land.
func (m *Mask) LandFraction() float64 {
	if len(m.Cells) == 0 {
		return 0
	}
	n := 0
	for _, c := range m.Cells {
		if c != 0 {
			n++
		}
	}
	return float64(n) / float64(len(m.Cells))
}
