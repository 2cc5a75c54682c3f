// Package state persists the viewer's live settings and camera pose between
// runs in a small newline-separated text file.
package state

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ProgramState is everything that survives a restart. Fields are listed in
// file order.
type ProgramState struct {
	OverlayEnabled bool
	BloomEnabled   bool
	Exposure       float32
	HDREnabled     bool
	Gamma          float32
	KernelEffect   int
	CameraPosition mgl32.Vec3
	CameraFront    mgl32.Vec3
}

// fieldCount is the number of scalars in a state file.
const fieldCount = 12

// ErrMalformed reports a state file that could not be parsed.
var ErrMalformed = errors.New("malformed state file")

// Load reads the state file at path. A missing or malformed file yields
// defaults and no error: the file is advisory.
func Load(path string, defaults ProgramState) ProgramState {
	f, err := os.Open(path)
	if err != nil {
		return defaults
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return defaults
	}
	return s
}

// Exists reports whether a state file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// Decode parses the twelve whitespace-separated scalars of a state file.
func Decode(r io.Reader) (ProgramState, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var fields []string
	for sc.Scan() {
		fields = append(fields, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return ProgramState{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(fields) < fieldCount {
		return ProgramState{}, fmt.Errorf("%w: %d of %d fields", ErrMalformed, len(fields), fieldCount)
	}

	p := parser{fields: fields}
	s := ProgramState{
		OverlayEnabled: p.readBool(),
		BloomEnabled:   p.readBool(),
		Exposure:       p.readFloat(),
		HDREnabled:     p.readBool(),
		Gamma:          p.readFloat(),
		KernelEffect:   p.readInt(),
	}
	for i := 0; i < 3; i++ {
		s.CameraPosition[i] = p.readFloat()
	}
	for i := 0; i < 3; i++ {
		s.CameraFront[i] = p.readFloat()
	}
	if p.err != nil {
		return ProgramState{}, fmt.Errorf("%w: %v", ErrMalformed, p.err)
	}
	return s, nil
}

// Save writes s to path, replacing any previous file.
func Save(path string, s ProgramState) error {
	if err := os.WriteFile(path, Encode(s), 0o644); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Encode renders s in file order, one scalar per line.
func Encode(s ProgramState) []byte {
	var b bytes.Buffer
	line := func(v string) {
		b.WriteString(v)
		b.WriteByte('\n')
	}
	line(formatBool(s.OverlayEnabled))
	line(formatBool(s.BloomEnabled))
	line(formatFloat(s.Exposure))
	line(formatBool(s.HDREnabled))
	line(formatFloat(s.Gamma))
	line(strconv.Itoa(s.KernelEffect))
	for _, v := range s.CameraPosition {
		line(formatFloat(v))
	}
	for _, v := range s.CameraFront {
		line(formatFloat(v))
	}
	return b.Bytes()
}

func formatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// parser consumes fields in order and remembers the first error.
type parser struct {
	fields []string
	pos    int
	err    error
}

func (p *parser) next() string {
	v := p.fields[p.pos]
	p.pos++
	return v
}

func (p *parser) readBool() bool {
	v := strings.ToLower(p.next())
	switch v {
	case "1", "true":
		return true
	case "0", "false":
		return false
	}
	p.fail(fmt.Errorf("field %d: bad bool %q", p.pos, v))
	return false
}

func (p *parser) readFloat() float32 {
	tok := p.next()
	v, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		p.fail(fmt.Errorf("field %d: %w", p.pos, err))
		return 0
	}
	f := float32(v)
	if math32.IsNaN(f) || math32.IsInf(f, 0) {
		p.fail(fmt.Errorf("field %d: non-finite value %q", p.pos, tok))
		return 0
	}
	return f
}

func (p *parser) readInt() int {
	tok := p.next()
	v, err := strconv.Atoi(tok)
	if err != nil {
		p.fail(fmt.Errorf("field %d: %w", p.pos, err))
	}
	return v
}

func (p *parser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}
