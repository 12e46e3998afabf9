// Package bvh reads Biovision Hierarchy motion-capture files.
package bvh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"avatar-rig/internal/mathutil"
)

var ErrSyntax = errors.New("bvh syntax error")

type token struct {
	text string
	line int
}

type reader struct {
	toks []token
	off  int
}

func tokenize(r io.Reader) ([]token, error) {
	var toks []token
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		for _, f := range strings.Fields(sc.Text()) {
			toks = append(toks, token{text: f, line: line})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return toks, nil
}

func (r *reader) eof() bool {
	return r.off >= len(r.toks)
}

func (r *reader) line() int {
	if r.eof() {
		if len(r.toks) == 0 {
			return 0
		}
		return r.toks[len(r.toks)-1].line
	}
	return r.toks[r.off].line
}

func (r *reader) errorf(format string, args ...any) error {
	return fmt.Errorf("bvh: line %d: %s: %w", r.line(), fmt.Sprintf(format, args...), ErrSyntax)
}

func (r *reader) next() (string, error) {
	if r.eof() {
		return "", r.errorf("unexpected end of file")
	}
	t := r.toks[r.off].text
	r.off++
	return t, nil
}

func (r *reader) expect(want string) error {
	got, err := r.next()
	if err != nil {
		return err
	}
	if !strings.EqualFold(got, want) {
		r.off--
		return r.errorf("expected %q, got %q", want, got)
	}
	return nil
}

func (r *reader) float() (float64, error) {
	s, err := r.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.off--
		return 0, r.errorf("bad number %q", s)
	}
	return v, nil
}

func (r *reader) int() (int, error) {
	s, err := r.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		r.off--
		return 0, r.errorf("bad count %q", s)
	}
	return v, nil
}

// Load reads a BVH file from disk.
func Load(path string) (*Motion, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bvh: read %s: %w", path, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("bvh: parse %s: %w", filepath.Base(path), err)
	}
	return m, nil
}

// Parse reads HIERARCHY and MOTION sections.
func Parse(src io.Reader) (*Motion, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, fmt.Errorf("bvh: read: %w", err)
	}
	r := &reader{toks: toks}
	m := &Motion{}

	if err := r.expect("HIERARCHY"); err != nil {
		return nil, err
	}
	if err := r.expect("ROOT"); err != nil {
		return nil, err
	}
	if err := r.joint(m, -1); err != nil {
		return nil, err
	}
	if err := r.motion(m); err != nil {
		return nil, err
	}
	return m, nil
}

// joint parses "<name> { OFFSET .. CHANNELS .. (JOINT|End Site)* }" after the
// ROOT/JOINT keyword.
func (r *reader) joint(m *Motion, parent int) error {
	name, err := r.next()
	if err != nil {
		return err
	}
	if err := r.expect("{"); err != nil {
		return err
	}
	if err := r.expect("OFFSET"); err != nil {
		return err
	}
	offset, err := r.vec3()
	if err != nil {
		return err
	}

	j := Joint{Name: name, Parent: parent, Offset: offset}
	if err := r.expect("CHANNELS"); err != nil {
		return err
	}
	n, err := r.int()
	if err != nil {
		return err
	}
	for k := 0; k < n; k++ {
		ch, err := r.next()
		if err != nil {
			return err
		}
		if _, _, ok := channelAxis(ch); !ok {
			r.off--
			return r.errorf("unknown channel %q", ch)
		}
		j.Channels = append(j.Channels, ch)
	}
	self := len(m.Joints)
	m.Joints = append(m.Joints, j)

	for {
		kw, err := r.next()
		if err != nil {
			return err
		}
		switch strings.ToUpper(kw) {
		case "JOINT":
			if err := r.joint(m, self); err != nil {
				return err
			}
		case "END":
			if err := r.endSite(); err != nil {
				return err
			}
		case "}":
			return nil
		default:
			r.off--
			return r.errorf("unexpected %q in joint %s", kw, name)
		}
	}
}

func (r *reader) endSite() error {
	if err := r.expect("Site"); err != nil {
		return err
	}
	if err := r.expect("{"); err != nil {
		return err
	}
	if err := r.expect("OFFSET"); err != nil {
		return err
	}
	if _, err := r.vec3(); err != nil {
		return err
	}
	return r.expect("}")
}

func (r *reader) vec3() (mgl64.Vec3, error) {
	var v mgl64.Vec3
	for i := range v {
		f, err := r.float()
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

func (r *reader) motion(m *Motion) error {
	if err := r.expect("MOTION"); err != nil {
		return err
	}
	if err := r.expect("Frames:"); err != nil {
		return err
	}
	countAt := r.off
	frames, err := r.int()
	if err != nil {
		return err
	}
	if err := r.expect("Frame"); err != nil {
		return err
	}
	if err := r.expect("Time:"); err != nil {
		return err
	}
	if m.FrameTime, err = r.float(); err != nil {
		return err
	}
	if m.FrameTime <= 0 || !mathutil.IsFinite(m.FrameTime) {
		r.off--
		return r.errorf("frame time must be positive, got %g", m.FrameTime)
	}

	width := 0
	for _, j := range m.Joints {
		width += len(j.Channels)
	}
	// The header count is checked against the data before anything is allocated.
	if limit := r.frameLimit(width); frames > limit {
		r.off = countAt
		return r.errorf("frame count %d exceeds data (at most %d frames)", frames, limit)
	}
	m.Frames = make([][]float64, frames)
	for f := 0; f < frames; f++ {
		row := make([]float64, width)
		for c := range row {
			if row[c], err = r.float(); err != nil {
				return fmt.Errorf("frame %d: %w", f, err)
			}
		}
		m.Frames[f] = row
	}
	return nil
}

// maxEmptyFrames bounds the frame count of a hierarchy without channels,
// where the data section cannot.
const maxEmptyFrames = 1 << 20

// frameLimit is the largest frame count the remaining tokens can hold.
func (r *reader) frameLimit(width int) int {
	if width == 0 {
		return maxEmptyFrames
	}
	return (len(r.toks) - r.off) / width
}

// channelAxis classifies "Xrotation"-style channel names.
func channelAxis(ch string) (axis int, rotation bool, ok bool) {
	if len(ch) < 2 {
		return 0, false, false
	}
	switch ch[0] {
	case 'X', 'x':
		axis = 0
	case 'Y', 'y':
		axis = 1
	case 'Z', 'z':
		axis = 2
	default:
		return 0, false, false
	}
	switch strings.ToLower(ch[1:]) {
	case "rotation":
		return axis, true, true
	case "position":
		return axis, false, true
	}
	return 0, false, false
}
