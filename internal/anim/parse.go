package anim

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Element and attribute names of the animation markup.
const (
	rootElement  = "animation"
	stateElement = "state"

	attrTime     = "time"
	attrX        = "x"
	attrY        = "y"
	attrScaleX   = "scale-x"
	attrScaleY   = "scale-y"
	attrAlpha    = "alpha"
	attrRotation = "rotation"
)

// parseDocument decodes an <animation> document into keyframes.
// Nothing is returned unless every element validates.
func parseDocument(data []byte) ([]Keyframe, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		frames   []Keyframe
		depth    int
		seenRoot bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("anim: %w: %v", ErrParse, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch depth {
			case 1:
				if seenRoot {
					return nil, fmt.Errorf("anim: %w: more than one root element", ErrParse)
				}
				seenRoot = true
				if !isPlainName(t.Name, rootElement) {
					return nil, fmt.Errorf("anim: %w: root element is %q, want %q", ErrParse, qualifiedName(t.Name), rootElement)
				}
			case 2:
				if !isPlainName(t.Name, stateElement) {
					return nil, fmt.Errorf("anim: %w: element %d is %q, want %q", ErrParse, len(frames)+1, qualifiedName(t.Name), stateElement)
				}
				frames = append(frames, parseState(t.Attr))
			}
			// Anything nested inside a <state> is ignored.
		case xml.EndElement:
			depth--
		}
	}

	if !seenRoot {
		return nil, fmt.Errorf("anim: %w: document has no root element", ErrParse)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("anim: %w: no %q elements", ErrParse, stateElement)
	}

	return frames, nil
}

// parseState builds one keyframe from the attributes of a <state> element.
func parseState(attrs []xml.Attr) Keyframe {
	kf := DefaultKeyframe()
	for _, a := range attrs {
		if a.Name.Space != "" {
			continue
		}
		switch a.Name.Local {
		case attrTime:
			kf.Time = parseInt(a.Value)
		case attrX:
			kf.Position.X = parseFloat(a.Value)
		case attrY:
			kf.Position.Y = parseFloat(a.Value)
		case attrScaleX:
			kf.Scale.X = parseFloat(a.Value)
		case attrScaleY:
			kf.Scale.Y = parseFloat(a.Value)
		case attrAlpha:
			kf.Alpha = parseFloat(a.Value)
		case attrRotation:
			kf.Rotation = parseFloat(a.Value)
		}
	}
	return kf
}

func isPlainName(n xml.Name, want string) bool {
	return n.Space == "" && n.Local == want
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// parseInt reads the leading decimal integer of s the way C atoi does:
// leading whitespace and one sign are accepted, parsing stops at the first
// non-digit and text without digits yields 0. Out-of-range values saturate.
func parseInt(s string) int64 {
	i := skipSpace(s, 0)
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	var n int64
	for ; i < len(s) && isDigit(s[i]); i++ {
		d := int64(s[i] - '0')
		if n > (math.MaxInt64-d)/10 {
			if neg {
				return math.MinInt64
			}
			return math.MaxInt64
		}
		n = n*10 + d
	}

	if neg {
		return -n
	}
	return n
}

// parseFloat reads the longest leading decimal floating point number of s,
// like C atof. Text that does not start with a number yields 0.
func parseFloat(s string) float64 {
	start := skipSpace(s, 0)
	i := start
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for ; i < len(s) && isDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return 0
	}

	// The exponent only counts when at least one digit follows it.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}

	// ParseFloat reports range errors but still returns ±Inf or 0, which
	// matches atof.
	f, _ := strconv.ParseFloat(s[start:i], 64)
	return f
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\n', '\v', '\f', '\r':
			i++
		default:
			return i
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
