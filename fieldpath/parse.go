package fieldpath

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

type segSpec struct {
	name   string
	index  int
	named  bool
	quoted bool
}

type parser struct {
	src string
	pos int
}

func parseSegments(src string) (*Segment, error) {
	p := &parser{src: src}
	if src == "" {
		return nil, p.errAt(0, "empty field path")
	}
	var first segSpec
	var err error
	if src[0] == '[' {
		// paths built below an array element start with an index
		first, err = p.index()
	} else {
		first, err = p.name()
	}
	if err != nil {
		return nil, err
	}
	specs := []segSpec{first}
	for p.pos < len(src) {
		switch src[p.pos] {
		case '.':
			p.pos++
			spec, err := p.name()
			if err != nil {
				return nil, err
			}
			specs = append(specs, spec)
		case '[':
			spec, err := p.index()
			if err != nil {
				return nil, err
			}
			specs = append(specs, spec)
		default:
			return nil, p.errAt(p.pos, "expected '.' or '['")
		}
	}
	var seg *Segment
	for i := len(specs) - 1; i >= 0; i-- {
		spec := &specs[i]
		if spec.named {
			seg = NewNameSegment(spec.name, seg, spec.quoted)
		} else {
			seg = NewIndexSegment(spec.index, seg)
		}
	}
	return seg, nil
}

func (p *parser) name() (segSpec, error) {
	if p.pos >= len(p.src) {
		return segSpec{}, p.errAt(p.pos, "expected field name")
	}
	switch q := p.src[p.pos]; q {
	case '`', '"':
		return p.quoted(q)
	}
	start := p.pos
	var sb strings.Builder
loop:
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		switch {
		case r == '.' || r == '[':
			break loop
		case r == ']' || r == '`' || r == '"':
			return segSpec{}, p.errAt(p.pos, "unexpected character in field name")
		case r == '\\':
			if err := p.escape(&sb); err != nil {
				return segSpec{}, err
			}
			continue
		case r < ' ' || r == 0x7f || r == utf8.RuneError && size == 1:
			return segSpec{}, p.errAt(p.pos, "invalid character in field name")
		}
		sb.WriteRune(r)
		p.pos += size
	}
	if p.pos == start {
		return segSpec{}, p.errAt(p.pos, "expected field name")
	}
	return segSpec{name: sb.String(), named: true}, nil
}

func (p *parser) quoted(q byte) (segSpec, error) {
	start := p.pos
	p.pos++
	var sb strings.Builder
	for {
		if p.pos >= len(p.src) {
			return segSpec{}, p.errAt(start, "unterminated quoted field name")
		}
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		switch {
		case r == rune(q):
			p.pos++
			return segSpec{name: sb.String(), named: true, quoted: true}, nil
		case r == '\\':
			if err := p.escape(&sb); err != nil {
				return segSpec{}, err
			}
			continue
		case r < ' ' || r == utf8.RuneError && size == 1:
			return segSpec{}, p.errAt(p.pos, "invalid character in quoted field name")
		}
		sb.WriteRune(r)
		p.pos += size
	}
}

func (p *parser) escape(sb *strings.Builder) error {
	start := p.pos
	p.pos++
	if p.pos >= len(p.src) {
		return p.errAt(start, "incomplete escape sequence")
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case '"', '`', '\\', '/', '.', '[', ']':
		sb.WriteByte(c)
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		r, err := p.hex4(start)
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(r) && strings.HasPrefix(p.src[p.pos:], `\u`) {
			save := p.pos
			p.pos += 2
			r2, err := p.hex4(save)
			if err != nil {
				return err
			}
			if d := utf16.DecodeRune(r, r2); d != utf8.RuneError {
				sb.WriteRune(d)
				return nil
			}
			p.pos = save
		}
		sb.WriteRune(r)
	default:
		return p.errAt(start, "invalid escape sequence")
	}
	return nil
}

func (p *parser) hex4(escStart int) (rune, error) {
	if p.pos+4 > len(p.src) {
		return 0, p.errAt(escStart, "incomplete unicode escape")
	}
	n, err := strconv.ParseUint(p.src[p.pos:p.pos+4], 16, 32)
	if err != nil {
		return 0, p.errAt(escStart, "invalid unicode escape")
	}
	p.pos += 4
	return rune(n), nil
}

func (p *parser) index() (segSpec, error) {
	open := p.pos
	p.pos++
	p.skipBlanks()
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	digits := p.src[start:p.pos]
	p.skipBlanks()
	if p.pos >= len(p.src) {
		return segSpec{}, p.errAt(p.pos, "expected ']'")
	}
	if p.src[p.pos] != ']' {
		if digits == "" {
			return segSpec{}, p.errAt(p.pos, "expected array index")
		}
		return segSpec{}, p.errAt(p.pos, "expected ']'")
	}
	p.pos++
	if digits == "" {
		return segSpec{index: -1}, nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return segSpec{}, p.errAt(open, "array index out of range")
	}
	return segSpec{index: n}, nil
}

func (p *parser) skipBlanks() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) errAt(off int, msg string) *SyntaxError {
	line, col := 1, 1
	for _, r := range p.src[:min(off, len(p.src))] {
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	tok := "<EOF>"
	if off < len(p.src) {
		r, _ := utf8.DecodeRuneInString(p.src[off:])
		tok = strconv.QuoteRune(r)
	}
	return &SyntaxError{Input: p.src, Line: line, Column: col, Token: tok, Msg: msg}
}
