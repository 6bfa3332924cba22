package textextract

import (
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// Tolerancia vertical (en unidades de usuario) para considerar dos fragmentos en la misma línea.
const sameLineTolerance = 1.5

// Desplazamiento de TJ (milésimas de em) a partir del cual se asume un espacio entre palabras.
const tjSpaceThreshold = -250

type operandKind int

const (
	operandNumber operandKind = iota
	operandString
	operandName
	operandArray
)

type operand struct {
	kind operandKind
	num  float64
	str  []byte
	arr  []operand
}

// fragment texto mostrado en una posición de la página.
type fragment struct {
	x, y float64
	seq  int
	text string
}

// textState posición del cursor de texto; se ignora la matriz de transformación (cm).
type textState struct {
	x, y    float64 // origen de la línea actual
	leading float64
}

// contentLines interpreta los operadores de texto del flujo de contenido y devuelve las líneas
// visuales de arriba hacia abajo, con los fragmentos de cada línea de izquierda a derecha.
func contentLines(content []byte) []string {
	var (
		frags    []fragment
		st       textState
		operands []operand
		arrays   [][]operand
	)
	emit := func(s string) {
		if strings.TrimSpace(s) == "" {
			return
		}
		frags = append(frags, fragment{x: st.x, y: st.y, seq: len(frags), text: s})
	}
	nextLine := func() {
		st.y -= st.leading
	}

	lx := newLexer(content)
	for {
		tok, ok := lx.next()
		if !ok {
			break
		}
		var op operand
		switch tok.kind {
		case tokArrayStart:
			arrays = append(arrays, nil)
			continue
		case tokArrayEnd:
			if len(arrays) == 0 {
				continue
			}
			op = operand{kind: operandArray, arr: arrays[len(arrays)-1]}
			arrays = arrays[:len(arrays)-1]
		case tokNumber:
			op = operand{kind: operandNumber, num: tok.num}
		case tokString:
			op = operand{kind: operandString, str: tok.str}
		case tokName:
			op = operand{kind: operandName, str: tok.str}
		case tokOperator:
			execOperator(tok.op, operands, &st, emit, nextLine)
			if tok.op == "ID" {
				lx.skipInlineImage()
			}
			operands = operands[:0]
			continue
		default:
			continue
		}
		if n := len(arrays); n > 0 {
			arrays[n-1] = append(arrays[n-1], op)
		} else {
			operands = append(operands, op)
		}
	}
	return groupLines(frags)
}

func execOperator(op string, args []operand, st *textState, emit func(string), nextLine func()) {
	nums := func(n int) ([]float64, bool) {
		if len(args) < n {
			return nil, false
		}
		out := make([]float64, n)
		for i, a := range args[len(args)-n:] {
			if a.kind != operandNumber {
				return nil, false
			}
			out[i] = a.num
		}
		return out, true
	}
	lastString := func() (string, bool) {
		if len(args) == 0 || args[len(args)-1].kind != operandString {
			return "", false
		}
		return decodePDFBytes(args[len(args)-1].str), true
	}

	switch op {
	case "BT":
		st.x, st.y = 0, 0
	case "Tm":
		if v, ok := nums(6); ok {
			st.x, st.y = v[4], v[5]
		}
	case "Td", "TD":
		if v, ok := nums(2); ok {
			st.x += v[0]
			st.y += v[1]
			if op == "TD" {
				st.leading = -v[1]
			}
		}
	case "TL":
		if v, ok := nums(1); ok {
			st.leading = v[0]
		}
	case "T*":
		nextLine()
	case "Tj":
		if s, ok := lastString(); ok {
			emit(s)
		}
	case "'", "\"":
		nextLine()
		if s, ok := lastString(); ok {
			emit(s)
		}
	case "TJ":
		if len(args) == 0 || args[len(args)-1].kind != operandArray {
			return
		}
		var b strings.Builder
		for _, el := range args[len(args)-1].arr {
			switch el.kind {
			case operandString:
				b.WriteString(decodePDFBytes(el.str))
			case operandNumber:
				if el.num <= tjSpaceThreshold {
					b.WriteByte(' ')
				}
			}
		}
		emit(b.String())
	}
}

// groupLines ordena los fragmentos por y descendente, corta una línea nueva cuando el salto
// vertical respecto del fragmento anterior supera sameLineTolerance y ordena cada línea por x.
func groupLines(frags []fragment) []string {
	if len(frags) == 0 {
		return nil
	}
	sort.SliceStable(frags, func(i, j int) bool {
		if frags[i].y != frags[j].y {
			return frags[i].y > frags[j].y
		}
		return frags[i].seq < frags[j].seq
	})

	var buckets [][]fragment
	start := 0
	for i := 1; i <= len(frags); i++ {
		if i < len(frags) && frags[i-1].y-frags[i].y <= sameLineTolerance {
			continue
		}
		buckets = append(buckets, frags[start:i])
		start = i
	}

	lines := make([]string, 0, len(buckets))
	for _, b := range buckets {
		sort.SliceStable(b, func(i, j int) bool {
			if b[i].x != b[j].x {
				return b[i].x < b[j].x
			}
			return b[i].seq < b[j].seq
		})
		parts := make([]string, len(b))
		for i, f := range b {
			parts[i] = strings.TrimSpace(f.text)
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return lines
}

// decodePDFBytes UTF-16BE si trae BOM; si no, WinAnsi (Windows-1252).
func decodePDFBytes(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		u := make([]uint16, 0, (len(b)-2)/2)
		for i := 2; i+1 < len(b); i += 2 {
			u = append(u, uint16(b[i])<<8|uint16(b[i+1]))
		}
		return string(utf16.Decode(u))
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

// ── Lexer ─────────────────────────────────────────────────────────────────────

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokString
	tokName
	tokOperator
	tokArrayStart
	tokArrayEnd
	tokOther
)

type token struct {
	kind tokenKind
	num  float64
	str  []byte
	op   string
}

type lexer struct {
	src []byte
	pos int
}

func newLexer(src []byte) *lexer { return &lexer{src: src} }

func isSpace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (l *lexer) next() (token, bool) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case isSpace(c):
			l.pos++
		case c == '%':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' && l.src[l.pos] != '\r' {
				l.pos++
			}
		case c == '(':
			return token{kind: tokString, str: l.literalString()}, true
		case c == '<':
			if l.pos+1 < len(l.src) && l.src[l.pos+1] == '<' {
				l.pos += 2
				return token{kind: tokOther}, true
			}
			return token{kind: tokString, str: l.hexString()}, true
		case c == '>':
			l.pos++
			if l.pos < len(l.src) && l.src[l.pos] == '>' {
				l.pos++
			}
			return token{kind: tokOther}, true
		case c == '[':
			l.pos++
			return token{kind: tokArrayStart}, true
		case c == ']':
			l.pos++
			return token{kind: tokArrayEnd}, true
		case c == '{' || c == '}' || c == ')':
			l.pos++
		case c == '/':
			l.pos++
			return token{kind: tokName, str: l.regular()}, true
		default:
			word := l.regular()
			if n, err := strconv.ParseFloat(string(word), 64); err == nil {
				return token{kind: tokNumber, num: n}, true
			}
			return token{kind: tokOperator, op: string(word)}, true
		}
	}
	return token{}, false
}

func (l *lexer) regular() []byte {
	start := l.pos
	for l.pos < len(l.src) && !isSpace(l.src[l.pos]) && !isDelimiter(l.src[l.pos]) {
		l.pos++
	}
	if l.pos == start && l.pos < len(l.src) {
		l.pos++
	}
	return l.src[start:l.pos]
}

// literalString lee "(...)" con paréntesis anidados y secuencias de escape.
func (l *lexer) literalString() []byte {
	l.pos++ // (
	var out []byte
	depth := 1
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '\\':
			l.pos++
			if l.pos >= len(l.src) {
				return out
			}
			e := l.src[l.pos]
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '\r':
				if l.pos+1 < len(l.src) && l.src[l.pos+1] == '\n' {
					l.pos++
				}
			case '\n':
			default:
				if e >= '0' && e <= '7' {
					v := 0
					for k := 0; k < 3 && l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '7'; k++ {
						v = v*8 + int(l.src[l.pos]-'0')
						l.pos++
					}
					out = append(out, byte(v))
					continue
				}
				out = append(out, e)
			}
			l.pos++
		case '(':
			depth++
			out = append(out, c)
			l.pos++
		case ')':
			depth--
			l.pos++
			if depth == 0 {
				return out
			}
			out = append(out, c)
		default:
			out = append(out, c)
			l.pos++
		}
	}
	return out
}

func (l *lexer) hexString() []byte {
	l.pos++ // <
	var digits []byte
	for l.pos < len(l.src) && l.src[l.pos] != '>' {
		if !isSpace(l.src[l.pos]) {
			digits = append(digits, l.src[l.pos])
		}
		l.pos++
	}
	l.pos++ // >
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out, err := hex.DecodeString(string(digits))
	if err != nil {
		return nil
	}
	return out
}

// skipInlineImage avanza hasta el operador EI que cierra los datos binarios de BI ... ID.
func (l *lexer) skipInlineImage() {
	for l.pos+2 < len(l.src) {
		if isSpace(l.src[l.pos]) && l.src[l.pos+1] == 'E' && l.src[l.pos+2] == 'I' &&
			(l.pos+3 == len(l.src) || isSpace(l.src[l.pos+3])) {
			l.pos += 3
			return
		}
		l.pos++
	}
	l.pos = len(l.src)
}
