package engine

import "strings"

// preprocessSource rewrites script source into plain zygomys:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords need
//     no global symbols that could shadow user variables.
//  2. kebab-case identifiers become snake_case (scale-rays -> scale_rays),
//     since zygomys reads a hyphen as subtraction.
//  3. ; line comments become // comments.
//
// String literals are copied untouched.
func preprocessSource(source string) string {
	sc := scanner{src: source}
	sc.out.Grow(len(source) + len(source)/4)
	for sc.pos < len(sc.src) {
		switch c := sc.src[sc.pos]; {
		case c == '"':
			sc.quoted('"', true)
		case c == '`':
			sc.quoted('`', false)
		case c == ';':
			sc.comment()
		case c == ':' && sc.peek(1) == '=':
			sc.copy(2)
		case c == ':' && isLetter(sc.peek(1)):
			sc.keyword()
		case c == '-' && sc.pos > 0 && isIdentChar(sc.src[sc.pos-1]) && isLetter(sc.peek(1)):
			sc.out.WriteByte('_')
			sc.pos++
		default:
			sc.copy(1)
		}
	}
	return sc.out.String()
}

// scanner walks source bytes and accumulates the rewritten text.
type scanner struct {
	src string
	pos int
	out strings.Builder
}

// peek returns the byte off positions ahead, or 0 past the end.
func (sc *scanner) peek(off int) byte {
	if sc.pos+off >= len(sc.src) {
		return 0
	}
	return sc.src[sc.pos+off]
}

// copy emits the next n bytes unchanged.
func (sc *scanner) copy(n int) {
	end := min(sc.pos+n, len(sc.src))
	sc.out.WriteString(sc.src[sc.pos:end])
	sc.pos = end
}

// quoted copies a string literal delimited by q, including both quotes.
// Unterminated literals run to the end of the source.
func (sc *scanner) quoted(q byte, escapes bool) {
	start := sc.pos
	sc.pos++
	for sc.pos < len(sc.src) && sc.src[sc.pos] != q {
		if escapes && sc.src[sc.pos] == '\\' {
			sc.pos++
		}
		sc.pos++
	}
	sc.pos = min(sc.pos+1, len(sc.src))
	sc.out.WriteString(sc.src[start:sc.pos])
}

// comment turns a run of ; into // and copies the rest of the line.
func (sc *scanner) comment() {
	for sc.pos < len(sc.src) && sc.src[sc.pos] == ';' {
		sc.pos++
	}
	sc.out.WriteString("//")
	end := strings.IndexByte(sc.src[sc.pos:], '\n')
	if end < 0 {
		end = len(sc.src) - sc.pos
	}
	sc.copy(end)
}

// keyword emits :name as a marked string literal.
func (sc *scanner) keyword() {
	end := sc.pos + 1
	for end < len(sc.src) && isKWChar(sc.src[end]) {
		end++
	}
	sc.out.WriteByte('"')
	sc.out.WriteString(kwPrefix)
	sc.out.WriteString(sc.src[sc.pos+1 : end])
	sc.out.WriteByte('"')
	sc.pos = end
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isKWChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}
