package manifest

// cursor walks a manifest buffer and counts the lines it crosses.
type cursor struct {
	buf  []byte
	pos  int
	line int
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf, line: 1}
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.buf) || c.buf[c.pos] == 0
}

// peek returns the current byte, or 0 at end of input.
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.buf[c.pos]
}

// skipSpaces advances over spaces, tabs, carriage returns and newlines.
func (c *cursor) skipSpaces() {
	for !c.eof() {
		switch c.buf[c.pos] {
		case '\n':
			c.line++
		case ' ', '\t', '\r':
		default:
			return
		}
		c.pos++
	}
}

// advanceTo moves past the current byte and stops on the next occurrence of
// term. Reaching end of input is reported against the line the scan
// started on.
func (c *cursor) advanceTo(term byte) error {
	start := c.line
	for {
		c.pos++
		if c.eof() {
			return newError(ErrUnterminatedSegment, start, "missing closing %q", term)
		}
		ch := c.buf[c.pos]
		if ch == term {
			return nil
		}
		if ch == '\n' {
			c.line++
		}
	}
}

// extractSubstring returns buf[start..end] inclusive, trimmed of spaces and
// tabs, with one leading and one trailing quote removed.
func extractSubstring(buf []byte, start, end int) (string, bool) {
	for start <= end && isBlank(buf[start]) {
		start++
	}
	for end >= start && isBlank(buf[end]) {
		end--
	}
	if start > end {
		return "", false
	}
	if buf[start] == '"' {
		start++
	}
	if end >= start && buf[end] == '"' {
		end--
	}
	if start > end {
		return "", true
	}
	return string(buf[start : end+1]), true
}

// firstWord skips leading non-identifier bytes and returns the run of
// identifier bytes that follows, plus the index just past it.
func firstWord(buf []byte, from int) (string, int) {
	i := from
	for i < len(buf) && buf[i] != 0 && !isIdent(buf[i]) {
		i++
	}
	start := i
	for i < len(buf) && isIdent(buf[i]) {
		i++
	}
	return string(buf[start:i]), i
}

func isBlank(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

func isIdent(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_' || ch == '-'
}
