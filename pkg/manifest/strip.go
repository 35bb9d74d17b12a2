package manifest

// StripComments blanks every '#' comment outside quoted strings with spaces,
// keeping newlines so line numbers stay valid. The input is modified in place
// and returned.
func StripComments(buf []byte) ([]byte, error) {
	c := newCursor(buf)
	for !c.eof() {
		switch c.buf[c.pos] {
		case '"':
			if err := c.advanceTo('"'); err != nil {
				return nil, err
			}
		case '#':
			for !c.eof() && c.buf[c.pos] != '\n' {
				c.buf[c.pos] = ' '
				c.pos++
			}
			continue
		case '\n':
			c.line++
		}
		c.pos++
	}
	return buf, nil
}
