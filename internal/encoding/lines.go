package encoding

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// LineReader splits a byte stream on '\r' and '\n'. Empty lines are skipped
// and invalid UTF-8 is replaced so every line is printable.
type LineReader struct {
	r   *bufio.Reader
	buf []byte
	err error
}

// NewLineReader wraps r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// Next returns the next non-empty line. It returns false at end of stream or
// on a read error; Err distinguishes the two. Bytes left unterminated when the
// stream ends or fails are returned as a final line.
func (l *LineReader) Next() (string, bool) {
	if l.err != nil {
		return "", false
	}
	for {
		b, err := l.r.ReadByte()
		if err != nil {
			l.err = err
			if len(l.buf) > 0 {
				return l.flush(), true
			}
			return "", false
		}
		if b == '\r' || b == '\n' {
			if len(l.buf) == 0 {
				continue
			}
			return l.flush(), true
		}
		l.buf = append(l.buf, b)
	}
}

// Err returns the first non-EOF read error.
func (l *LineReader) Err() error {
	if l.err == nil || errors.Is(l.err, io.EOF) {
		return nil
	}
	return l.err
}

func (l *LineReader) flush() string {
	line := strings.ToValidUTF8(string(l.buf), "�")
	l.buf = l.buf[:0]
	return line
}
