package util

import (
	"bufio"
	"io"
	"strings"
)

// SafeReadLine blocks until a whole line can be read or
// r returns an error. The line ending, \n or \r\n, is stripped.
// A final line without a line ending is returned with io.EOF.
// Lines are not bounded in length.
func SafeReadLine(r *bufio.Reader) (line string, err error) {
	line, err = r.ReadString('\n')
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return
}

// Exhaust calls fn with every line in r, line endings stripped,
// and returns the first read error other than io.EOF.
func Exhaust(r io.Reader, fn func(line string)) error {
	src := bufio.NewReader(r)
	for {
		line, err := SafeReadLine(src)
		switch err {
		case nil:
			fn(line)
		case io.EOF:
			// last line without a line ending
			if line != "" {
				fn(line)
			}
			return nil
		default:
			return err
		}
	}
}
