package util

import (
	"bufio"
	"io"
)

// Count counts the lines of a catalog, blank lines included
func Count(r io.Reader) (int64, error) {
	var n int64
	src := bufio.NewReader(r)
	for {
		line, err := SafeReadLine(src)
		switch err {
		case nil:
			n++
		case io.EOF:
			if line != "" {
				n++
			}
			return n, nil
		default:
			return n, err
		}
	}
}
