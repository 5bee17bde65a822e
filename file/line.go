package file

import (
	"bufio"
	"io"
	"strings"
)

// ReadLine returns the next line of reader without its "\n" or "\r\n"
// terminator. Lines of any length are returned whole. At end of input it
// returns io.EOF.
func ReadLine(reader *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		part, isPrefix, err := reader.ReadLine()
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
		sb.Write(part)
		if !isPrefix {
			return sb.String(), nil
		}
	}
}
