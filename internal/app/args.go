package app

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// splitArgs splits a command line into words. A word may be a Go double-quoted
// string (escapes allowed) or a back-quoted raw string; anything else ends at whitespace.
func splitArgs(line string) ([]string, error) {
	var args []string
	i := 0
	for i < len(line) {
		r := rune(line[i])
		if unicode.IsSpace(r) {
			i++
			continue
		}

		switch line[i] {
		case '"':
			end := closingQuote(line, i)
			if end < 0 {
				return nil, fmt.Errorf("unterminated quoted string at column %d", i+1)
			}
			word, err := strconv.Unquote(line[i : end+1])
			if err != nil {
				return nil, fmt.Errorf("invalid quoted string %s: %w", line[i:end+1], err)
			}
			args = append(args, word)
			i = end + 1
		case '`':
			end := strings.IndexByte(line[i+1:], '`')
			if end < 0 {
				return nil, fmt.Errorf("unterminated raw string at column %d", i+1)
			}
			args = append(args, line[i+1:i+1+end])
			i += end + 2
		default:
			end := strings.IndexFunc(line[i:], unicode.IsSpace)
			if end < 0 {
				end = len(line) - i
			}
			args = append(args, line[i:i+end])
			i += end
		}
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return args, nil
}

// closingQuote returns the index of the quote ending the string opened at start, or -1.
func closingQuote(line string, start int) int {
	for i := start + 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

// intArg parses args[i] as an int, returning def when it is absent.
func intArg(args []string, i int, name string, def int) (int, bool, error) {
	if i >= len(args) {
		return def, false, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s '%s': not an integer", name, args[i])
	}
	return n, true, nil
}
