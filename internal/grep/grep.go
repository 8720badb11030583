// Package grep filters lines by a glob pattern with optional context.
package grep

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Options controls a Grep run.
type Options struct {
	Pattern    string
	IgnoreCase bool
	Invert     bool // select lines that do not match
	Count      bool // print only the number of selected lines
	LineNumber bool // prefix "N:" for selected lines and "N-" for context
	Before     int
	After      int
	Context    int // default for both Before and After
}

func (o Options) before() int { return max(o.Before, o.Context) }
func (o Options) after() int  { return max(o.After, o.Context) }

// Compile turns a glob pattern into a regular expression. '*' matches any run of
// characters and '?' matches one; everything else is literal. The result matches
// anywhere in a line.
func Compile(pattern string, ignoreCase bool) (*regexp.Regexp, error) {
	var sb strings.Builder
	if ignoreCase {
		sb.WriteString("(?i)")
	}
	for _, r := range pattern {
		switch r {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return re, nil
}

type line struct {
	n    int // 1-based
	text string
}

// printer writes selected and context lines, remembering the last line written so
// a line is never printed twice.
type printer struct {
	w           io.Writer
	lineNumber  bool
	lastPrinted int
	err         error
}

func (p *printer) print(l line, sep byte) {
	if p.err != nil || l.n <= p.lastPrinted {
		return
	}
	p.lastPrinted = l.n
	if p.lineNumber {
		_, p.err = fmt.Fprintf(p.w, "%d%c%s\n", l.n, sep, l.text)
		return
	}
	_, p.err = fmt.Fprintln(p.w, l.text)
}

// Grep reads lines from r and writes the selected ones, with context, to w.
// Trailing whitespace is stripped from every line. It returns the number of
// selected lines.
//
// Leading context is a window of the last Before unselected lines. Trailing
// context is the next After unselected lines following a selected line; it is
// written when the next selected line is found or at the end of input.
func Grep(r io.Reader, w io.Writer, opts Options) (int, error) {
	re, err := Compile(opts.Pattern, opts.IgnoreCase)
	if err != nil {
		return 0, err
	}

	p := &printer{w: w, lineNumber: opts.LineNumber}
	beforeLen, afterLen := opts.before(), opts.after()
	var leading, trailing []line
	afterLeft := 0
	selected := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		l := line{n: n, text: strings.TrimRightFunc(scanner.Text(), unicode.IsSpace)}

		if re.MatchString(l.text) != opts.Invert {
			selected++
			if opts.Count {
				continue
			}
			for _, c := range trailing {
				p.print(c, '-')
			}
			for _, c := range leading {
				p.print(c, '-')
			}
			p.print(l, ':')
			trailing, leading = trailing[:0], leading[:0]
			afterLeft = afterLen
			continue
		}
		if opts.Count {
			continue
		}

		if beforeLen > 0 {
			if len(leading) == beforeLen {
				leading = append(leading[:0], leading[1:]...)
			}
			leading = append(leading, l)
		}
		if afterLeft > 0 {
			trailing = append(trailing, l)
			afterLeft--
		}
	}
	if err := scanner.Err(); err != nil {
		return selected, fmt.Errorf("error reading input: %w", err)
	}

	if opts.Count {
		_, err := fmt.Fprintln(w, strconv.Itoa(selected))
		return selected, err
	}
	for _, c := range trailing {
		p.print(c, '-')
	}
	return selected, p.err
}
