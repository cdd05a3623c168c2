package cmd

import (
	"errors"
	"strings"
)

var (
	errUnterminatedQuote = errors.New("syntax error: unterminated quote")
	errRedirectTarget    = errors.New("syntax error: redirect without target")
)

// Redirect holds redirect info from the command line.
type Redirect struct {
	Append bool   // >> vs >
	Path   string // target path
}

// lexer splits a command line into words. Quotes group text, a backslash
// escapes the next byte outside single quotes.
type lexer struct {
	line string
	pos  int
}

func isBlank(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

func (l *lexer) skipBlanks() {
	for l.pos < len(l.line) && isBlank(l.line[l.pos]) {
		l.pos++
	}
}

// word reads one word, stopping at a blank or, when stopAtRedirect is set,
// at an unquoted '>'. ok is false when nothing was read.
func (l *lexer) word(stopAtRedirect bool) (w string, ok bool, err error) {
	var b strings.Builder
	var quote byte
	for l.pos < len(l.line) {
		ch := l.line[l.pos]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			} else if ch == '\\' && quote == '"' && l.pos+1 < len(l.line) {
				l.pos++
				b.WriteByte(l.line[l.pos])
			} else {
				b.WriteByte(ch)
			}
		case ch == '\'' || ch == '"':
			quote = ch
			ok = true
		case ch == '\\' && l.pos+1 < len(l.line):
			l.pos++
			b.WriteByte(l.line[l.pos])
		case isBlank(ch) || (stopAtRedirect && ch == '>'):
			return b.String(), ok || b.Len() > 0, nil
		default:
			b.WriteByte(ch)
		}
		l.pos++
	}
	if quote != 0 {
		return "", false, errUnterminatedQuote
	}
	return b.String(), ok || b.Len() > 0, nil
}

// Tokenize splits a command line into tokens, handling quotes and redirects.
// Returns the tokens, optional redirect info, and any error.
func Tokenize(line string) ([]string, *Redirect, error) {
	l := &lexer{line: strings.TrimSpace(line)}
	var tokens []string
	var redirect *Redirect

	for {
		l.skipBlanks()
		if l.pos >= len(l.line) {
			return tokens, redirect, nil
		}

		if l.line[l.pos] == '>' {
			r := &Redirect{}
			l.pos++
			if l.pos < len(l.line) && l.line[l.pos] == '>' {
				r.Append = true
				l.pos++
			}
			l.skipBlanks()
			target, ok, err := l.word(false)
			if err != nil {
				return nil, nil, err
			}
			if !ok || target == "" {
				return nil, nil, errRedirectTarget
			}
			r.Path = target
			redirect = r
			continue
		}

		w, ok, err := l.word(true)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			tokens = append(tokens, w)
		}
	}
}
