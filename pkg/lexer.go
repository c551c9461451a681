package ember

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

type TokenCategory uint64
type stateFunc func(l *Lexer) stateFunc

const (
	EOF rune = -1

	TokenVariable TokenCategory = iota
	TokenReturnKeyword
	TokenInteger
	TokenFloat
	TokenOperator
	TokenAssignment
	TokenLeftParen
	TokenRightParen
	TokenLeftCurly
	TokenRightCurly
)

var categoryNames = map[TokenCategory]string{
	TokenVariable:      "VARIABLE",
	TokenReturnKeyword: "RETURN_KEYWORD",
	TokenInteger:       "INTEGER",
	TokenFloat:         "FLOAT",
	TokenOperator:      "OPERATOR",
	TokenAssignment:    "ASSIGNMENT",
	TokenLeftParen:     "LEFT_PAREN",
	TokenRightParen:    "RIGHT_PAREN",
	TokenLeftCurly:     "LEFT_CURLY",
	TokenRightCurly:    "RIGHT_CURLY",
}

func (c TokenCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}

	return fmt.Sprintf("TokenCategory(%d)", uint64(c))
}

var keywordTable = map[string]TokenCategory{
	"return": TokenReturnKeyword,
}

var operatorTable = map[string]TokenCategory{
	"+":  TokenOperator,
	"-":  TokenOperator,
	"*":  TokenOperator,
	"**": TokenOperator,
	"/":  TokenOperator,
	"//": TokenOperator,
	"%":  TokenOperator,
	":=": TokenAssignment,
	"(":  TokenLeftParen,
	")":  TokenRightParen,
	"{":  TokenLeftCurly,
	"}":  TokenRightCurly,
}

// Token is a classified lexeme. Tokens are plain values and compare with ==.
type Token struct {
	Category TokenCategory
	Text     string
}

func (t Token) String() string {
	return fmt.Sprintf("(%s, %s)", t.Text, t.Category)
}

type Lexer struct {
	reader *bufio.Reader
	offset int
	emit   func(Token)
	done   chan Token
	err    error
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
		done:   make(chan Token),
	}
}

// Tokenize scans source in a single pass. On failure no tokens are returned.
func Tokenize(source string) ([]Token, error) {
	return NewLexer(strings.NewReader(source)).RunBlocking()
}

// Chan returns the channel fed by Run. It is closed once scanning stops;
// Err reports why.
func (l *Lexer) Chan() chan Token {
	return l.done
}

// Run streams tokens to Chan. Meant to be started on its own goroutine.
func (l *Lexer) Run() {
	l.emit = func(t Token) {
		l.done <- t
	}

	l.run()
	close(l.done)
}

// Err returns the error that stopped the last run, if any.
func (l *Lexer) Err() error {
	return l.err
}

// RunBlocking scans on the calling goroutine and collects every token.
func (l *Lexer) RunBlocking() ([]Token, error) {
	var tokens []Token
	l.emit = func(t Token) {
		tokens = append(tokens, t)
	}

	l.run()
	if l.err != nil {
		return nil, l.err
	}

	return tokens, nil
}

func (l *Lexer) run() {
	for state := defaultState; state != nil && l.err == nil; {
		state = state(l)
	}
}

func defaultState(l *Lexer) stateFunc {
	for {
		switch r := l.peek(); {
		case r == EOF:
			return nil
		case r == ' ' || r == '\t':
			l.next()
			continue
		case isDigit(r):
			return numberState
		case isLetter(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	var num strings.Builder
	for r := l.peek(); isDigit(r); r = l.peek() {
		num.WriteRune(l.next())
	}

	if l.peek() != '.' {
		return l.emitValue(TokenInteger, num.String())
	}

	num.WriteRune(l.next()) // The fractional part may be empty, "42." is a float
	for r := l.peek(); isDigit(r); r = l.peek() {
		num.WriteRune(l.next())
	}

	return l.emitValue(TokenFloat, num.String())
}

func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for r := l.peek(); isLetter(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return l.emitValue(t, id.String())
	}

	return l.emitValue(TokenVariable, id.String())
}

func operatorState(l *Lexer) stateFunc {
	start := l.offset
	r := l.next()
	if r == ':' || r == '/' || r == '*' { // Some operators can be two runes
		op := string(r) + string(l.peek())
		if tok, ok := operatorTable[op]; ok {
			l.next() // Skip

			return l.emitValue(tok, op)
		}
	}

	if tok, ok := operatorTable[string(r)]; ok {
		return l.emitValue(tok, string(r))
	}

	return l.fail(&InvalidInputError{Char: r, Offset: start})
}

func (l *Lexer) fail(err error) stateFunc {
	l.err = err

	return nil
}

func (l *Lexer) emitValue(c TokenCategory, text string) stateFunc {
	if l.err != nil {
		return nil // The token may be cut short by a failed read
	}

	l.emit(Token{
		Category: c,
		Text:     text,
	})

	return defaultState
}

func (l *Lexer) peek() rune {
	r, ok := l.read()
	if !ok {
		return EOF
	}

	_ = l.reader.UnreadRune()
	return r
}

func (l *Lexer) next() rune {
	r, ok := l.read()
	if !ok {
		return EOF
	}

	l.offset++
	return r
}

// read reports false at end of input. A failing reader also ends the input,
// but the failure is kept so the run stops with it.
func (l *Lexer) read() (rune, bool) {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err != io.EOF && l.err == nil {
			l.err = errors.Wrapf(err, "read input at offset %d", l.offset)
		}

		return EOF, false
	}

	return r, true
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
