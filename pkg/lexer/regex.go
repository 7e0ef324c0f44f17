package lexer

import (
	"regexp"
)

type tokenRegex struct {
	Pattern *regexp.Regexp
	Raw     string
}

func rx(raw string) tokenRegex {
	return tokenRegex{regexp.MustCompile(raw), raw}
}

// Token regex patterns
var tokenRegexes = map[TokenType]tokenRegex{
	INCLUDE: rx(`^#include\s*<\s*([A-Za-z0-9_./]+)\s*>`),

	PLUS_ASSIGN:  rx(`^\+=`),
	MINUS_ASSIGN: rx(`^-=`),
	MULT_ASSIGN:  rx(`^\*=`),
	DIV_ASSIGN:   rx(`^/=`),
	INCR:         rx(`^\+\+`),
	DECR:         rx(`^--`),
	LE:           rx(`^<=`),
	GE:           rx(`^>=`),
	EQ:           rx(`^==`),
	NE:           rx(`^!=`),
	AND:          rx(`^&&`),
	OR:           rx(`^\|\|`),

	INT:    rx(`^int\b`),
	VOID:   rx(`^void\b`),
	RETURN: rx(`^return\b`),
	IF:     rx(`^if\b`),
	ELSE:   rx(`^else\b`),
	WHILE:  rx(`^while\b`),
	PRINT:  rx(`^print\b`),

	ASSIGN: rx(`^=`),
	PLUS:   rx(`^\+`),
	MINUS:  rx(`^-`),
	MULT:   rx(`^\*`),
	DIV:    rx(`^/`),
	MOD:    rx(`^%`),
	LT:     rx(`^<`),
	GT:     rx(`^>`),
	NOT:    rx(`^!`),

	SEMICOLON: rx(`^;`),
	COMMA:     rx(`^,`),
	LPAREN:    rx(`^\(`),
	RPAREN:    rx(`^\)`),
	LBRACE:    rx(`^\{`),
	RBRACE:    rx(`^\}`),

	NUM: rx(`^\d+\b`),
	ID:  rx(`^[a-zA-Z_][a-zA-Z0-9_]*`),
}

var (
	whitespaceRegex   = regexp.MustCompile(`^\s+`)
	commentRegex      = regexp.MustCompile(`^//.*`)
	blockCommentRegex = regexp.MustCompile(`^(?s)/\*.*?\*/`)
)

// Token precedence order for matching (longer patterns first)
var tokenPrecedenceOrder = []TokenType{
	INCLUDE,
	RETURN, WHILE, PRINT, ELSE, VOID, INT, IF,
	PLUS_ASSIGN, MINUS_ASSIGN, MULT_ASSIGN, DIV_ASSIGN, INCR, DECR,
	LE, GE, EQ, NE, AND, OR,
	ASSIGN, PLUS, MINUS, MULT, DIV, MOD, LT, GT, NOT,
	SEMICOLON, COMMA, LPAREN, RPAREN, LBRACE, RBRACE,
	NUM, ID,
}

// Get the regex pattern for a token type
func (t TokenType) Regex() *regexp.Regexp {
	if regex, ok := tokenRegexes[t]; ok {
		return regex.Pattern
	}

	return nil
}

// Get the raw regex string for a token type
func (t TokenType) RawRegex() string {
	if regex, ok := tokenRegexes[t]; ok {
		return regex.Raw
	}

	return ""
}

// MatchToken matches the first token at the start of the string.
// Whitespace and comments are reported as EOF with a non-empty lexeme so the caller can skip them.
func MatchToken(s string) (TokenType, string, bool) {
	if s == "" {
		return EOF, "", false
	} else if match := whitespaceRegex.FindString(s); match != "" {
		return EOF, match, true
	} else if match := commentRegex.FindString(s); match != "" {
		return EOF, match, true
	} else if match := blockCommentRegex.FindString(s); match != "" {
		return EOF, match, true
	}

	for _, tokenType := range tokenPrecedenceOrder {
		if regex, ok := tokenRegexes[tokenType]; ok {
			if match := regex.Pattern.FindString(s); match != "" {
				return tokenType, match, true
			}
		}
	}

	return ILLEGAL, string(s[0]), false
}

// includeHeader extracts the header name from an #include lexeme
func includeHeader(lexeme string) string {
	m := tokenRegexes[INCLUDE].Pattern.FindStringSubmatch(lexeme)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// Check if a byte is a digit
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
