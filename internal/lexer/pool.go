package lexer

import "sync"

// TokenBuffer holds tokens produced by TokenizePooled. Release it once
// nothing references Tokens any more.
type TokenBuffer struct {
	Tokens []Token
}

var (
	lexers = sync.Pool{
		New: func() any { return new(Lexer) },
	}
	buffers = sync.Pool{
		New: func() any {
			// a small component template yields a few hundred tokens
			return &TokenBuffer{Tokens: make([]Token, 0, 256)}
		},
	}
)

// TokenizePooled tokenizes input with a pooled lexer into a pooled buffer
func TokenizePooled(input string) *TokenBuffer {
	l := lexers.Get().(*Lexer)
	l.Reset(input)
	defer func() {
		l.Reset("")
		lexers.Put(l)
	}()

	buf := buffers.Get().(*TokenBuffer)
	buf.Tokens = l.appendTokens(buf.Tokens[:0])
	return buf
}

// Release returns the buffer to the pool
func (b *TokenBuffer) Release() {
	clear(b.Tokens)
	b.Tokens = b.Tokens[:0]
	buffers.Put(b)
}

// Reset reinitializes the lexer with new input
func (l *Lexer) Reset(input string) {
	*l = Lexer{input: input, line: 1, mode: modeData}
	l.readChar()
}
