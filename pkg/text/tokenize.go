package text

import "strings"

// Tokenizer splits one line of text into words, in source order.
// Implementations must be deterministic and must never return empty words.
type Tokenizer interface {
	Tokenize(line string) []string
}

// TokenizerFunc adapts a plain function to the Tokenizer interface.
type TokenizerFunc func(line string) []string

// Tokenize calls f(line).
func (f TokenizerFunc) Tokenize(line string) []string { return f(line) }

// Whitespace splits on runs of Unicode whitespace. Punctuation stays attached
// to the word it touches.
type Whitespace struct{}

// Tokenize implements Tokenizer.
func (Whitespace) Tokenize(line string) []string { return strings.Fields(line) }
