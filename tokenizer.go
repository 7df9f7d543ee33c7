package sgns

import (
	"fmt"
	"strings"
	"unicode"
)

// PunctuationMode is a way to deal with punctuation and
// other symbols when tokenizing strings.
type PunctuationMode int

const (
	// Treat each piece of punctuation as its own token.
	SeparatePunctuation PunctuationMode = iota

	// Remove all punctuation.
	DropPunctuation

	// Treat punctuation as just another character.
	// Tokens are then exactly the whitespace-separated
	// fields of the input.
	IncludePunctuation
)

var punctuationNames = map[string]PunctuationMode{
	"separate": SeparatePunctuation,
	"drop":     DropPunctuation,
	"include":  IncludePunctuation,
}

// ParsePunctuationMode parses "separate", "drop" or
// "include".
func ParsePunctuationMode(name string) (PunctuationMode, error) {
	if mode, ok := punctuationNames[name]; ok {
		return mode, nil
	}
	return 0, fmt.Errorf("unknown punctuation mode: %q", name)
}

// A Tokenizer separates lines of text into word tokens.
//
// By default, a Tokenizer converts all tokens to
// lowercase and treats punctuation as its own token.
type Tokenizer struct {
	// PunctuationMode is used to decide how to treat
	// punctuation.
	PunctuationMode PunctuationMode

	// PreserveCase, if true, indicates that fields should
	// not automatically be converted to lowercase.
	PreserveCase bool
}

// Tokenize produces tokens for the string.
// Empty tokens are never produced.
func (t *Tokenizer) Tokenize(s string) []string {
	var res []string
	for _, field := range strings.Fields(s) {
		if !t.PreserveCase {
			field = strings.ToLower(field)
		}
		res = t.appendField(res, field)
	}
	return res
}

func (t *Tokenizer) appendField(res []string, field string) []string {
	switch t.PunctuationMode {
	case IncludePunctuation:
		return append(res, field)
	case DropPunctuation:
		stripped := strings.Map(func(ch rune) rune {
			if unicode.IsPunct(ch) {
				return -1
			}
			return ch
		}, field)
		if stripped != "" {
			res = append(res, stripped)
		}
		return res
	case SeparatePunctuation:
		var cur strings.Builder
		for _, ch := range field {
			if !unicode.IsPunct(ch) {
				cur.WriteRune(ch)
				continue
			}
			if cur.Len() > 0 {
				res = append(res, cur.String())
				cur.Reset()
			}
			res = append(res, string(ch))
		}
		if cur.Len() > 0 {
			res = append(res, cur.String())
		}
		return res
	}
	panic("unknown punctuation mode")
}
