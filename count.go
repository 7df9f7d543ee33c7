package sgns

import "github.com/unixpickle/essentials"

// TokenCounts keeps track of how many times different
// tokens occur in some corpus.
type TokenCounts map[string]int

// CountTokens counts the tokens from a stream.
func CountTokens(stream <-chan string) TokenCounts {
	counts := TokenCounts{}
	for tok := range stream {
		counts[tok]++
	}
	return counts
}

// Total returns the number of token occurrences.
func (t TokenCounts) Total() int {
	var sum int
	for _, n := range t {
		sum += n
	}
	return sum
}

// AtLeast produces a copy of t without the tokens that
// occur fewer than min times.
func (t TokenCounts) AtLeast(min int) TokenCounts {
	res := TokenCounts{}
	for tok, n := range t {
		if n >= min {
			res[tok] = n
		}
	}
	return res
}

// MostCommon produces the n tokens with the most
// occurrences, most frequent first.
// Ties are broken alphabetically.
//
// If there are less than n total tokens, then all tokens
// are returned.
func (t TokenCounts) MostCommon(n int) []string {
	tokens, _ := t.sorted()
	if len(tokens) > n {
		tokens = tokens[:n]
	}
	return tokens
}

// sorted lists the tokens and their counts in descending
// order of count.
func (t TokenCounts) sorted() ([]string, []int) {
	var counts []int
	var tokens []string
	for tok, num := range t {
		tokens = append(tokens, tok)
		counts = append(counts, num)
	}
	essentials.VoodooSort(counts, func(i, j int) bool {
		if counts[i] == counts[j] {
			return tokens[i] < tokens[j]
		}
		return counts[i] > counts[j]
	}, tokens)
	return tokens, counts
}
