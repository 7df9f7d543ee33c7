package sgns

import "github.com/unixpickle/anyvec"

// Embedding is a trained word embedding.
type Embedding interface {
	// Dim returns the dimensionality of the embedding.
	Dim() int

	// Embed returns the embedding for the token.
	// It returns nil for tokens outside the vocabulary.
	Embed(token string) anyvec.Vector

	// EmbedID returns the embedding for the token ID.
	EmbedID(id int) anyvec.Vector

	// Lookup finds the n token IDs whose vectors have the
	// highest cosine similarity to vec, most similar first.
	//
	// If n is greater than the vocabulary size, there will
	// be fewer than n results.
	Lookup(vec anyvec.Vector, n int) ([]int, []anyvec.Numeric)

	// Token looks up the token for the token ID.
	Token(id int) string
}
