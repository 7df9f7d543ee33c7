package sgns

import (
	"encoding/json"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	var v Vocab
	serializer.RegisterTypedDeserializer(v.SerializerType(), DeserializeVocab)
}

// A Vocab translates between word IDs and words, and
// records how often each word occurred in the corpus.
//
// Words are ordered by descending count, so ID 0 is the
// most frequent word.
// Ties are broken alphabetically.
type Vocab struct {
	Words  []string
	Counts []int

	ids map[string]int
}

// NewVocab creates a Vocab from the tokens which occur at
// least minCount times.
func NewVocab(counts TokenCounts, minCount int) *Vocab {
	words, nums := counts.AtLeast(minCount).sorted()
	return newVocab(words, nums)
}

// DeserializeVocab deserializes a Vocab.
func DeserializeVocab(d []byte) (*Vocab, error) {
	var obj vocabJSON
	if err := json.Unmarshal(d, &obj); err != nil {
		return nil, essentials.AddCtx("deserialize Vocab", err)
	}
	return newVocab(obj.Words, obj.Counts), nil
}

func newVocab(words []string, counts []int) *Vocab {
	res := &Vocab{Words: words, Counts: counts, ids: map[string]int{}}
	for i, w := range words {
		res.ids[w] = i
	}
	return res
}

// Len returns the number of words, V.
func (v *Vocab) Len() int {
	return len(v.Words)
}

// NumWords returns the total number of occurrences of all
// the words in the vocabulary.
func (v *Vocab) NumWords() int {
	var sum int
	for _, c := range v.Counts {
		sum += c
	}
	return sum
}

// ID gets the ID for the token.
// The second return value is false for unknown tokens.
func (v *Vocab) ID(token string) (int, bool) {
	id, ok := v.ids[token]
	return id, ok
}

// IDs translates the tokens to IDs, skipping tokens which
// are not in the vocabulary.
func (v *Vocab) IDs(tokens []string) []int {
	res := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		if id, ok := v.ids[tok]; ok {
			res = append(res, id)
		}
	}
	return res
}

// Token gets the word for the given ID.
//
// If the ID is out of range, then "" is returned.
func (v *Vocab) Token(id int) string {
	if id < 0 || id >= len(v.Words) {
		return ""
	}
	return v.Words[id]
}

// Frequencies returns the count of each word, indexed by
// word ID.
func (v *Vocab) Frequencies() []float64 {
	res := make([]float64, len(v.Counts))
	for i, c := range v.Counts {
		res[i] = float64(c)
	}
	return res
}

// SerializerType returns the unique ID used to serialize
// a Vocab with the serializer package.
func (v *Vocab) SerializerType() string {
	return "github.com/unixpickle/sgns.Vocab"
}

// Serialize serializes the Vocab.
func (v *Vocab) Serialize() ([]byte, error) {
	return json.Marshal(&vocabJSON{Words: v.Words, Counts: v.Counts})
}

type vocabJSON struct {
	Words  []string `json:"words"`
	Counts []int    `json:"counts"`
}
