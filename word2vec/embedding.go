package word2vec

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvecsave"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
	"github.com/unixpickle/sgns"
	"github.com/unixpickle/splaytree"
)

func init() {
	serializer.RegisterTypedDeserializer((&Embedding{}).SerializerType(),
		DeserializeEmbedding)
}

// Embedding is a trained word embedding.
// It implements sgns.Embedding.
type Embedding struct {
	Vocab *sgns.Vocab

	// Vectors contains one row per word ID.
	Vectors *anyvec.Matrix
}

// NewEmbedding creates an Embedding from the input vectors
// of a Net.
//
// The vectors are copied, so the Net may keep training
// after the Embedding is created.
func NewEmbedding(vocab *sgns.Vocab, n *Net) *Embedding {
	mat := n.InputEmbeddings()
	return &Embedding{
		Vocab: vocab,
		Vectors: &anyvec.Matrix{
			Data: mat.Data.Copy(),
			Rows: mat.Rows,
			Cols: mat.Cols,
		},
	}
}

// DeserializeEmbedding decodes an Embedding written by
// Serialize, including its vocabulary.
func DeserializeEmbedding(d []byte) (*Embedding, error) {
	var vocab *sgns.Vocab
	var rows, cols int
	var vecs *anyvecsave.S
	if err := serializer.DeserializeAny(d, &vocab, &rows, &cols, &vecs); err != nil {
		return nil, essentials.AddCtx("deserialize Embedding", err)
	}
	if vecs.Vector.Len() != rows*cols || vocab.Len() != rows {
		return nil, fmt.Errorf("deserialize Embedding: %d words, %dx%d matrix, %d values",
			vocab.Len(), rows, cols, vecs.Vector.Len())
	}
	mat := &anyvec.Matrix{Data: vecs.Vector, Rows: rows, Cols: cols}
	return &Embedding{Vocab: vocab, Vectors: mat}, nil
}

// Dim returns the dimensionality of the embedding.
func (e *Embedding) Dim() int {
	return e.Vectors.Cols
}

// Token returns the word for the word ID.
func (e *Embedding) Token(id int) string {
	return e.Vocab.Token(id)
}

// Embed returns the embedding for the word, or nil if the
// word is not in the vocabulary.
func (e *Embedding) Embed(token string) anyvec.Vector {
	id, ok := e.Vocab.ID(token)
	if !ok {
		return nil
	}
	return e.EmbedID(id)
}

// EmbedID returns a copy of the vector for the word ID.
func (e *Embedding) EmbedID(id int) anyvec.Vector {
	idx := e.Vectors.Cols * id
	return e.Vectors.Data.Slice(idx, idx+e.Vectors.Cols)
}

// Normalize scales every row to length 1, so that dot
// products between rows are cosine similarities.
func (e *Embedding) Normalize() {
	c := e.Vectors.Data.Creator()
	sq := e.Vectors.Data.Copy()
	anyvec.Pow(sq, c.MakeNumeric(2))
	norms := anyvec.SumCols(sq, e.Vectors.Rows)
	anyvec.Pow(norms, c.MakeNumeric(-0.5))
	anyvec.ScaleChunks(e.Vectors.Data, norms)
}

// Lookup finds the n word IDs with the highest cosine
// similarity to vec, most similar first.
// For each ID, it also returns the similarity.
//
// If n is greater than the number of words, then there
// will be fewer than n results.
func (e *Embedding) Lookup(vec anyvec.Vector, n int) ([]int, []anyvec.Numeric) {
	if vec.Len() != e.Vectors.Cols {
		panic("incorrect vector length")
	}
	if n <= 0 {
		return nil, nil
	}

	c := e.Vectors.Data.Creator()
	squares := e.Vectors.Data.Copy()
	anyvec.Pow(squares, c.MakeNumeric(2))
	normalizers := anyvec.SumCols(squares, e.Vectors.Rows)
	anyvec.Pow(normalizers, c.MakeNumeric(-0.5))

	scaled := e.Vectors.Data.Copy()
	anyvec.ScaleChunks(scaled, normalizers)
	normVec := vec.Copy()
	normVec.Scale(c.NumOps().Div(c.MakeNumeric(1), anyvec.Norm(vec)))
	anyvec.ScaleRepeated(scaled, normVec)
	sims, _ := numericListFloats(anyvec.SumCols(scaled, e.Vectors.Rows).Data())

	tree := &splaytree.Tree{}
	var size int
	for id, sim := range sims {
		if math.IsNaN(sim) {
			sim = math.Inf(-1)
		}
		tree.Insert(neighbor{ID: id, Similarity: sim})
		size++
		if size > n {
			popNeighbor(tree, false)
			size--
		}
	}

	ids := make([]int, 0, size)
	simNums := make([]anyvec.Numeric, 0, size)
	for tree.Root != nil {
		best := popNeighbor(tree, true)
		ids = append(ids, best.ID)
		simNums = append(simNums, c.MakeNumeric(best.Similarity))
	}
	return ids, simNums
}

// WriteText writes the embedding in the word2vec text
// format: a "<words> <dim>" header line, followed by one
// line per word with the word and its vector components.
func (e *Embedding) WriteText(w io.Writer) (err error) {
	defer essentials.AddCtxTo("write embedding", &err)
	values, bitSize := numericListFloats(e.Vectors.Data.Data())

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", e.Vectors.Rows, e.Vectors.Cols); err != nil {
		return err
	}
	var line []byte
	for id := 0; id < e.Vectors.Rows; id++ {
		line = append(line[:0], e.Vocab.Token(id)...)
		for _, x := range values[id*e.Vectors.Cols : (id+1)*e.Vectors.Cols] {
			line = append(line, ' ')
			line = strconv.AppendFloat(line, x, 'g', -1, bitSize)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SerializerType returns the unique ID used to serialize
// an Embedding with the serializer package.
func (e *Embedding) SerializerType() string {
	return "github.com/unixpickle/sgns/word2vec.Embedding"
}

// Serialize serializes the Embedding.
func (e *Embedding) Serialize() ([]byte, error) {
	return serializer.SerializeAny(
		e.Vocab,
		e.Vectors.Rows,
		e.Vectors.Cols,
		&anyvecsave.S{Vector: e.Vectors.Data},
	)
}

type neighbor struct {
	ID         int
	Similarity float64
}

// Compare orders neighbors by similarity.
// On ties, lower IDs rank as more similar.
func (n neighbor) Compare(v splaytree.Value) int {
	n1 := v.(neighbor)
	if n.Similarity < n1.Similarity {
		return -1
	} else if n.Similarity > n1.Similarity {
		return 1
	}
	if n.ID > n1.ID {
		return -1
	} else if n.ID < n1.ID {
		return 1
	}
	return 0
}

func popNeighbor(t *splaytree.Tree, max bool) neighbor {
	n := t.Root
	for {
		next := n.Left
		if max {
			next = n.Right
		}
		if next == nil {
			break
		}
		n = next
	}
	value := n.Value.(neighbor)
	t.Delete(value)
	return value
}

// numericListFloats converts vector data to float64s and
// reports the precision of the original values.
func numericListFloats(data anyvec.NumericList) ([]float64, int) {
	switch data := data.(type) {
	case []float32:
		res := make([]float64, len(data))
		for i, x := range data {
			res[i] = float64(x)
		}
		return res, 32
	case []float64:
		return data, 64
	default:
		panic(fmt.Sprintf("unsupported numeric type: %T", data))
	}
}
