package matching

import (
	"errors"
	"math"
	"strings"
)

var ErrInvalidInput = errors.New("invalid input")

// Document is the token sequence of one skill set.
type Document []string

// Vector holds one TF-IDF weight per vocabulary term.
type Vector []float64

// Matrix is the result of vectorizing one batch of documents.
type Matrix struct {
	Vocabulary []string
	Index      map[string]int
	Vectors    []Vector
}

// Tokenize lowercases doc and splits it on runs of whitespace.
func Tokenize(doc string) Document {
	return strings.Fields(strings.ToLower(doc))
}

// Vectorize builds TF-IDF vectors for docs over a shared vocabulary.
// Vocabulary terms are enumerated in first-seen order.
func Vectorize(docs []string) (Matrix, error) {
	if len(docs) == 0 {
		return Matrix{}, ErrInvalidInput
	}

	tokenized := make([]Document, len(docs))
	m := Matrix{Index: make(map[string]int)}
	for i, doc := range docs {
		tokens := Tokenize(doc)
		tokenized[i] = tokens
		for _, tok := range tokens {
			if _, ok := m.Index[tok]; !ok {
				m.Index[tok] = len(m.Vocabulary)
				m.Vocabulary = append(m.Vocabulary, tok)
			}
		}
	}

	tf := make([]Vector, len(tokenized))
	for i, tokens := range tokenized {
		tf[i] = termFrequency(tokens, m.Index, len(m.Vocabulary))
	}

	idf := inverseDocumentFrequency(tf, len(m.Vocabulary))

	m.Vectors = make([]Vector, len(tf))
	for i, row := range tf {
		vec := make(Vector, len(row))
		for j, w := range row {
			vec[j] = w * idf[j]
		}
		m.Vectors[i] = vec
	}
	return m, nil
}

func termFrequency(tokens Document, index map[string]int, size int) Vector {
	tf := make(Vector, size)
	if len(tokens) == 0 {
		return tf
	}
	for _, tok := range tokens {
		tf[index[tok]]++
	}
	n := float64(len(tokens))
	for i := range tf {
		tf[i] /= n
	}
	return tf
}

// inverseDocumentFrequency uses ln(N/(df+1)); terms present in most documents
// get negative weights and are kept that way.
func inverseDocumentFrequency(tf []Vector, size int) Vector {
	idf := make(Vector, size)
	total := float64(len(tf))
	for j := 0; j < size; j++ {
		df := 0
		for _, row := range tf {
			if row[j] > 0 {
				df++
			}
		}
		idf[j] = math.Log(total / float64(df+1))
	}
	return idf
}
