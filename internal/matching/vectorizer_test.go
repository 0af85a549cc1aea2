package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Document
	}{
		{"simple", "Python SQL", Document{"python", "sql"}},
		{"whitespace runs", "  Data\tAnalysis \n Excel  ", Document{"data", "analysis", "excel"}},
		{"empty", "", Document{}},
		{"only spaces", "   ", Document{}},
		{"punctuation kept", "UI/UX Node.js", Document{"ui/ux", "node.js"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			assert.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i], got[i])
			}
		})
	}
}

func TestVectorizeEmptyBatch(t *testing.T) {
	_, err := Vectorize(nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestVectorizeVocabularyOrderAndAlignment(t *testing.T) {
	m, err := Vectorize([]string{"Python SQL", "sql excel", "python"})
	require.NoError(t, err)

	assert.Equal(t, []string{"python", "sql", "excel"}, m.Vocabulary)
	assert.Equal(t, map[string]int{"python": 0, "sql": 1, "excel": 2}, m.Index)
	require.Len(t, m.Vectors, 3)
	for _, v := range m.Vectors {
		assert.Len(t, v, len(m.Vocabulary))
	}
}

func TestVectorizeWeights(t *testing.T) {
	// 3 documents: "python" appears in 2, "sql" in 1, "excel" in 1.
	m, err := Vectorize([]string{"python sql", "python", "excel"})
	require.NoError(t, err)

	idfPython := math.Log(3.0 / 3.0)
	idfSQL := math.Log(3.0 / 2.0)
	idfExcel := math.Log(3.0 / 2.0)

	assert.InDelta(t, 0.5*idfPython, m.Vectors[0][0], 1e-12)
	assert.InDelta(t, 0.5*idfSQL, m.Vectors[0][1], 1e-12)
	assert.InDelta(t, 0.0, m.Vectors[0][2], 1e-12)
	assert.InDelta(t, 1.0*idfPython, m.Vectors[1][0], 1e-12)
	assert.InDelta(t, 1.0*idfExcel, m.Vectors[2][2], 1e-12)
}

func TestVectorizeRepeatedTokens(t *testing.T) {
	m, err := Vectorize([]string{"go go rust", "java", "c", "ruby"})
	require.NoError(t, err)

	idf := math.Log(4.0 / 2.0)
	assert.InDelta(t, (2.0/3.0)*idf, m.Vectors[0][m.Index["go"]], 1e-12)
	assert.InDelta(t, (1.0/3.0)*idf, m.Vectors[0][m.Index["rust"]], 1e-12)
}

func TestVectorizeNegativeIDFPreserved(t *testing.T) {
	// "python" is in all 3 documents: idf = ln(3/4) < 0.
	m, err := Vectorize([]string{"python", "python sql", "python"})
	require.NoError(t, err)

	w := m.Vectors[0][m.Index["python"]]
	assert.Less(t, w, 0.0)
	assert.InDelta(t, math.Log(3.0/4.0), w, 1e-12)
}

func TestVectorizeSingleDocument(t *testing.T) {
	m, err := Vectorize([]string{"python"})
	require.NoError(t, err)

	require.Len(t, m.Vectors, 1)
	assert.InDelta(t, math.Log(0.5), m.Vectors[0][0], 1e-12)
}

func TestVectorizeAllEmptyDocuments(t *testing.T) {
	m, err := Vectorize([]string{"", "  ", ""})
	require.NoError(t, err)

	assert.Empty(t, m.Vocabulary)
	require.Len(t, m.Vectors, 3)
	for _, v := range m.Vectors {
		assert.Len(t, v, 0)
	}
}

func TestVectorizeEmptyDocumentYieldsZeroVector(t *testing.T) {
	m, err := Vectorize([]string{"python", "", "sql"})
	require.NoError(t, err)

	for _, w := range m.Vectors[1] {
		assert.Zero(t, w)
	}
}
