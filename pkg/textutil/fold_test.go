package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casavidal/ferreteria-api/pkg/textutil"
)

// TestFold_EliminaAcentosYMayusculas la búsqueda no distingue acentos ni caja.
func TestFold_EliminaAcentosYMayusculas(t *testing.T) {
	assert.Equal(t, "gonzalez", textutil.Fold("González"))
	assert.Equal(t, "maria perez", textutil.Fold("María Pérez"))
	assert.Equal(t, "construccion", textutil.Fold("CONSTRUCCIÓN"))
}

// TestContains_Insensible coincide con y sin diacríticos en ambos lados.
func TestContains_Insensible(t *testing.T) {
	assert.True(t, textutil.Contains("María González", "gonzalez"))
	assert.True(t, textutil.Contains("Jose Ramirez", "ramírez"))
	assert.False(t, textutil.Contains("María González", "martinez"))
}
