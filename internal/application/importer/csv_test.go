package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchmaroc/merchandising-api/internal/domain"
)

func TestReadTable_NormalizaHeaderAMinusculas(t *testing.T) {
	header, rows, err := readTable(strings.NewReader("Name, EMAIL ,Role\nAnass,anass@samsung.ma,PROMOTER\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "email", "role"}, header)
	require.Len(t, rows, 1)
}

func TestReadTable_QuitaElBOM(t *testing.T) {
	header, _, err := readTable(strings.NewReader("\uFEFFname,email\nAnass,anass@samsung.ma\n"))
	require.NoError(t, err)
	assert.Equal(t, "name", header[0])
}

func TestReadTable_ArchivoVacioFalla(t *testing.T) {
	_, _, err := readTable(strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReadTable_SoloHeaderFalla(t *testing.T) {
	_, _, err := readTable(strings.NewReader("name,email\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReadTable_ReinterpretaWindows1252(t *testing.T) {
	// "Réfrigérateur" con é en Windows-1252 (0xE9): no es UTF-8 válido.
	raw := []byte("name,sku\nR\xe9frig\xe9rateur,RT38\n")
	header, rows, err := readTable(strings.NewReader(string(raw)))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "sku"}, header)
	require.Len(t, rows, 1)
	assert.Equal(t, "Réfrigérateur", rows[0][0])
}

func TestReadTable_FilasConDistintoNumeroDeCampos(t *testing.T) {
	// FieldsPerRecord -1: las filas cortas no rompen la lectura.
	_, rows, err := readTable(strings.NewReader("name,email,role\nAnass,anass@samsung.ma\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 2)
}

func TestColumnIndex_PorAlias(t *testing.T) {
	header := []string{"date", "useremail", "storename"}
	assert.Equal(t, 1, columnIndex(header, "useremail", "user_email", "email"))
	assert.Equal(t, 2, columnIndex(header, "storename", "store_name", "store"))
	assert.Equal(t, -1, columnIndex(header, "tasks"))
}

func TestField_FueraDeRango(t *testing.T) {
	row := []string{" Anass ", "anass@samsung.ma"}
	assert.Equal(t, "Anass", field(row, 0))
	assert.Equal(t, "", field(row, -1))
	assert.Equal(t, "", field(row, 5))
}
