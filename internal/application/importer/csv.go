package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/merchmaroc/merchandising-api/internal/domain"
)

// readTable lee un CSV completo y devuelve el header normalizado más las
// filas de datos. Los archivos que no son UTF-8 válido se reinterpretan como
// Windows-1252 (los exports de Excel suelen venir así).
func readTable(r io.Reader) (header []string, rows [][]string, err error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	if len(raw) == 0 {
		return nil, nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	if !utf8.Valid(raw) {
		decoded, _, derr := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
		if derr != nil {
			return nil, nil, fmt.Errorf("%w: codificación no reconocida", domain.ErrInvalidInput)
		}
		raw = decoded
	}

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: CSV mal formado: %v", domain.ErrInvalidInput, err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("%w: el archivo no tiene filas de datos", domain.ErrInvalidInput)
	}

	header = records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	return header, records[1:], nil
}

// columnIndex resuelve la posición de una columna por cualquiera de sus alias
// (el header ya viene en minúsculas). Devuelve -1 si no aparece.
func columnIndex(header []string, aliases ...string) int {
	for i, h := range header {
		for _, a := range aliases {
			if h == a {
				return i
			}
		}
	}
	return -1
}

// field devuelve la celda idx de la fila, recortada; vacío si no existe.
func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
