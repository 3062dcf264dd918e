package dto

// RejectedRow una fila de CSV descartada durante el mapeo, con su motivo.
// Line es el número de línea en el archivo (el header es la línea 1).
type RejectedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportReport resultado estructurado de un import masivo: cuántas filas se
// aceptaron, cuáles se descartaron y por qué. Reemplaza el descarte silencioso.
type ImportReport struct {
	BatchID  string        `json:"batchId"`
	Entity   string        `json:"entity"`
	Accepted int           `json:"accepted"`
	Rejected []RejectedRow `json:"rejected"`
}
