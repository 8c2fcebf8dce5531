package dto

import "time"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Field campo del borrador rechazado, en errores de validación.
	Field string `json:"field,omitempty"`
}

// HealthResponse GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	// Backend "postgres" o "local".
	Backend string `json:"backend"`
}

const (
	dateLayout      = "2006-01-02"
	timestampLayout = time.RFC3339
)

// FormatDate fecha sin hora (YYYY-MM-DD), como viaja en las columnas date.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// FormatOptionalDate igual que FormatDate; nil devuelve nil.
func FormatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}

// ParseOptionalDate interpreta YYYY-MM-DD en la zona local; vacío devuelve nil.
func ParseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
