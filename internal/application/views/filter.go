package views

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/jhoicas/bione-api/internal/domain/entity"
)

// Contains compara sin distinguir mayúsculas (case folding Unicode). Un filtro vacío acepta todo.
func Contains(s, filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(s), fold.String(filter))
}

// EqualFold compara dos textos con el mismo case folding que Contains.
func EqualFold(a, b string) bool {
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}

// ContainsAny acepta si alguno de los campos contiene el filtro.
func ContainsAny(filter string, fields ...string) bool {
	if strings.TrimSpace(filter) == "" {
		return true
	}
	for _, f := range fields {
		if Contains(f, filter) {
			return true
		}
	}
	return false
}

// customerNames indexa el nombre a mostrar de cada cliente.
func customerNames(list []entity.Customer) map[int64]string {
	out := make(map[int64]string, len(list))
	for _, c := range list {
		out[c.ID] = c.DisplayName()
	}
	return out
}

func nameOf(names map[int64]string, id int64) string {
	if n, ok := names[id]; ok {
		return n
	}
	return strconv.FormatInt(id, 10)
}

// matchCustomer aplica el alcance de cliente: con selección solo cuenta el id exacto y el
// filtro de texto de cliente se ignora; sin selección se filtra por nombre.
func matchCustomer(sel *entity.Customer, text, name string, id int64) bool {
	if sel != nil {
		return id == sel.ID
	}
	return Contains(name, text)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
