package finance

import (
	"fmt"
	"time"
)

// Formato de mes usado como clave de los snapshots de KPIs.
const MonthFormat = "2006-01"

// MonthYear identifica un mes calendario en formato YYYY-MM.
type MonthYear string

// MonthOf devuelve el mes calendario al que pertenece una fecha.
func MonthOf(t time.Time) MonthYear {
	return MonthYear(t.Format(MonthFormat))
}

// ParseMonth valida una cadena YYYY-MM.
func ParseMonth(s string) (MonthYear, error) {
	if _, err := time.Parse(MonthFormat, s); err != nil {
		return "", fmt.Errorf("mes inválido %q: se espera YYYY-MM", s)
	}
	return MonthYear(s), nil
}

// Prev devuelve el mes calendario inmediatamente anterior.
func (m MonthYear) Prev() MonthYear {
	t, err := time.Parse(MonthFormat, string(m))
	if err != nil {
		return m
	}
	return MonthYear(t.AddDate(0, -1, 0).Format(MonthFormat))
}

// Bounds devuelve el primer día del mes y el primer día del mes siguiente
// (intervalo semiabierto [start, end) para consultas por rango de fechas).
func (m MonthYear) Bounds() (start, end time.Time, err error) {
	start, err = time.Parse(MonthFormat, string(m))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("mes inválido %q: %w", m, err)
	}
	return start, start.AddDate(0, 1, 0), nil
}

func (m MonthYear) String() string { return string(m) }
