package ordering

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/menu-admin-api/internal/domain"
)

const (
	prefixLayout = "060102" // YYMMDD
	seqDigits    = 4
	maxSequence  = 9999
)

// DatePrefix devuelve el prefijo YYMMDD del día de t en la zona horaria del negocio.
func DatePrefix(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(prefixLayout)
}

// DayBounds devuelve [inicio, fin) del día calendario de t en loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	lt := t.In(loc)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// NextNumber calcula el siguiente número de pedido del día a partir del último emitido.
// last vacío (o de otro día) inicia la secuencia en 0001.
// Pasado 9999 no hay más números para el día: ErrOrderNumberExhausted.
func NextNumber(prefix, last string) (string, error) {
	seq := 1
	if last != "" && strings.HasPrefix(last, prefix) && len(last) >= len(prefix)+seqDigits {
		n, err := strconv.Atoi(last[len(last)-seqDigits:])
		if err == nil {
			seq = n + 1
		}
	}
	if seq > maxSequence {
		return "", domain.ErrOrderNumberExhausted
	}
	return fmt.Sprintf("%s%0*d", prefix, seqDigits, seq), nil
}
