// Package mapeo convierte los registros crudos de los archivos del banco en
// parejas servicio+transacción listas para registrar. Cada código se resuelve
// contra el snapshot de referencias; un código irresoluble rechaza el registro,
// nunca se reemplaza por un valor por defecto.
package mapeo

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vatco/ingesta-servicios/internal/domain"
)

// limpiarMonto convierte los montos de los archivos ("$ 100.000", "1,200") a
// entero. El separador de miles puede ser punto o coma; nunca traen decimales.
func limpiarMonto(campo, s string) (int64, error) {
	limpio := strings.NewReplacer("$", "", ".", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	if limpio == "" {
		return 0, &domain.ErrorMapeo{Campo: campo, Motivo: "monto vacío"}
	}
	v, err := strconv.ParseInt(limpio, 10, 64)
	if err != nil {
		return 0, &domain.ErrorMapeo{
			Campo:  campo,
			Motivo: fmt.Sprintf("monto %q no numérico", s),
			Causa:  err,
		}
	}
	return v, nil
}

// codigoEntero convierte un código de referencia a entero.
func codigoEntero(campo, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &domain.ErrorMapeo{
			Campo:  campo,
			Motivo: fmt.Sprintf("código %q no numérico", s),
			Causa:  err,
		}
	}
	return v, nil
}

// numeroServicio extrae el código numérico de la columna SERVICIO, que llega
// como "4 - APROVISIONAMIENTO DE ATM NIVEL 7" o como "4" a secas.
func numeroServicio(s string) (int, error) {
	parte, _, _ := strings.Cut(s, "-")
	return codigoEntero("servicio", parte)
}

// parsearFechaArchivo acepta los dos formatos de fecha de los TXT:
// ddMMyyyy (8 caracteres) y dd/MM/yyyy (10 caracteres).
func parsearFechaArchivo(campo, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var layout string
	switch len(s) {
	case 8:
		layout = "02012006"
	case 10:
		layout = "02/01/2006"
	default:
		return time.Time{}, &domain.ErrorMapeo{
			Campo:  campo,
			Motivo: fmt.Sprintf("fecha %q fuera de formato ddMMyyyy o dd/MM/yyyy", s),
		}
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, &domain.ErrorMapeo{
			Campo:  campo,
			Motivo: fmt.Sprintf("fecha %q inválida", s),
			Causa:  err,
		}
	}
	return t, nil
}

// parsearFechaISO parsea las fechas de los XML. Acepta fecha con hora
// ("2025-05-12T16:40:09", con o sin zona) o solo fecha; devuelve la hora como
// "HH:MM:SS". Una cadena vacía devuelve nil sin error: el campo era opcional.
func parsearFechaISO(campo, s string) (*time.Time, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, "", nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, t.Format("15:04:05"), nil
		}
	}
	return nil, "", &domain.ErrorMapeo{
		Campo:  campo,
		Motivo: fmt.Sprintf("fecha %q fuera de formato ISO", s),
	}
}

// valorDenominacion extrae el valor facial del código de denominación de un
// XML: "50000AD" vale 50000. El sufijo distingue familia de billete, no valor.
func valorDenominacion(code string) (int64, bool) {
	var digitos strings.Builder
	for _, r := range code {
		if r >= '0' && r <= '9' {
			digitos.WriteRune(r)
		}
	}
	if digitos.Len() == 0 {
		return 0, false
	}
	v, err := strconv.ParseInt(digitos.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// normalizarDivisa limpia el atributo currency de los XML; cualquier valor
// que no sea un código de tres caracteres cae a COP.
func normalizarDivisa(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 3 {
		return "COP"
	}
	return s
}

// sinCerosIzquierda normaliza los números de punto de los XML ("0075" → "75")
// para compararlos con los códigos numéricos del snapshot.
func sinCerosIzquierda(s string) string {
	recortado := strings.TrimLeft(strings.TrimSpace(s), "0")
	if recortado == "" && s != "" {
		return "0"
	}
	return recortado
}
