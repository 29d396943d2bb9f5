package archivo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vatco/ingesta-servicios/internal/application/dto"
)

// EscritorRespuesta genera los archivos de respuesta TR2_VATCO que el banco
// recoge para conocer la suerte de cada pedido.
type EscritorRespuesta struct {
	carpeta string
}

func NewEscritorRespuesta(carpeta string) *EscritorRespuesta {
	return &EscritorRespuesta{carpeta: carpeta}
}

// Escribir crea TR2_VATCO_<cc><aammddhhmmss>.txt con una línea id,estado por
// registro, ordenadas por id. El cc y la marca de tiempo salen del nombre del
// archivo original; un cc vacío se extrae del nombre.
func (e *EscritorRespuesta) Escribir(nombreOriginal, cc string, lineas []dto.LineaRespuesta) (string, error) {
	if len(lineas) == 0 {
		return "", fmt.Errorf("respuesta de %s sin líneas", nombreOriginal)
	}
	if err := os.MkdirAll(e.carpeta, 0o755); err != nil {
		return "", fmt.Errorf("crear carpeta %s: %w", e.carpeta, err)
	}
	if cc == "" {
		cc = CCDeNombre(nombreOriginal)
	}

	ordenadas := make([]dto.LineaRespuesta, len(lineas))
	copy(ordenadas, lineas)
	sort.Slice(ordenadas, func(i, j int) bool { return ordenadas[i].ID < ordenadas[j].ID })

	var b strings.Builder
	for _, l := range ordenadas {
		b.WriteString(l.ID)
		b.WriteString(",")
		b.WriteString(l.Estado)
		b.WriteString("\n")
	}

	nombre := fmt.Sprintf("TR2_VATCO_%s%s.txt", cc, marcaDeNombre(nombreOriginal))
	ruta := filepath.Join(e.carpeta, nombre)
	if err := os.WriteFile(ruta, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("escribir respuesta %s: %w", ruta, err)
	}
	return ruta, nil
}

// CCDeNombre extrae el código CC del nombre del archivo original, con formato
// ICOREX_C4U-<cc>-..._..._<fecha>_<hora>.ext. Si el nombre no trae el
// segmento C4U devuelve "00".
func CCDeNombre(nombre string) string {
	partes := strings.Split(nombre, "_")
	if len(partes) > 1 && strings.HasPrefix(partes[1], "C4U-") {
		resto := strings.TrimPrefix(partes[1], "C4U-")
		if len(resto) >= 2 && esDigito(resto[0]) && esDigito(resto[1]) {
			return resto[:2]
		}
	}
	return "00"
}

// marcaDeNombre arma la marca aammddhhmmss con la fecha y la hora que trae el
// nombre del archivo original; si no se pueden leer usa el reloj.
func marcaDeNombre(nombre string) string {
	partes := strings.Split(nombre, "_")
	if len(partes) >= 5 {
		fecha := partes[3]
		hora := soloDigitos(strings.SplitN(partes[4], ".", 2)[0])
		switch {
		case len(hora) == 4:
			hora += "00"
		case len(hora) > 6:
			hora = hora[:6]
		}
		if len(fecha) == 8 && len(hora) == 6 {
			if t, err := time.Parse("20060102150405", fecha+hora); err == nil {
				return t.Format("060102150405")
			}
		}
	}
	return time.Now().Format("060102150405")
}

func esDigito(b byte) bool {
	return b >= '0' && b <= '9'
}

func soloDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
