package procesamiento

import (
	"sync"
	"time"

	"github.com/vatco/ingesta-servicios/internal/application/dto"
)

// EntradaResumen es la línea de un archivo en el resumen de la corrida.
type EntradaResumen struct {
	Archivo    string `json:"archivo"`
	Tipo       string `json:"tipo"`
	Huella     string `json:"huella,omitempty"`
	Aceptados  int    `json:"aceptados"`
	Rechazados int    `json:"rechazados"`
	Error      string `json:"error,omitempty"`
}

// CifrasResumen son los totales acumulados de la corrida.
type CifrasResumen struct {
	Inicio     time.Time `json:"inicio"`
	Archivos   int       `json:"archivos"`
	Fallidos   int       `json:"fallidos"`
	Aceptados  int       `json:"aceptados"`
	Rechazados int       `json:"rechazados"`
}

// Resumen acumula el desenlace de cada archivo procesado. Es seguro para uso
// concurrente: en vigilancia los archivos TXT y XML llegan en paralelo.
type Resumen struct {
	mu       sync.Mutex
	inicio   time.Time
	entradas []EntradaResumen
}

func NewResumen() *Resumen {
	return &Resumen{inicio: time.Now()}
}

// Registrar suma el resultado de un archivo al resumen.
func (r *Resumen) Registrar(res *dto.ResultadoArchivo) {
	entrada := EntradaResumen{
		Archivo:    res.Archivo,
		Tipo:       res.Tipo,
		Huella:     res.Huella,
		Aceptados:  len(res.Aceptados),
		Rechazados: len(res.Rechazados),
	}
	if res.ErrorArchivo != nil {
		entrada.Error = res.ErrorArchivo.Error()
	}
	r.mu.Lock()
	r.entradas = append(r.entradas, entrada)
	r.mu.Unlock()
}

// Cifras devuelve los totales acumulados hasta el momento.
func (r *Resumen) Cifras() CifrasResumen {
	r.mu.Lock()
	defer r.mu.Unlock()
	cifras := CifrasResumen{Inicio: r.inicio, Archivos: len(r.entradas)}
	for _, e := range r.entradas {
		if e.Error != "" {
			cifras.Fallidos++
		}
		cifras.Aceptados += e.Aceptados
		cifras.Rechazados += e.Rechazados
	}
	return cifras
}

// Entradas devuelve una copia de las entradas registradas.
func (r *Resumen) Entradas() []EntradaResumen {
	r.mu.Lock()
	defer r.mu.Unlock()
	entradas := make([]EntradaResumen, len(r.entradas))
	copy(entradas, r.entradas)
	return entradas
}
