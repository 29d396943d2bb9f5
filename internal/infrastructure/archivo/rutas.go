// Package archivo implementa la capa de archivos de la interfaz: lectura de
// los TXT y XML del banco, archivos de respuesta, movimiento entre carpetas y
// vigilancia de las carpetas de entrada.
package archivo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Rutas centraliza las carpetas de trabajo. Los TXT y los XML comparten la
// carpeta de respuestas; el resto es por tipo de archivo.
type Rutas struct {
	EntradaTXT     string
	SalidaTXT      string
	RespuestaTXT   string
	GestionadosTXT string
	ErroresTXT     string

	EntradaXML     string
	SalidaXML      string
	GestionadosXML string
	ErroresXML     string
}

// Todas lista las carpetas para crearlas al arranque.
func (r Rutas) Todas() []string {
	return []string{
		r.EntradaTXT, r.SalidaTXT, r.RespuestaTXT, r.GestionadosTXT, r.ErroresTXT,
		r.EntradaXML, r.SalidaXML, r.GestionadosXML, r.ErroresXML,
	}
}

// AsegurarDirectorios crea las carpetas que falten. Las vacías se ignoran.
func AsegurarDirectorios(carpetas ...string) error {
	for _, c := range carpetas {
		if c == "" {
			continue
		}
		if err := os.MkdirAll(c, 0o755); err != nil {
			return fmt.Errorf("crear carpeta %s: %w", c, err)
		}
	}
	return nil
}

// Mover lleva un archivo a la carpeta destino y devuelve la ruta final. Si ya
// existe un archivo con el mismo nombre se agrega una marca de tiempo; un
// rename fallido entre sistemas de archivos cae a copiar y borrar.
func Mover(ruta, carpeta string) (string, error) {
	if err := os.MkdirAll(carpeta, 0o755); err != nil {
		return "", fmt.Errorf("crear carpeta %s: %w", carpeta, err)
	}
	destino := filepath.Join(carpeta, filepath.Base(ruta))
	if _, err := os.Stat(destino); err == nil {
		ext := filepath.Ext(destino)
		base := strings.TrimSuffix(filepath.Base(ruta), ext)
		destino = filepath.Join(carpeta, fmt.Sprintf("%s_%s%s", base, time.Now().Format("20060102_150405"), ext))
	}
	if err := os.Rename(ruta, destino); err == nil {
		return destino, nil
	}
	if err := copiar(ruta, destino); err != nil {
		return "", err
	}
	if err := os.Remove(ruta); err != nil {
		return "", fmt.Errorf("eliminar original %s: %w", ruta, err)
	}
	return destino, nil
}

// Gestor expone la lectura, el listado y el movimiento de archivos a los
// procesadores.
type Gestor struct{}

func NewGestor() *Gestor {
	return &Gestor{}
}

func (*Gestor) Leer(ruta string) ([]byte, error) {
	return os.ReadFile(ruta)
}

// Listar devuelve las rutas de la carpeta con la extensión dada, sin
// distinguir mayúsculas, ordenadas por nombre.
func (*Gestor) Listar(carpeta, extension string) ([]string, error) {
	entradas, err := os.ReadDir(carpeta)
	if err != nil {
		return nil, fmt.Errorf("listar %s: %w", carpeta, err)
	}
	var rutas []string
	for _, entrada := range entradas {
		if entrada.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entrada.Name()), extension) {
			continue
		}
		rutas = append(rutas, filepath.Join(carpeta, entrada.Name()))
	}
	sort.Strings(rutas)
	return rutas, nil
}

func (*Gestor) Mover(ruta, carpeta string) (string, error) {
	return Mover(ruta, carpeta)
}

func copiar(origen, destino string) error {
	in, err := os.Open(origen)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", origen, err)
	}
	defer in.Close()

	out, err := os.Create(destino)
	if err != nil {
		return fmt.Errorf("crear %s: %w", destino, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copiar %s: %w", origen, err)
	}
	return out.Close()
}
