package archivo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vatco/ingesta-servicios/internal/infrastructure/archivo"
)

func crearArchivo(t *testing.T, ruta, contenido string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(ruta), 0o755))
	require.NoError(t, os.WriteFile(ruta, []byte(contenido), 0o644))
}

func TestGestor_ListarFiltraYOrdena(t *testing.T) {
	dir := t.TempDir()
	crearArchivo(t, filepath.Join(dir, "b.TXT"), "b")
	crearArchivo(t, filepath.Join(dir, "a.txt"), "a")
	crearArchivo(t, filepath.Join(dir, "c.xml"), "c")
	crearArchivo(t, filepath.Join(dir, "notas"), "n")
	crearArchivo(t, filepath.Join(dir, "sub", "d.txt"), "d")

	rutas, err := archivo.NewGestor().Listar(dir, ".txt")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.TXT"),
	}, rutas, "solo archivos de la carpeta con la extensión pedida, sin distinguir mayúsculas")
}

func TestGestor_ListarCarpetaInexistente(t *testing.T) {
	_, err := archivo.NewGestor().Listar(filepath.Join(t.TempDir(), "no-existe"), ".txt")
	require.Error(t, err)
}

func TestGestor_Leer(t *testing.T) {
	ruta := filepath.Join(t.TempDir(), "pedido.txt")
	crearArchivo(t, ruta, "contenido")

	datos, err := archivo.NewGestor().Leer(ruta)
	require.NoError(t, err)
	assert.Equal(t, "contenido", string(datos))
}

func TestMover_CreaElDestino(t *testing.T) {
	dir := t.TempDir()
	origen := filepath.Join(dir, "entrada", "pedido.txt")
	crearArchivo(t, origen, "contenido")
	carpeta := filepath.Join(dir, "gestionados", "2026")

	ruta, err := archivo.Mover(origen, carpeta)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(carpeta, "pedido.txt"), ruta)

	datos, err := os.ReadFile(ruta)
	require.NoError(t, err)
	assert.Equal(t, "contenido", string(datos))

	_, err = os.Stat(origen)
	assert.True(t, os.IsNotExist(err), "el original no debe quedar en la carpeta de entrada")
}

func TestMover_ColisionAgregaMarcaDeTiempo(t *testing.T) {
	dir := t.TempDir()
	origen := filepath.Join(dir, "entrada", "pedido.txt")
	crearArchivo(t, origen, "nuevo")
	carpeta := filepath.Join(dir, "gestionados")
	crearArchivo(t, filepath.Join(carpeta, "pedido.txt"), "viejo")

	ruta, err := archivo.Mover(origen, carpeta)
	require.NoError(t, err)

	assert.Regexp(t, `^pedido_\d{8}_\d{6}\.txt$`, filepath.Base(ruta),
		"con el nombre ocupado se agrega la marca de tiempo")

	datos, err := os.ReadFile(ruta)
	require.NoError(t, err)
	assert.Equal(t, "nuevo", string(datos))

	datos, err = os.ReadFile(filepath.Join(carpeta, "pedido.txt"))
	require.NoError(t, err)
	assert.Equal(t, "viejo", string(datos), "el archivo que ya estaba no se pisa")
}

func TestAsegurarDirectorios(t *testing.T) {
	dir := t.TempDir()
	anidada := filepath.Join(dir, "salida", "reportes")

	require.NoError(t, archivo.AsegurarDirectorios(anidada, "", filepath.Join(dir, "errores")))
	require.NoError(t, archivo.AsegurarDirectorios(anidada), "repetir la creación no falla")

	info, err := os.Stat(anidada)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRutas_Todas(t *testing.T) {
	rutas := archivo.Rutas{
		EntradaTXT:     "e1",
		SalidaTXT:      "s1",
		RespuestaTXT:   "r1",
		GestionadosTXT: "g1",
		ErroresTXT:     "x1",
		EntradaXML:     "e2",
		SalidaXML:      "s2",
		GestionadosXML: "g2",
		ErroresXML:     "x2",
	}
	assert.Len(t, rutas.Todas(), 9)
	assert.Contains(t, rutas.Todas(), "r1")
}
