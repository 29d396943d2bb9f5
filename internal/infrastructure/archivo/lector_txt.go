package archivo

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/vatco/ingesta-servicios/internal/application/dto"
	"github.com/vatco/ingesta-servicios/internal/domain"
)

// Columnas esperadas por tipo de registro, incluido el propio tipo.
const (
	columnasTipo1 = 6
	columnasTipo2 = 17
	columnasTipo3 = 8
)

// LectorTXT parsea los archivos planos TIPO 1/2/3 que genera el banco.
type LectorTXT struct{}

func NewLectorTXT() *LectorTXT {
	return &LectorTXT{}
}

// Parsear valida la estructura del archivo y agrupa las líneas TIPO 2 por
// CODIGO en pedidos, conservando el orden de aparición. Un archivo sin
// encabezado o totales, o con líneas de ancho incorrecto, se rechaza
// completo; uno bien formado pero sin líneas TIPO 2 no trae nada procesable.
func (l *LectorTXT) Parsear(datos []byte) (*dto.ArchivoTXT, error) {
	if len(bytes.TrimSpace(datos)) == 0 {
		return nil, &domain.ErrorArchivo{Motivo: "archivo vacío"}
	}
	texto, err := decodificar(datos)
	if err != nil {
		return nil, err
	}

	archivo := &dto.ArchivoTXT{Huella: HuellaTXT(datos)}
	pedidos := make(map[string]*dto.PedidoTXT)
	var orden []string
	vioTipo1, vioTipo3 := false, false

	for i, linea := range strings.Split(texto, "\n") {
		numero := i + 1
		linea = strings.TrimRight(linea, "\r")
		if strings.TrimSpace(linea) == "" {
			continue
		}
		campos := strings.Split(linea, ",")
		for j := range campos {
			campos[j] = strings.TrimSpace(campos[j])
		}
		switch campos[0] {
		case "1":
			if len(campos) != columnasTipo1 {
				return nil, errorColumnas(numero, "TIPO 1", len(campos), columnasTipo1)
			}
			if !vioTipo1 {
				archivo.Encabezado = dto.EncabezadoTXT{
					Interfase:       campos[1],
					Aplicacion:      campos[2],
					FechaGeneracion: campos[3],
					Solicitante:     campos[4],
					NITCliente:      campos[5],
				}
				vioTipo1 = true
			}
		case "2":
			if len(campos) != columnasTipo2 {
				return nil, errorColumnas(numero, "TIPO 2", len(campos), columnasTipo2)
			}
			detalle := dto.LineaTipo2{
				NumeroLinea:   numero,
				Servicio:      campos[1],
				Ciudad:        campos[2],
				Accion:        campos[3],
				FechaServicio: campos[4],
				CodigoPunto:   campos[5],
				NombrePunto:   campos[6],
				Categoria:     campos[7],
				Gaveta:        campos[8],
				Denominacion:  campos[9],
				Cantidad:      campos[10],
				Valor:         campos[11],
				Prioridad:     campos[12],
				TipoRuta:      campos[13],
				TipoPedido:    campos[14],
				TipoValor:     campos[15],
				Codigo:        campos[16],
			}
			if pedido, existe := pedidos[detalle.Codigo]; existe {
				pedido.Gavetas = append(pedido.Gavetas, detalle)
			} else {
				pedidos[detalle.Codigo] = &dto.PedidoTXT{Codigo: detalle.Codigo, Gavetas: []dto.LineaTipo2{detalle}}
				orden = append(orden, detalle.Codigo)
			}
		case "3":
			if len(campos) != columnasTipo3 {
				return nil, errorColumnas(numero, "TIPO 3", len(campos), columnasTipo3)
			}
			archivo.TotalRegistros, _ = strconv.Atoi(campos[6])
			archivo.TotalBilletes, _ = strconv.ParseInt(campos[7], 10, 64)
			vioTipo3 = true
		}
	}

	if falta := seccionFaltante(vioTipo1, vioTipo3); falta != "" {
		return nil, &domain.ErrorArchivo{Motivo: "estructura incompleta: falta " + falta}
	}
	if len(orden) == 0 {
		return nil, fmt.Errorf("sin líneas TIPO 2 que procesar: %w", domain.ErrSinRegistros)
	}

	archivo.Pedidos = make([]dto.PedidoTXT, 0, len(orden))
	for i, codigo := range orden {
		pedido := pedidos[codigo]
		pedido.Indice = i + 1
		pedido.Encabezado = archivo.Encabezado
		archivo.Pedidos = append(archivo.Pedidos, *pedido)
	}
	return archivo, nil
}

func errorColumnas(linea int, tipo string, tiene, espera int) error {
	return &domain.ErrorArchivo{
		Linea:  linea,
		Motivo: tipo + " con " + strconv.Itoa(tiene) + " columnas, se esperaban " + strconv.Itoa(espera),
	}
}

func seccionFaltante(tipo1, tipo3 bool) string {
	switch {
	case !tipo1:
		return "la línea TIPO 1"
	case !tipo3:
		return "la línea TIPO 3"
	}
	return ""
}

// decodificar intenta UTF-8 y cae a Windows-1252, el encoding con el que las
// sucursales aún generan algunos archivos. El BOM se descarta.
func decodificar(datos []byte) (string, error) {
	datos = bytes.TrimPrefix(datos, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(datos) {
		return string(datos), nil
	}
	decodificado, err := charmap.Windows1252.NewDecoder().Bytes(datos)
	if err != nil {
		return "", &domain.ErrorArchivo{Motivo: "contenido ilegible: no es UTF-8 ni Windows-1252"}
	}
	return string(decodificado), nil
}
