package procesamiento

import (
	"strings"
	"time"

	"github.com/vatco/ingesta-servicios/internal/application/dto"
	"github.com/vatco/ingesta-servicios/internal/application/mapeo"
	"github.com/vatco/ingesta-servicios/internal/domain/entity"
)

// armarReporteXML arma la entrada del informe XLSX de un documento XML: las
// órdenes en la hoja de provisión y las remesas en la de recolección, cada
// fila con el desenlace de su registro.
func armarReporteXML(ref *entity.Referencias, archivo *dto.ArchivoXML, nombre string, resultado *dto.ResultadoArchivo) *dto.ReporteXML {
	reporte := &dto.ReporteXML{Archivo: nombre, Huella: archivo.Huella}
	porIndice := desenlaces(resultado)
	for _, elem := range archivo.Elementos {
		fila := filaElemento(ref, elem)
		if d, ok := porIndice[elem.Indice]; ok {
			fila.Estado, fila.Orden, fila.Motivo = d.estado, d.orden, d.motivo
		}
		if elem.Tipo == dto.ElementoOrder {
			reporte.Provision = append(reporte.Provision, fila)
		} else {
			reporte.Recoleccion = append(reporte.Recoleccion, fila)
		}
	}
	return reporte
}

// filaElemento decora un order o remit con el snapshot y sus denominaciones.
// La resolución del punto usa la misma cadena que el mapeo, para que el
// informe y el registro nunca discrepen sobre un mismo elemento.
func filaElemento(ref *entity.Referencias, elem dto.ElementoXML) dto.FilaReporteXML {
	fila := dto.FilaReporteXML{
		ID:             elem.ID,
		DeliveryDate:   elem.DeliveryDate,
		OrderDate:      elem.OrderDate,
		PickupDate:     elem.PickupDate,
		FechaEntrega:   fechaEntrega(elem.DeliveryDate),
		Rango:          rangoEntrega(elem),
		Entidad:        dto.TextoClienteNoEncontrado,
		Codigo:         elem.EntityReferenceID,
		NombrePunto:    dto.TextoPuntoNoEncontrado,
		TipoServicio:   "NORMAL",
		Transportadora: strings.ToUpper(strings.TrimSpace(elem.PrimaryTransport)),
		Ciudad:         dto.TextoCiudadNoEncontrada,
		Denominaciones: mapeo.DenominacionesPorColumna(elem.Denominaciones),
	}
	if elem.EsEmergencia() {
		fila.TipoServicio = "EMERGENCIA"
	}
	if punto, err := mapeo.ResolverPunto(ref, elem.EntityReferenceID); err == nil {
		fila.NombrePunto = punto.Nombre
		fila.Ciudad = punto.Ciudad
		if cliente, err := ref.Cliente(punto.CodCliente); err == nil {
			fila.Entidad = cliente.Nombre
		}
	}
	for _, monto := range fila.Denominaciones {
		fila.Total += monto
	}
	return fila
}

// rangoEntrega calcula la celda RANGO: cuando la solicitud y la entrega caen
// el mismo día y la entrega trae hora, muestra esa hora; si no, el número de
// ruta de la orden o el centro de costo de la remesa.
func rangoEntrega(elem dto.ElementoXML) string {
	solicitud := elem.OrderDate
	respaldo := elem.RoutingNumber
	if elem.Tipo == dto.ElementoRemit {
		solicitud = elem.PickupDate
		respaldo = elem.CostCenter
	}
	entrega := soloFecha(elem.DeliveryDate)
	if entrega != "" && soloFecha(solicitud) == entrega {
		if _, hora, ok := strings.Cut(elem.DeliveryDate, "T"); ok {
			if len(hora) > 5 {
				hora = hora[:5]
			}
			return hora
		}
	}
	return respaldo
}

// soloFecha recorta un timestamp ISO a su parte de fecha.
func soloFecha(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// fechaEntrega convierte la fecha de entrega ISO a dd/MM/yyyy; deja el valor
// recortado tal cual cuando no parsea.
func fechaEntrega(deliveryDate string) string {
	fecha := soloFecha(deliveryDate)
	if fecha == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", fecha)
	if err != nil {
		return fecha
	}
	return t.Format("02/01/2006")
}
