package procesamiento

import "github.com/vatco/ingesta-servicios/internal/application/dto"

// desenlaceRegistro es lo que el informe muestra de cada registro: el estado
// final, la orden asignada y el motivo cuando hubo rechazo.
type desenlaceRegistro struct {
	estado string
	orden  string
	motivo string
}

// desenlaces indexa el resultado del archivo por índice de registro.
func desenlaces(resultado *dto.ResultadoArchivo) map[int]desenlaceRegistro {
	porIndice := make(map[int]desenlaceRegistro, resultado.TotalRegistros())
	for _, a := range resultado.Aceptados {
		estado := dto.EstadoReporteInsertado
		if a.Simulado {
			estado = dto.EstadoReporteSimulado
		}
		porIndice[a.Indice] = desenlaceRegistro{estado: estado, orden: a.Orden}
	}
	for _, r := range resultado.Rechazados {
		porIndice[r.Indice] = desenlaceRegistro{estado: dto.EstadoReporteRechazado, motivo: r.Motivo}
	}
	return porIndice
}

// lineasRespuesta traduce el resultado al formato del archivo de respuesta:
// una línea por registro con su identificador y el estado 1 o 2.
func lineasRespuesta(resultado *dto.ResultadoArchivo) []dto.LineaRespuesta {
	lineas := make([]dto.LineaRespuesta, 0, resultado.TotalRegistros())
	for _, a := range resultado.Aceptados {
		lineas = append(lineas, dto.LineaRespuesta{ID: a.ID, Estado: dto.EstadoRespuestaAceptada})
	}
	for _, r := range resultado.Rechazados {
		lineas = append(lineas, dto.LineaRespuesta{ID: r.ID, Estado: dto.EstadoRespuestaRechazada})
	}
	return lineas
}
