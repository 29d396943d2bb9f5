package dto

import "github.com/vatco/ingesta-servicios/internal/domain/entity"

// RegistroMapeado es la pareja servicio+transacción lista para registrar.
// Denominaciones guarda el valor monetario por denominación de los elementos
// XML, con las claves de entity.ColumnasDenominacion; para los pedidos TXT
// queda nil porque el informe usa las gavetas crudas.
type RegistroMapeado struct {
	Indice         int
	ID             string
	Servicio       *entity.Servicio
	Transaccion    *entity.Transaccion
	Denominaciones map[string]int64
}
