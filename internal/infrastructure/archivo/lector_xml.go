package archivo

import (
	"bytes"
	"fmt"

	"github.com/beevik/etree"

	"github.com/vatco/ingesta-servicios/internal/application/dto"
	"github.com/vatco/ingesta-servicios/internal/domain"
)

// LectorXML parsea los documentos de órdenes y remesas del banco.
type LectorXML struct{}

func NewLectorXML() *LectorXML {
	return &LectorXML{}
}

// Parsear extrae los elementos order y remit del documento, con sus
// atributos, la entidad hija y todas las denominaciones descendientes. Las
// órdenes van primero y el índice es continuo entre ambos grupos.
func (l *LectorXML) Parsear(datos []byte) (*dto.ArchivoXML, error) {
	if len(bytes.TrimSpace(datos)) == 0 {
		return nil, &domain.ErrorArchivo{Motivo: "archivo vacío"}
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(datos); err != nil {
		return nil, &domain.ErrorArchivo{Motivo: fmt.Sprintf("XML inválido: %v", err)}
	}

	archivo := &dto.ArchivoXML{Huella: HuellaXML(datos)}
	indice := 0
	for _, tipo := range []string{dto.ElementoOrder, dto.ElementoRemit} {
		for _, el := range doc.FindElements("//" + tipo) {
			indice++
			archivo.Elementos = append(archivo.Elementos, leerElemento(el, tipo, indice))
		}
	}
	if len(archivo.Elementos) == 0 {
		return nil, fmt.Errorf("el documento no contiene order ni remit: %w", domain.ErrSinRegistros)
	}
	return archivo, nil
}

func leerElemento(el *etree.Element, tipo string, indice int) dto.ElementoXML {
	elemento := dto.ElementoXML{
		Indice:           indice,
		Tipo:             tipo,
		ID:               el.SelectAttrValue("id", ""),
		DeliveryDate:     el.SelectAttrValue("deliveryDate", ""),
		OrderDate:        el.SelectAttrValue("orderDate", ""),
		PickupDate:       el.SelectAttrValue("pickupDate", ""),
		PrimaryTransport: el.SelectAttrValue("primaryTransport", ""),
		OrderType:        el.SelectAttrValue("orderType", "0"),
		Currency:         el.SelectAttrValue("currency", ""),
	}
	if entidad := el.SelectElement("entity"); entidad != nil {
		elemento.EntityReferenceID = entidad.SelectAttrValue("entityReferenceID", "")
		elemento.RoutingNumber = entidad.SelectAttrValue("routingNumber", "")
		elemento.CostCenter = entidad.SelectAttrValue("costCenter", "")
	}
	for _, denom := range el.FindElements(".//denom") {
		elemento.Denominaciones = append(elemento.Denominaciones, dto.DenominacionXML{
			Code:   denom.SelectAttrValue("code", ""),
			Amount: denom.SelectAttrValue("amount", ""),
		})
	}
	return elemento
}
