package archivo

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"

	"github.com/ucarion/c14n"
)

// HuellaXML calcula el SHA-256 del documento canónico, para que el mismo
// contenido con distinto espaciado o orden de atributos dé la misma huella.
// Si la canonicalización falla se hashea el contenido crudo.
func HuellaXML(datos []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(datos))
	dec.Entity = map[string]string{}
	canonico, err := c14n.Canonicalize(dec)
	if err != nil {
		canonico = datos
	}
	return huella(canonico)
}

// HuellaTXT calcula el SHA-256 del contenido tal cual llegó.
func HuellaTXT(datos []byte) string {
	return huella(datos)
}

func huella(datos []byte) string {
	suma := sha256.Sum256(datos)
	return hex.EncodeToString(suma[:])
}
