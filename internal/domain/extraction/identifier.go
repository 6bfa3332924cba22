package extraction

// Offset del identificador de empresa dentro del código de vehículo (0-indexado).
const identifierOffset = 3

// CompanyIdentifier devuelve los 3 caracteres en las posiciones 4–6 del código de vehículo,
// o "" si el código es demasiado corto para contenerlos.
func CompanyIdentifier(vehicleCode string) string {
	if len(vehicleCode) < identifierOffset+3 {
		return ""
	}
	return vehicleCode[identifierOffset : identifierOffset+3]
}
