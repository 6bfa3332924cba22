package payment

// Allocation número de pago asignado y estado siguiente de la secuencia de la empresa.
type Allocation struct {
	PaymentNo int
	NextSeq   int
	Year      int
	Reset     bool // el año cambió y la numeración volvió a 1
}

// AllocateSequence asigna el siguiente número de pago para (empresa, año).
// currentSeq es el próximo número a usar en lastYear. Si el año del pago difiere de
// lastYear la numeración reinicia en 1. Debe llamarse con la fila de la empresa bloqueada.
func AllocateSequence(currentSeq, lastYear, year int) Allocation {
	if lastYear != year {
		return Allocation{PaymentNo: 1, NextSeq: 2, Year: year, Reset: lastYear != 0}
	}
	no := currentSeq
	if no < 1 {
		no = 1
	}
	return Allocation{PaymentNo: no, NextSeq: no + 1, Year: year}
}
