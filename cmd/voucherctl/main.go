// Command voucherctl herramientas de operación de Fletes API: extracción offline de
// vouchers, migraciones y emisión de tokens de prueba.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
