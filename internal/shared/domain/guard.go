package domain

import "fmt"

// DependencyGuard describe una relación hija que bloquea el borrado de un
// padre mientras tenga filas dependientes.
type DependencyGuard struct {
	Relation string // nombre legible de la relación, ej. "instituciones"
	Table    string
	FKColumn string
}

// DeleteOutcome es el resultado etiquetado de un borrado protegido.
// Exactamente uno de los tres estados aplica:
//   - Deleted:   la fila fue eliminada.
//   - Blocked:   una relación dependiente impidió el borrado (Relation/Count).
//   - error !=nil (devuelto aparte): fallo inesperado; la fila queda intacta
//     y NUNCA se reintenta el borrado saltándose la comprobación.
type DeleteOutcome struct {
	Deleted  bool
	Blocked  bool
	Relation string
	Count    int64
}

func DeleteDone() DeleteOutcome {
	return DeleteOutcome{Deleted: true}
}

func DeleteBlocked(relation string, count int64) DeleteOutcome {
	return DeleteOutcome{Blocked: true, Relation: relation, Count: count}
}

// BlockedMessage arma el mensaje de validación que se muestra al usuario
// cuando el borrado fue bloqueado.
func (o DeleteOutcome) BlockedMessage() string {
	return fmt.Sprintf("no se puede eliminar: tiene %d registro(s) en %s", o.Count, o.Relation)
}
