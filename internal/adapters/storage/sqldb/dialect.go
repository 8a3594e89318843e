package sqldb

import (
	"database/sql"
	"strconv"
	"strings"
)

// Dialect agrupa lo que cambia entre motores. Las queries de este paquete
// se escriben con '?' y se reescriben con Rebind.
type Dialect struct {
	Name string

	// Numbered: placeholders $1, $2... (Postgres). Si es false se deja '?'.
	Numbered bool

	// ForUpdate se agrega a los SELECT que bloquean fila dentro del workflow.
	// SQLite no lo soporta: ahí serializa el BEGIN IMMEDIATE.
	ForUpdate string

	IsUniqueViolation     func(error) bool
	IsForeignKeyViolation func(error) bool

	TxOptions *sql.TxOptions
}

// Rebind reescribe los '?' según el dialecto.
func (d Dialect) Rebind(query string) string {
	if !d.Numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d Dialect) unique(err error) bool {
	return d.IsUniqueViolation != nil && d.IsUniqueViolation(err)
}

func (d Dialect) foreignKey(err error) bool {
	return d.IsForeignKeyViolation != nil && d.IsForeignKeyViolation(err)
}
