package storage

import "errors"

// Errores comunes que devuelven todos los adapters de storage (memory, sqldb).
// Los services nunca comparan mensajes: usan errors.Is contra estos sentinels.
var (
	ErrNotFound = errors.New("storage: not found")

	// ErrConflict cubre violaciones de unicidad (email, adopción activa por mascota)
	// y borrados bloqueados por referencias (FK).
	ErrConflict = errors.New("storage: conflict")
)
