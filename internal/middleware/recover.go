package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"pet-adoption-center/internal/platform/httpjson"
	"pet-adoption-center/internal/platform/logger"
)

// Recover reemplaza a chimw.Recoverer: loguea el panic con el logger del
// request y responde el mismo JSON de error que el resto de la API.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.FromContext(r.Context()).Error("panic recovered", map[string]any{
				"panic": fmt.Sprint(rec),
				"stack": string(debug.Stack()),
			})
			httpjson.Error(w, r, fmt.Errorf("panic: %v", rec))
		}()
		next.ServeHTTP(w, r)
	})
}
