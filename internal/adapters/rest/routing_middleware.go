package rest

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// PreflightMiddleware отвечает 200 с пустым телом на любой OPTIONS, не доходя до роутинга.
// Полноценные CORS preflight-запросы перехватывает cors.Handler раньше.
func PreflightMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// DefaultCORSHeaders выставляет разрешающие CORS-заголовки на запросы без Origin,
// которые cors.Handler пропускает без заголовков. Действует только при разрешенном "*".
func DefaultCORSHeaders(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !slices.Contains(allowedOrigins, "*") {
			return next
		}
		methods := strings.Join(corsAllowedMethods, ", ")
		headers := strings.Join(corsAllowedHeaders, ", ")

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if h.Get("Access-Control-Allow-Origin") == "" {
				h.Set("Access-Control-Allow-Origin", "*")
				h.Set("Access-Control-Allow-Methods", methods)
				h.Set("Access-Control-Allow-Headers", headers)
				if r.Method == http.MethodOptions {
					h.Set("Access-Control-Max-Age", strconv.Itoa(corsMaxAge))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AllowMethods возвращает 405 для методов вне списка, независимо от пути.
func AllowMethods(methods ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		allowed[m] = struct{}{}
	}
	allowHeader := strings.Join(methods, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := allowed[r.Method]; !ok {
				w.Header().Set("Allow", allowHeader)
				WriteJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// StripBasePath убирает префикс публикации из пути перед роутингом.
// Пути без префикса маршрутизируются как есть.
func StripBasePath(basePath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if basePath == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rctx := chi.RouteContext(r.Context())
			path := routePath(r, rctx)

			if path == basePath || strings.HasPrefix(path, basePath+"/") {
				newPath := strings.TrimPrefix(path, basePath)
				if newPath == "" {
					newPath = "/"
				}
				if rctx != nil {
					rctx.RoutePath = newPath
				} else {
					r.URL.Path = newPath
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// routePath повторяет выбор пути в chi: RoutePath, затем RawPath, затем Path.
func routePath(r *http.Request, rctx *chi.Context) string {
	if rctx != nil && rctx.RoutePath != "" {
		return rctx.RoutePath
	}
	if r.URL.RawPath != "" {
		return r.URL.RawPath
	}
	return r.URL.Path
}
