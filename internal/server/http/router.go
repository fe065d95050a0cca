package httpserver

import "net/http"

// Server 把 /api/* 和静态页面挂到同一个 mux 上。
type Server struct {
	mux *http.ServeMux
}

// NewServer mounts the API and, when webDir is set, the external view's
// static files.
func NewServer(h *Handler, webDir string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/api/", h)
	if webDir != "" {
		RegisterStaticRoutes(mux, webDir)
	}
	return &Server{mux: mux}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
