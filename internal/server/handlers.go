package server

import (
	"encoding/json"
	"net/http"

	"github.com/koustreak/ddlgen/internal/dialect"
	"github.com/koustreak/ddlgen/internal/errs"
	"github.com/koustreak/ddlgen/internal/filestore"
	"github.com/koustreak/ddlgen/internal/generator"
	"github.com/koustreak/ddlgen/internal/request"
)

type dialectInfo struct {
	Name    string `json:"name"`
	Flavor  string `json:"flavor"`
	Generic bool   `json:"generic"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleDialects(w http.ResponseWriter, _ *http.Request) {
	all := dialect.All()
	out := make([]dialectInfo, 0, len(all))
	for _, d := range all {
		f, _ := d.Flavor()
		generic, _ := d.IsGeneric()
		out = append(out, dialectInfo{Name: d.String(), Flavor: string(f), Generic: generic})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleRender decodes a request.Request from JSON and returns the rendered
// SQL as text/plain. With ?upload=bucket/key and a configured store the SQL
// is also published, and the object location is returned in X-Ddl-Object.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req request.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errs.KindOf(err) == errs.ErrKindUnknown {
			err = errs.Wrap(errs.ErrKindInvalidInput, "decode request body", err)
		}
		s.writeError(w, err)
		return
	}
	if len(req.Tables) == 0 {
		s.writeError(w, errs.New(errs.ErrKindInvalidInput, "request: no tables"))
		return
	}

	d, conn, err := req.Resolve(s.cfg.Profiles)
	if err != nil {
		s.writeError(w, err)
		return
	}
	gen, err := generator.New(d, conn, generator.WithLogger(s.log))
	if err != nil {
		s.writeError(w, err)
		return
	}
	sql, err := gen.BuildAll(req.Tables)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if target := r.URL.Query().Get("upload"); target != "" {
		if s.cfg.Store == nil {
			s.writeError(w, errs.New(errs.ErrKindInvalidInput, "upload requested but no object store is configured"))
			return
		}
		loc, err := filestore.ParseLocation(target, s.cfg.DefaultBucket)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if _, err := filestore.Publish(r.Context(), s.cfg.Store, loc, sql); err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("X-Ddl-Object", loc.String())
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(sql))
}

func statusFor(kind errs.ErrKind) int {
	switch kind {
	case errs.ErrKindUnsupportedDialect, errs.ErrKindInvalidConnectionConfig,
		errs.ErrKindRender, errs.ErrKindInvalidInput:
		return http.StatusBadRequest
	case errs.ErrKindNotFound:
		return http.StatusNotFound
	case errs.ErrKindPermissionDenied:
		return http.StatusForbidden
	case errs.ErrKindTimeout:
		return http.StatusGatewayTimeout
	case errs.ErrKindConnectionFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind := errs.KindOf(err)
	status := statusFor(kind)
	if status >= http.StatusInternalServerError {
		s.log.ErrorWith("request failed", err, map[string]interface{}{"kind": kind.String()})
	}
	writeJSON(w, status, errorBody{Error: kind.String(), Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
