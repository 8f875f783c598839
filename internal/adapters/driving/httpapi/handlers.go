package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/clamsproject/app-datimex-extraction/internal/adapters/driven/mmif"
	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

// prettyParam asks for indented output; it is not passed to the pipeline.
const prettyParam = "pretty"

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.extraction.Metadata(), isPretty(r.URL.Query()))
}

func (s *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	c, err := mmif.Decode(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	view, err := s.extraction.Annotate(r.Context(), c, parameters(query))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	if s.annotations != nil {
		if err := s.annotations.Save(r.Context(), view); err != nil && !errors.Is(err, domain.ErrNotImplemented) {
			s.log.Warn("view %s not saved: %v", view.ID, err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := mmif.Encode(w, c, isPretty(query)); err != nil {
		s.log.Error("encode response: %v", err)
	}
}

// parameters turns the query string into runtime parameters, keeping the
// first value of each key.
func parameters(query url.Values) domain.Parameters {
	params := make(domain.Parameters, len(query))
	for k, vs := range query {
		if k == prettyParam || len(vs) == 0 {
			continue
		}
		params[k] = vs[0]
	}
	return params
}

func isPretty(query url.Values) bool {
	if _, ok := query[prettyParam]; !ok {
		return false
	}
	v := query.Get(prettyParam)
	return v == "" || v == "true" || v == "1"
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrConfiguration),
		errors.Is(err, domain.ErrNoInputDocuments),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()}, false)
}

func writeJSON(w http.ResponseWriter, status int, v any, pretty bool) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	_ = enc.Encode(v)
}
