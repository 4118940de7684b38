package handler

import (
	"net/http"
	"sync"

	"sigs.k8s.io/yaml"
)

// openAPIDoc serves the embedded OpenAPI document as YAML, and as JSON
// converted on first request.
type openAPIDoc struct {
	rawYAML  []byte
	jsonOnce sync.Once
	jsonSpec []byte
	jsonErr  error
}

func newOpenAPIDoc(spec []byte) *openAPIDoc {
	if len(spec) == 0 {
		return nil
	}
	return &openAPIDoc{rawYAML: spec}
}

func (d *openAPIDoc) json() ([]byte, error) {
	d.jsonOnce.Do(func() {
		d.jsonSpec, d.jsonErr = yaml.YAMLToJSON(d.rawYAML)
	})
	return d.jsonSpec, d.jsonErr
}

// getOpenAPIYAML handles GET /openapi.yaml.
func (s *Server) getOpenAPIYAML(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(s.openapi.rawYAML)
}

// getOpenAPIJSON handles GET /openapi.json.
func (s *Server) getOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	body, err := s.openapi.json()
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(body)
}
