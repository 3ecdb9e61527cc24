// Package swaggerkit serves the OpenAPI document and the swagger UI
package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strings"

	"spacebio/internal/platform/logger"
	phttp "spacebio/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.json
var openapi []byte

// Options controls the docs mount
type Options struct {
	Enabled bool
	// TitleSuffix is appended to info.title, e.g. "(staging)"
	TitleSuffix string
	// BasePath is advertised as the server url when the document has none
	BasePath string
}

const docsRoot = "/api/docs"

// Mount serves the UI under /api/docs and the document at /api/docs/doc.json
// the document is rendered once; a broken embed answers 500 instead of failing boot
func Mount(r phttp.Router, o Options) {
	if !o.Enabled {
		return
	}
	if o.BasePath == "" {
		o.BasePath = "/api/v1"
	}
	doc, err := render(openapi, o)
	if err != nil {
		logger.Named("swagger").Error().Err(err).Msg("openapi document is invalid")
	}

	r.Get(docsRoot, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, docsRoot+"/", http.StatusPermanentRedirect)
	})
	r.Get(docsRoot+"/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		if err != nil {
			http.Error(w, "openapi document unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(doc)
	})
	r.Handle(docsRoot+"/*", httpSwagger.Handler(httpSwagger.URL(docsRoot+"/doc.json")))
}

// render decorates the embedded document with the runtime error envelope and defaults
func render(raw []byte, o Options) ([]byte, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if _, ok := doc["openapi"].(string); !ok {
		doc["openapi"] = "3.0.3"
	}
	if _, ok := doc["servers"]; !ok {
		doc["servers"] = []any{map[string]any{"url": o.BasePath}}
	}
	if s := strings.TrimSpace(o.TitleSuffix); s != "" {
		if info, ok := doc["info"].(map[string]any); ok {
			if title, ok := info["title"].(string); ok {
				info["title"] = title + " " + s
			}
		}
	}
	schemas := child(child(doc, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = errorEnvelope
	}
	defaultErrors(doc)
	return json.Marshal(doc)
}

var errorEnvelope = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer"},
		"error":       map[string]any{"type": "string"},
		"field":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	},
	"required": []any{"status_code", "status"},
}

// child returns m[key] as an object, creating it when missing
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

// defaultErrors gives every operation 400 and 500 responses pointing at ErrorResponse
func defaultErrors(doc map[string]any) {
	paths, _ := doc["paths"].(map[string]any)
	for _, p := range paths {
		ops, _ := p.(map[string]any)
		for _, opAny := range ops {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses := child(op, "responses")
			for code, desc := range map[string]string{"400": "Bad Request", "500": "Internal Server Error"} {
				if _, ok := responses[code]; ok {
					continue
				}
				responses[code] = map[string]any{
					"description": desc,
					"content": map[string]any{
						"application/json": map[string]any{
							"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
						},
					},
				}
			}
		}
	}
}
