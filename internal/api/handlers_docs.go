package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// handleListDocuments lists parsed documents persisted at the top level of
// the output directory. Uploads are stored under their sanitized base name,
// so everything the server writes is listed here; nested trees produced by
// batch runs are not served over the API.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	if s.cfg.OutputDir == "" {
		jsonError(w, "document storage not configured", http.StatusServiceUnavailable)
		return
	}

	entries, err := os.ReadDir(s.cfg.OutputDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusInternalServerError)
		return
	}

	docs := []map[string]any{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		docs = append(docs, map[string]any{
			"name":        e.Name(),
			"size_bytes":  info.Size(),
			"modified_at": info.ModTime().UTC().Format(time.RFC3339),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": docs})
}

// handleGetDocument serves one persisted document by name.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	path, ok := s.documentPath(w, chi.URLParam(r, "name"))
	if !ok {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			jsonError(w, "document not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to read document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// handleDeleteDocument removes one persisted document by name.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	path, ok := s.documentPath(w, chi.URLParam(r, "name"))
	if !ok {
		return
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			jsonError(w, "document not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to delete document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": true})
}

// documentPath resolves a document name to a path inside the output
// directory, writing the error response itself when the name is rejected.
func (s *Server) documentPath(w http.ResponseWriter, name string) (string, bool) {
	if s.cfg.OutputDir == "" {
		jsonError(w, "document storage not configured", http.StatusServiceUnavailable)
		return "", false
	}
	name = filepath.Base(name)
	if !strings.HasSuffix(name, ".json") || name == ".json" {
		jsonError(w, fmt.Sprintf("invalid document name: %s", name), http.StatusBadRequest)
		return "", false
	}
	return filepath.Join(s.cfg.OutputDir, name), true
}
