package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docfields/internal/export"
	"github.com/dgallion1/docfields/internal/parser"
	"github.com/dgallion1/docfields/internal/pipeline"
	"github.com/dgallion1/docfields/internal/render"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var formats = map[string]bool{"json": true, "markdown": true, "html": true, "xlsx": true}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		jsonError(w, "filename is required", http.StatusBadRequest)
		return
	}
	kind := parser.Classify(filename)
	resp := map[string]any{
		"filename": filename,
		"kind":     kind,
	}
	if kind == parser.KindUnknown {
		resp["choices"] = parser.Choices
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "json"
	}
	if !formats[format] {
		jsonError(w, fmt.Sprintf("unsupported format: %s", format), http.StatusBadRequest)
		return
	}

	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	kind := parser.KindUnknown
	if v := r.FormValue("kind"); v != "" {
		k, err := parser.ParseKind(v)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		kind = k
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if kind == parser.KindUnknown && parser.Classify(filename) == parser.KindUnknown {
		needKind(w, filename)
		return
	}

	// The stored copy keeps the upload's name: classification and the
	// text extractor both look at it.
	dir, err := os.MkdirTemp("", "docfields-*")
	if err != nil {
		jsonError(w, "failed to store upload", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, filename)

	if status, err := saveUpload(path, file, s.cfg.MaxUploadBytes); err != nil {
		jsonError(w, err.Error(), status)
		return
	}

	res, err := s.svc.Extract(path, kind)
	var extractErr *parser.ExtractionError
	switch {
	case errors.Is(err, pipeline.ErrNeedKind):
		needKind(w, filename)
		return
	case errors.As(err, &extractErr):
		jsonError(w, fmt.Sprintf("cannot read %s: %v", filename, extractErr.Err), http.StatusUnprocessableEntity)
		return
	case err != nil:
		s.log.Error("extract failed", "file", filename, "error", err)
		jsonError(w, "extraction failed", http.StatusInternalServerError)
		return
	}

	s.writeResult(w, res, format)
}

func (s *Server) writeResult(w http.ResponseWriter, res *pipeline.Result, format string) {
	opts := render.DefaultOptions()
	opts.LongText = s.cfg.LongFieldChars

	switch format {
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, render.Markdown(render.Build(res.Record, opts)))
	case "html":
		out, err := render.HTML(render.Build(res.Record, opts))
		if err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, out)
	case "xlsx":
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s.xlsx"`, strings.TrimSuffix(res.File, filepath.Ext(res.File))))
		if err := export.WriteXLSX(w, res.Record); err != nil {
			s.log.Error("xlsx export failed", "extraction_id", res.ID, "error", err)
		}
	default:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":          res.ID,
			"file":        res.File,
			"kind":        res.Kind,
			"fallback":    res.Fallback,
			"duration_ms": res.DurationMs(),
			"record":      res.Record,
		})
	}
}

// saveUpload copies at most limit bytes to path.
func saveUpload(path string, src io.Reader, limit int64) (int, error) {
	dst, err := os.Create(path)
	if err != nil {
		return http.StatusInternalServerError, errors.New("failed to store upload")
	}
	defer dst.Close()

	n, err := io.Copy(dst, io.LimitReader(src, limit+1))
	if err != nil {
		return http.StatusInternalServerError, errors.New("failed to read file")
	}
	if n > limit {
		return http.StatusRequestEntityTooLarge, fmt.Errorf("file exceeds max size (%d bytes)", limit)
	}
	return 0, nil
}

func needKind(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(map[string]any{
		"error":   fmt.Sprintf("cannot tell the document kind of %s; resend with kind", filename),
		"choices": parser.Choices,
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
