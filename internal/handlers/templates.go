package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"titanicdash/internal/stats"
)

// LoadTemplates parses every page template under templatesPath
func LoadTemplates(templatesPath string) (*template.Template, error) {
	files, err := filepath.Glob(filepath.Join(templatesPath, "*.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found in %s", templatesPath)
	}

	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// renderTemplate executes name into a buffer so a failing template never sends a partial page
func renderTemplate(logger *zap.Logger, tmpl *template.Template, w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		respondWithError(logger, w, http.StatusInternalServerError, ErrInternalServerError, "Error rendering "+name, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// formatDate renders a comment timestamp; stored times are UTC
func formatDate(t time.Time) string {
	return t.UTC().Format("2 Jan 2006 15:04 UTC")
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatCount": stats.FormatCount,
		"formatDate":  formatDate,
		"age": func(v *float64) string {
			if v == nil || math.IsNaN(*v) {
				return "-"
			}
			return strconv.FormatFloat(*v, 'f', -1, 64)
		},
		"fare": func(v *float64) string {
			if v == nil || math.IsNaN(*v) {
				return "-"
			}
			return strconv.FormatFloat(*v, 'f', 2, 64)
		},
		"orDash": func(v *string) string {
			if v == nil || *v == "" {
				return "-"
			}
			return *v
		},
		"panelData": panelData,
		"pageOf": func(format string, page, total int) string {
			return fmt.Sprintf(format, page, total)
		},
	}
}
