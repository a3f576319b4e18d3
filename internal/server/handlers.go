package server

import (
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/saleemkhair/resume-export/internal/compose"
	"github.com/saleemkhair/resume-export/internal/content"
	"github.com/saleemkhair/resume-export/internal/export"
	"github.com/saleemkhair/resume-export/internal/layout"
)

// OutlineResponse describes an export without its bytes.
type OutlineResponse struct {
	Filename string         `json:"filename"`
	Pages    int            `json:"pages"`
	Strategy string         `json:"strategy"`
	Outline  []OutlineEntry `json:"outline"`
}

// OutlineEntry is where one section starts.
type OutlineEntry struct {
	Section string  `json:"section"`
	Page    int     `json:"page"`
	Y       float64 `json:"y_mm"`
	Lines   int     `json:"lines"`
}

// handleExport renders the posted content model and returns the document
// as an attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := s.export(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Bytes)))
	w.Header().Set("X-Resume-Pages", strconv.Itoa(doc.Pages))
	w.Header().Set("X-Resume-Strategy", string(doc.Strategy))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Bytes)
}

// handleOutline renders the posted content model and reports its layout.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	doc, err := s.export(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	resp := OutlineResponse{
		Filename: doc.Filename,
		Pages:    doc.Pages,
		Strategy: string(doc.Strategy),
		Outline:  make([]OutlineEntry, 0, len(doc.Outline)),
	}
	for _, m := range doc.Outline {
		resp.Outline = append(resp.Outline, outlineEntry(m))
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) (*export.Document, error) {
	format, err := requestFormat(r)
	if err != nil {
		return nil, err
	}
	geometry, err := geometryFromQuery(r)
	if err != nil {
		return nil, err
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, &ErrValidation{Field: "body", Message: "content model is required"}
	}

	model, err := content.Parse(body, format)
	if err != nil {
		return nil, err
	}
	return s.exporter.ExportDocument(r.Context(), model, geometry)
}

func requestFormat(r *http.Request) (content.Format, error) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return content.FormatJSON, nil
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", &ErrValidation{Field: "Content-Type", Message: err.Error()}
	}
	switch {
	case mediaType == "application/json":
		return content.FormatJSON, nil
	case strings.HasSuffix(mediaType, "yaml"):
		return content.FormatYAML, nil
	}
	return "", &ErrValidation{Field: "Content-Type", Message: "expected application/json or application/yaml, got " + mediaType}
}

// geometryFromQuery reads page_size, orientation and max_lines. It returns
// nil when none is set.
func geometryFromQuery(r *http.Request) (*layout.Geometry, error) {
	q := r.URL.Query()
	g := layout.Geometry{
		PageSize:    q.Get("page_size"),
		Orientation: q.Get("orientation"),
	}
	if v := q.Get("max_lines"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, &ErrValidation{Field: "max_lines", Message: "must be an integer"}
		}
		g.MaxLinesPerPage = n
	}
	if g == (layout.Geometry{}) {
		return nil, nil
	}
	return &g, nil
}

func outlineEntry(m compose.Mark) OutlineEntry {
	return OutlineEntry{Section: m.Section.String(), Page: m.Page, Y: m.Y, Lines: m.Lines}
}
