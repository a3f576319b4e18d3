package compose

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saleemkhair/resume-export/internal/document"
)

type op struct {
	Kind   string // page, text, rule
	Page   int
	X, Y   float64
	X2     float64
	Text   string
	Size   float64
	Weight document.Weight
}

// recorder is an in-memory document.Writer with monospace metrics.
type recorder struct {
	ops      []op
	page     int
	size     float64
	weight   document.Weight
	err      error
	finished bool
	failOn   string
}

func (r *recorder) AddPage() {
	r.page++
	r.ops = append(r.ops, op{Kind: "page", Page: r.page})
}

func (r *recorder) SetFont(size float64, w document.Weight) { r.size, r.weight = size, w }

func (r *recorder) Width(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * r.size * 0.18
}

func (r *recorder) Text(x, y float64, s string) {
	if r.err != nil {
		return
	}
	if r.failOn != "" && strings.Contains(s, r.failOn) {
		r.err = &document.WriteError{Op: "text", Cause: errors.New("rejected")}
		return
	}
	r.ops = append(r.ops, op{Kind: "text", Page: r.page, X: x, Y: y, Text: s, Size: r.size, Weight: r.weight})
}

func (r *recorder) Rule(x1, y1, x2, _ float64) {
	r.ops = append(r.ops, op{Kind: "rule", Page: r.page, X: x1, Y: y1, X2: x2})
}

func (r *recorder) Err() error { return r.err }

func (r *recorder) Finish() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.finished = true
	return []byte(fmt.Sprintf("%d pages", r.page)), nil
}

func (r *recorder) texts() []op {
	var out []op
	for _, o := range r.ops {
		if o.Kind == "text" {
			out = append(out, o)
		}
	}
	return out
}

// joined concatenates every text run except bullet glyphs.
func (r *recorder) joined() string {
	var parts []string
	for _, o := range r.texts() {
		if o.Text != bullet {
			parts = append(parts, o.Text)
		}
	}
	return strings.Join(parts, " ")
}

func (r *recorder) find(s string) (op, bool) {
	for _, o := range r.texts() {
		if o.Text == s {
			return o, true
		}
	}
	return op{}, false
}
