package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"

	"github.com/rs/zerolog"

	"docgen/internal/asset"
	"docgen/internal/compose"
	"docgen/internal/logger"
	"docgen/internal/theme"
)

const flowTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 10pt; margin: 8mm 20mm; max-width: 170mm; }
table { border-collapse: collapse; width: 100%; }
.items td, .items th { border: 0.18mm solid #b2bec3; padding: 3mm 2.8mm; font-size: 9pt; vertical-align: top; }
.items th { font-size: 10pt; }
.pair td { width: 50%; vertical-align: top; padding: 0; }
.totals td { padding: 1mm 2.8mm; text-align: right; }
.totals tr.due td { border-bottom: 1pt solid #000000; font-weight: bold; }
.signature { margin-left: auto; width: 60mm; text-align: center; }
footer { margin-top: 10mm; font-size: 9pt; color: #808080; display: flex; justify-content: space-between; }
</style>
</head>
<body>
{{- range .Blocks}}
{{- $kind := .Kind.String}}
{{- if eq $kind "header"}}
<header style="display: flex; justify-content: space-between; align-items: center; margin-bottom: 4.2mm">
<h1 style="font-size: {{.TitleSize}}pt; margin: 0">{{.Title}}</h1>
{{- with .Logo}}
<img src="{{logo .}}" alt="logo" style="{{size .}}">
{{- end}}
</header>
{{- else if eq $kind "rule"}}
<hr style="{{rule .}}">
{{- else if eq $kind "info"}}
<table class="pair"><tr>
<td>{{range .Left}}<div style="{{line .}}">{{.Text}}</div>{{end}}</td>
<td>{{range .Right}}<div style="{{line .}}">{{.Text}}</div>{{end}}</td>
</tr></table>
{{- else if eq $kind "paragraph"}}
<p style="{{para .}}">{{.Text}}</p>
{{- else if eq $kind "items"}}
<table class="items">
{{- $table := .}}
{{- range rows .}}
<tr>
{{- if .Header}}
{{- range .Cells}}<th style="{{headerCell $table .}}">{{.Text}}</th>{{end}}
{{- else}}
{{- range .Cells}}<td colspan="{{.Span}}" style="text-align: {{.Align}}">{{if .Bold}}<strong>{{end}}{{range $i, $l := .Lines}}{{if $i}}<br>{{end}}{{$l}}{{end}}{{if .Bold}}</strong>{{end}}</td>{{end}}
{{- end}}
</tr>
{{- end}}
</table>
{{- else if eq $kind "totals"}}
<table class="totals">
{{- range $i, $r := .Rows}}
<tr{{if eq $i 2}} class="due"{{end}}><td style="width: 130mm">{{$r.Label}}</td><td style="width: 40mm">{{$r.Value}}</td></tr>
{{- end}}
</table>
{{- else if eq $kind "conditions"}}
<section class="conditions">
<p><strong>{{.Title}}</strong><br>{{.Terms}}</p>
{{- with .Penalty}}
<p style="font-size: 8pt; color: #808080">{{.}}</p>
{{- end}}
</section>
{{- else if eq $kind "bank"}}
<section class="bank">
<p><strong>{{.Title}}</strong></p>
{{- range .Fields}}
<div><strong>{{.Label}}</strong> {{.Value}}</div>
{{- end}}
</section>
{{- else if eq $kind "signature"}}
<div class="signature">{{range .Lines}}<div>{{.}}</div>{{end}}</div>
{{- else if eq $kind "spacer"}}
<div style="height: {{.Height}}mm"></div>
{{- end}}
{{- end}}
<footer><span>{{.Footer.Entity}}</span><span>{{.Footer.Number}}</span></footer>
</body>
</html>
`

// HTMLRenderer renders block sequences to a single unpaginated HTML document.
type HTMLRenderer struct {
	tmpl *template.Template
	log  zerolog.Logger
}

// NewHTMLRenderer creates an HTML renderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		tmpl: template.Must(template.New("document").Funcs(funcs).Parse(flowTemplate)),
		log:  logger.WithComponent("html-renderer"),
	}
}

type htmlPage struct {
	Title  string
	Blocks []compose.Block
	Footer FooterInfo
}

// Render writes blocks as HTML.
func (r *HTMLRenderer) Render(blocks []compose.Block, footer FooterInfo) ([]byte, error) {
	page := htmlPage{Title: footer.Number, Blocks: blocks, Footer: footer}
	for _, b := range blocks {
		if h, ok := b.(compose.Header); ok {
			page.Title = strings.TrimSpace(h.Title + " " + footer.Number)
			break
		}
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	r.log.Debug().
		Int("blocks", len(blocks)).
		Int("bytes", buf.Len()).
		Str("number", footer.Number).
		Msg("HTML rendered")
	return buf.Bytes(), nil
}

type htmlCell struct {
	Lines []string
	Bold  bool
	Align string
	Span  int
}

type htmlRow struct {
	Header bool
	Cells  []htmlCell
}

var cssAlign = map[compose.Align]string{
	compose.AlignLeft:   "left",
	compose.AlignCenter: "center",
	compose.AlignRight:  "right",
}

func tableRows(t *compose.ItemTable) []htmlRow {
	rows := make([]htmlRow, 0, len(t.Rows))
	for i, row := range t.Rows {
		out := htmlRow{Header: row.Kind == compose.RowHeader}
		for col := 0; col < len(t.Columns); col++ {
			cell := htmlCell{Align: cssAlign[t.Columns[col].Align], Span: 1}
			if col < len(row.Cells) {
				cell.Bold = row.Cells[col].Bold
				if text := row.Cells[col].Text; text != "" {
					cell.Lines = strings.Split(text, "\n")
				}
			}
			if span, ok := t.SpanAt(i); ok && span.FirstCol == col {
				cell.Span = span.LastCol - span.FirstCol + 1
				cell.Align = "left"
				col = span.LastCol
			}
			out.Cells = append(out.Cells, cell)
		}
		rows = append(rows, out)
	}
	return rows
}

func cssColor(property string, c theme.Color) string {
	return fmt.Sprintf("%s: %s", property, c.Hex())
}

var funcs = template.FuncMap{
	"rows": tableRows,
	"logo": func(img *asset.Image) template.URL {
		return template.URL("data:" + img.MIMEType() + ";base64," + base64.StdEncoding.EncodeToString(img.Data))
	},
	"size": func(img *asset.Image) template.CSS {
		return template.CSS(fmt.Sprintf("width: %.2fmm; height: %.2fmm", img.Width, img.Height))
	},
	"rule": func(r compose.Rule) template.CSS {
		return template.CSS(fmt.Sprintf("border: none; border-top: %.2fmm solid %s; margin: 0", r.Thickness, r.Color.Hex()))
	},
	"line": func(l compose.Line) template.CSS {
		css := []string{"color: #000000"}
		if l.Color != nil {
			css[0] = cssColor("color", *l.Color)
		}
		if l.Bold {
			css = append(css, "font-weight: bold")
		}
		return template.CSS(strings.Join(css, "; "))
	},
	"para": func(p compose.Paragraph) template.CSS {
		return template.CSS(fmt.Sprintf("font-size: %gpt; %s; margin: 0", p.Size, cssColor("color", p.Color)))
	},
	"headerCell": func(t *compose.ItemTable, c htmlCell) template.CSS {
		return template.CSS(fmt.Sprintf("%s; %s; text-align: %s",
			cssColor("background", t.HeaderBackground), cssColor("color", t.HeaderText), c.Align))
	},
}
