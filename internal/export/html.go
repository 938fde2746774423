package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/codalotl/textdiffy/internal/diff"
	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const htmlHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>textdiffy report</title>
<style>
body { font-family: sans-serif; }
ul.entries { list-style: none; padding-left: 0; font-family: monospace; }
li.same { color: #555; }
li.add, ins { background: #d7f5dd; text-decoration: none; }
li.remove, del { background: #fbdcdc; }
li.modify del { background: #f5a9a9; }
li.modify ins { background: #8fd19e; }
</style>
</head>
<body>
`

const htmlTail = "</body>\n</html>\n"

// HTML returns a standalone HTML report: a heading naming both sides, a table of stats, and one list item per entry with removed text in <del> and added text in <ins>. The report
// is written as Markdown and converted with goldmark (GitHub tables, raw HTML allowed).
func HTML(in Input) ([]byte, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Table),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	var body bytes.Buffer
	if err := md.Convert([]byte(reportMarkdown(in)), &body); err != nil {
		return nil, fmt.Errorf("export html: %w", err)
	}

	var out bytes.Buffer
	out.WriteString(htmlHead)
	out.Write(body.Bytes())
	out.WriteString(htmlTail)
	return out.Bytes(), nil
}

// reportMarkdown builds the Markdown source of the HTML report.
func reportMarkdown(in Input) string {
	var b strings.Builder

	b.WriteString("# textdiffy report\n\n")
	if in.OldName != "" || in.NewName != "" {
		fmt.Fprintf(&b, "%s → %s\n\n", escapeMarkdown(orDash(in.OldName)), escapeMarkdown(orDash(in.NewName)))
	}

	s := diff.Summarize(in.Entries)
	b.WriteString("| same | added | removed | modified |\n")
	b.WriteString("|---:|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %s | %s | %s | %s |\n\n", humanize.Comma(int64(s.Same)), humanize.Comma(int64(s.Added)), humanize.Comma(int64(s.Removed)), humanize.Comma(int64(s.Modified)))

	if len(in.Entries) == 0 {
		return b.String()
	}

	b.WriteString("<ul class=\"entries\">\n")
	for _, e := range in.Entries {
		switch e.Kind {
		case diff.KindSame:
			fmt.Fprintf(&b, "<li class=\"same\">%s</li>\n", htmlText(e.Line))
		case diff.KindAdd:
			fmt.Fprintf(&b, "<li class=\"add\"><ins>%s</ins></li>\n", htmlText(e.Line))
		case diff.KindRemove:
			fmt.Fprintf(&b, "<li class=\"remove\"><del>%s</del></li>\n", htmlText(e.Line))
		case diff.KindModify:
			fmt.Fprintf(&b, "<li class=\"modify\">%s</li>\n", modifyHTML(e))
		}
	}
	b.WriteString("</ul>\n")
	return b.String()
}

func modifyHTML(e diff.Entry) string {
	if e.Parts == nil {
		return "<del>" + htmlText(e.Old) + "</del><br><ins>" + htmlText(e.New) + "</ins>"
	}
	var b strings.Builder
	for _, p := range e.Parts {
		switch p.Kind {
		case diff.PartSame:
			b.WriteString(htmlText(p.Text))
		case diff.PartAdd:
			b.WriteString("<ins>" + htmlText(p.Text) + "</ins>")
		case diff.PartRemove:
			b.WriteString("<del>" + htmlText(p.Text) + "</del>")
		}
	}
	return b.String()
}

// htmlText escapes s for use inside the raw HTML block of the report. Spaces become &nbsp; so indentation survives, and an empty line is shown as a visible marker.
func htmlText(s string) string {
	if s == "" {
		return "<em>(empty)</em>"
	}
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case ' ':
			b.WriteString("&nbsp;")
		case '\t':
			b.WriteString("&nbsp;&nbsp;&nbsp;&nbsp;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapeMarkdown backslash-escapes every ASCII punctuation character, which CommonMark always allows.
func escapeMarkdown(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 0x80 && strings.ContainsRune("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
