package convert

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/QuantamAIDevelopment/rfp-new-pipeline/internal/common"
)

// PDFConverter extracts text from PDF content streams via pdfcpu and joins
// the pages into one markdown document, one paragraph per page.
type PDFConverter struct {
	log *slog.Logger
}

func NewPDFConverter(logger *slog.Logger) *PDFConverter {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFConverter{log: logger.With("component", "pdf_converter")}
}

func (c *PDFConverter) Convert(ctx context.Context, path string) (string, error) {
	start := time.Now()
	c.log.Info("convert.pdf.start", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return "", common.NewAppError("CONVERT_OPEN_FAILED", "cannot open input document", err)
	}
	defer f.Close()

	pdfCtx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		c.log.Error("convert.pdf.failed", "path", path, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return "", common.NewAppError("CONVERT_PARSE_FAILED", "cannot parse PDF document", err)
	}

	var pages []string
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text := pageText(pdfCtx, pageNr)
		if text != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) == 0 {
		c.log.Error("convert.pdf.no_text", "path", path, "pages", pdfCtx.PageCount,
			"elapsed_ms", time.Since(start).Milliseconds())
		return "", common.NewAppError("CONVERT_NO_TEXT", "no text content found in PDF", common.ErrInvalidInput)
	}

	doc := strings.Join(pages, "\n\n")
	c.log.Info("convert.pdf.ok",
		"path", path,
		"pages", pdfCtx.PageCount,
		"chars", len(doc),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return doc, nil
}

func pageText(pdfCtx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return streamText(data)
}

// literalRe matches parenthesised PDF string literals.
var literalRe = regexp.MustCompile(`\(([^)]*)\)`)

// streamText walks a page content stream line by line and collects the text
// shown by the Tj, TJ and ' operators. Td/TD positioning becomes a space,
// T* a line break.
func streamText(data []byte) string {
	var sb strings.Builder
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		switch {
		case len(line) == 0:
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range literalRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodeLiteral(m[1]))
			}
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, m := range literalRe.FindAllSubmatch(line, -1) {
				sb.WriteByte('\n')
				sb.WriteString(decodeLiteral(m[1]))
			}
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}
	return tidyText(sb.String())
}

// decodeLiteral resolves PDF string escapes, including octal codes.
func decodeLiteral(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] < '0' || raw[i] > '7' {
				sb.WriteByte(raw[i])
				break
			}
			val := int(raw[i] - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		}
	}
	return sb.String()
}

// tidyText collapses whitespace runs but keeps line breaks, so the page
// comes out as readable prose lines.
func tidyText(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
