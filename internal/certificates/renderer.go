package certificates

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"cert-scribe/certificate-portal/certificate-portal-backend/internal/participants"
)

// Page dimensions in mm, landscape A4
const (
	pageWidth  = 297.0
	pageHeight = 210.0
)

// Renderer composes one certificate PDF per participant: the resolved
// template image stretched full page, with name and completion date drawn
// at the template's layout positions.
type Renderer struct {
	resolver  *Resolver
	outputDir string
	logger    *zap.Logger
}

// NewRenderer creates a certificate renderer writing into outputDir
func NewRenderer(resolver *Resolver, outputDir string, logger *zap.Logger) *Renderer {
	return &Renderer{
		resolver:  resolver,
		outputDir: outputDir,
		logger:    logger,
	}
}

// Render produces one PDF file for the participant. Every failure is
// returned as an error; nothing panics through this boundary. Output
// filenames are unique per call even for identical participant names.
func (r *Renderer) Render(p *participants.Participant) (*Generated, error) {
	r.logger.Info("Generating certificate",
		zap.String("participant", p.Name),
		zap.String("course", p.Course))

	resolved, err := r.resolver.Resolve(p.Course)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("output directory not writable: %w", err)
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetCreator("Certificate Portal", true)
	pdf.SetTitle("Certificado de Participación - "+p.Name, true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)
	pdf.AddPage()

	pdf.ImageOptions(resolved.Path, 0, 0, pageWidth, pageHeight, false,
		gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	layout := resolved.Layout
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", layout.NameSize)
	pdf.SetTextColor(24, 45, 81)
	pdf.SetXY(layout.NameX, layout.NameY)
	pdf.CellFormat(pageWidth-2*layout.NameX, 15, tr(p.Name), "", 1, "C", false, 0, "")

	dateLine := "Fecha de finalización: " + p.DateCompleted.Format("02/01/2006")
	pdf.SetFont("Helvetica", "", layout.DateSize)
	pdf.SetXY(165, layout.DateY)
	pdf.CellFormat(117, 10, tr(dateLine), "", 1, "C", false, 0, "")

	filename := fmt.Sprintf("certificado_%s_%s.pdf", normalizeName(p.Name), uuid.NewString())
	fullPath := filepath.Join(r.outputDir, filename)

	if err := pdf.OutputFileAndClose(fullPath); err != nil {
		r.logger.Error("Failed to write certificate PDF",
			zap.String("participant", p.Name),
			zap.Error(err))
		return nil, fmt.Errorf("failed to write certificate PDF: %w", err)
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, fmt.Errorf("certificate file was not saved: %w", err)
	}

	r.logger.Info("Certificate generated",
		zap.String("filename", filename),
		zap.String("template", resolved.Name),
		zap.Int64("size", info.Size()))

	return &Generated{
		Filename:     filename,
		Path:         fullPath,
		Size:         info.Size(),
		TemplateUsed: filepath.Base(resolved.Path),
	}, nil
}

// normalizeName lowercases, strips diacritics and collapses whitespace to
// underscores, so "Ana Pérez" becomes "ana_perez"
func normalizeName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if ascii, _, err := transform.String(t, name); err == nil {
		name = ascii
	}
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}
