package certificates

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cert-scribe/certificate-portal/certificate-portal-backend/internal/participants"
)

// writePNG writes a small valid PNG usable as a template background
func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, color.RGBA{R: 240, G: 240, B: 255, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func testParticipant(name, course string) *participants.Participant {
	return &participants.Participant{
		ID:            uuid.New(),
		Name:          name,
		Email:         strings.ToLower(strings.Fields(name)[0]) + "@example.com",
		Course:        course,
		DateCompleted: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func newTestRenderer(t *testing.T) (*Renderer, string, string) {
	t.Helper()
	templatesDir := t.TempDir()
	outputDir := t.TempDir()
	writePNG(t, filepath.Join(templatesDir, "template.png"))

	resolver := NewResolver(templatesDir, DefaultCategories(), DefaultLayouts(), zap.NewNop())
	return NewRenderer(resolver, outputDir, zap.NewNop()), templatesDir, outputDir
}

func TestRenderProducesPDF(t *testing.T) {
	renderer, _, outputDir := newTestRenderer(t)

	gen, err := renderer.Render(testParticipant("Ana Pérez", "Curso de PHP Avanzado"))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gen.Filename, "certificado_ana_perez_"),
		"filename %q should start with the normalized name", gen.Filename)
	assert.Equal(t, "template.png", gen.TemplateUsed)
	assert.Equal(t, filepath.Join(outputDir, gen.Filename), gen.Path)

	info, err := os.Stat(gen.Path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), gen.Size)
	assert.Greater(t, gen.Size, int64(0))

	data, err := os.ReadFile(gen.Path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestRenderUniqueFilenames(t *testing.T) {
	renderer, _, _ := newTestRenderer(t)
	p := testParticipant("Ana Pérez", "Curso de PHP Avanzado")

	first, err := renderer.Render(p)
	require.NoError(t, err)
	second, err := renderer.Render(p)
	require.NoError(t, err)

	assert.NotEqual(t, first.Filename, second.Filename)
	assert.NotEqual(t, first.Path, second.Path)
}

func TestRenderUsesCategoryTemplate(t *testing.T) {
	renderer, templatesDir, _ := newTestRenderer(t)
	writePNG(t, filepath.Join(templatesDir, "template_programming.png"))

	gen, err := renderer.Render(testParticipant("Ana Pérez", "Curso de PHP Avanzado"))

	require.NoError(t, err)
	assert.Equal(t, "template_programming.png", gen.TemplateUsed)
}

func TestRenderNoTemplate(t *testing.T) {
	templatesDir := t.TempDir()
	resolver := NewResolver(templatesDir, DefaultCategories(), DefaultLayouts(), zap.NewNop())
	renderer := NewRenderer(resolver, t.TempDir(), zap.NewNop())

	_, err := renderer.Render(testParticipant("Ana Pérez", "Curso de Cocina"))

	assert.ErrorIs(t, err, ErrNoTemplate)
}

func TestRenderMalformedTemplate(t *testing.T) {
	templatesDir := t.TempDir()
	outputDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(templatesDir, "template.png"), []byte("not a png"), 0o644))

	resolver := NewResolver(templatesDir, DefaultCategories(), DefaultLayouts(), zap.NewNop())
	renderer := NewRenderer(resolver, outputDir, zap.NewNop())

	_, err := renderer.Render(testParticipant("Ana Pérez", "Curso de Cocina"))

	assert.Error(t, err)
}
