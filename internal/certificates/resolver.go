package certificates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// ErrNoTemplate means not even the default template file exists. Nothing can
// be rendered until at least template.png is provisioned.
var ErrNoTemplate = errors.New("no certificate template available: place at least template.png in the templates directory")

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify normalizes free text to a filesystem-safe slug: lowercase, every
// run of non-alphanumeric characters collapsed to a single underscore.
func Slugify(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "_")
}

// Resolved is the outcome of template resolution for one course
type Resolved struct {
	Path   string
	Name   string // base name without extension, keys the layout table
	Layout Layout
}

// Resolver picks the background template for a course name
type Resolver struct {
	templatesDir string
	categories   []Category
	layouts      map[string]Layout
	logger       *zap.Logger
}

// NewResolver creates a template resolver over the given templates directory
func NewResolver(templatesDir string, categories []Category, layouts map[string]Layout, logger *zap.Logger) *Resolver {
	return &Resolver{
		templatesDir: templatesDir,
		categories:   categories,
		layouts:      layouts,
		logger:       logger,
	}
}

// Resolve picks a template in strict precedence order: exact slug match,
// first category with a matching keyword whose file exists, then the default.
// Deterministic for a given course name and directory contents.
func (r *Resolver) Resolve(courseName string) (*Resolved, error) {
	slug := Slugify(courseName)

	specific := filepath.Join(r.templatesDir, "template_"+slug+".png")
	if fileExists(specific) {
		r.logger.Debug("Using course-specific template", zap.String("template", specific))
		return r.resolved(specific), nil
	}

	courseLower := strings.ToLower(courseName)
	for _, category := range r.categories {
		for _, keyword := range category.Keywords {
			if !strings.Contains(courseLower, keyword) {
				continue
			}
			candidate := filepath.Join(r.templatesDir, "template_"+category.Name+".png")
			if fileExists(candidate) {
				r.logger.Debug("Using category template",
					zap.String("category", category.Name),
					zap.String("keyword", keyword))
				return r.resolved(candidate), nil
			}
		}
	}

	fallback := filepath.Join(r.templatesDir, "template.png")
	if fileExists(fallback) {
		r.logger.Debug("Using default template")
		return r.resolved(fallback), nil
	}

	return nil, fmt.Errorf("%w (looked in %s)", ErrNoTemplate, r.templatesDir)
}

// ListTemplates lists every provisioned template file with a display name
func (r *Resolver) ListTemplates() ([]TemplateInfo, error) {
	matches, err := filepath.Glob(filepath.Join(r.templatesDir, "template*.png"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan templates directory: %w", err)
	}

	infos := make([]TemplateInfo, 0, len(matches))
	for _, path := range matches {
		base := strings.TrimSuffix(filepath.Base(path), ".png")
		display := "Default"
		if base != "template" {
			display = titleCase(strings.ReplaceAll(strings.TrimPrefix(base, "template_"), "_", " "))
		}
		infos = append(infos, TemplateInfo{
			Filename: filepath.Base(path),
			Name:     display,
			Path:     path,
		})
	}
	return infos, nil
}

func (r *Resolver) resolved(path string) *Resolved {
	name := strings.TrimSuffix(filepath.Base(path), ".png")
	layout, ok := r.layouts[name]
	if !ok {
		// templates without a registered layout use the base layout
		layout = r.layouts["template"]
	}
	return &Resolved{Path: path, Name: name, Layout: layout}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
