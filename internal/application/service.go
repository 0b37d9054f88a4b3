package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/termdemo/internal/domain"
	"github.com/bnema/termdemo/internal/ports"
)

var ErrEmptyScriptName = errors.New("script name is required")

type Service struct {
	repo ports.ScriptRepository
}

func NewService(repo ports.ScriptRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Load(ctx context.Context, name string) (domain.Script, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Script{}, ErrEmptyScriptName
	}

	script, err := s.repo.Load(ctx, name)
	if err != nil {
		return domain.Script{}, fmt.Errorf("load script: %w", err)
	}

	return script, nil
}

// DepsFunc builds the dependencies of a window once its script is known,
// since a surface is sized and styled from the script.
type DepsFunc func(script domain.Script) WindowDeps

func (s *Service) Open(ctx context.Context, name string, deps DepsFunc) (*Window, error) {
	script, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	return NewWindow(script, deps(script))
}

type LineInspection struct {
	Index  int
	Text   string
	Config domain.EffectiveLineConfig
}

type Inspection struct {
	Script string
	Window domain.EffectiveWindowConfig
	Lines  []LineInspection
	Image  *ImageInspection
}

type ImageInspection struct {
	Source string
	Index  int
	Config domain.EffectiveImageConfig
}

func (s *Service) Inspect(ctx context.Context, name string) (Inspection, error) {
	script, err := s.Load(ctx, name)
	if err != nil {
		return Inspection{}, err
	}
	if err := script.Validate(); err != nil {
		return Inspection{}, fmt.Errorf("validate script %q: %w", script.Name, err)
	}

	window := script.WindowOrDefault()
	inspection := Inspection{
		Script: script.Name,
		Window: domain.ResolveWindow(window),
		Lines:  make([]LineInspection, 0, len(script.Lines)),
	}
	for i, line := range script.Lines {
		inspection.Lines = append(inspection.Lines, LineInspection{
			Index:  i,
			Text:   line.Text(),
			Config: domain.Resolve(line, window),
		})
	}
	if script.Image != nil {
		inspection.Image = &ImageInspection{
			Source: script.Image.Source,
			Index:  script.Image.Index,
			Config: domain.ResolveImage(*script.Image, window),
		}
	}

	return inspection, nil
}

func (s *Service) List(ctx context.Context) ([]string, error) {
	names, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scripts: %w", err)
	}

	return names, nil
}

func (s *Service) Create(ctx context.Context, name string, overwrite bool) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyScriptName
	}

	script := SampleScript()
	script.Name = name

	path, err := s.repo.Create(ctx, name, script, overwrite)
	if err != nil {
		return "", fmt.Errorf("create script: %w", err)
	}

	return path, nil
}
