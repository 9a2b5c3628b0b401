// Package config holds the validated site settings shared by the CLI
// commands.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cbdev/portfolio/internal/sections"
)

// Site configures what a hydration pass renders and from where.
type Site struct {
	// DataPath is a local path or an http(s) URL.
	DataPath         string `validate:"required"`
	HostPath         string
	ResumePath       string
	Tagline          string `validate:"required"`
	FallbackLocation string
	IsolateSections  bool
}

// Server configures the HTTP surface.
type Server struct {
	Port          int    `validate:"min=1,max=65535"`
	DBPath        string `validate:"required"`
	AdminUsername string `validate:"required"`
	AdminPassword string `validate:"required"`
	StaticDir     string
	AssetsDir     string
	TemplatesGlob string `validate:"required"`
}

var validate = validator.New()

// Validate checks required settings and fills defaults.
func (s *Site) Validate() error {
	s.DataPath = strings.TrimSpace(s.DataPath)
	if s.FallbackLocation == "" {
		s.FallbackLocation = sections.DefaultFallbackLocation
	}
	return check(s)
}

// SectionOptions is the copy the section renderers need.
func (s Site) SectionOptions() sections.Options {
	return sections.Options{Tagline: s.Tagline, FallbackLocation: s.FallbackLocation}
}

// Validate checks the server settings.
func (s *Server) Validate() error {
	return check(s)
}

// Addr is the listen address.
func (s Server) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

func check(v any) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
