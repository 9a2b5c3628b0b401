package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbdev/portfolio/internal/sections"
)

func TestSiteValidate(t *testing.T) {
	s := Site{DataPath: " resume.json ", Tagline: "Engineer"}
	require.NoError(t, s.Validate())
	assert.Equal(t, "resume.json", s.DataPath)
	assert.Equal(t, sections.DefaultFallbackLocation, s.FallbackLocation)
	assert.Equal(t, sections.Options{Tagline: "Engineer", FallbackLocation: sections.DefaultFallbackLocation}, s.SectionOptions())

	missing := Site{}
	err := missing.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DataPath (required)")
	assert.Contains(t, err.Error(), "Tagline (required)")
}

func TestServerValidate(t *testing.T) {
	s := Server{Port: 8080, DBPath: "portfolio.db", AdminUsername: "admin", AdminPassword: "pw", TemplatesGlob: "templates/*"}
	require.NoError(t, s.Validate())
	assert.Equal(t, ":8080", s.Addr())

	s.Port = 0
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Port (min)")
}
