package profile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliodev/folio/pkg/profile"
)

const sampleTOML = `
name = "Ada Lovelace"
tagline = "Systems Programmer"
email = "ada@example.com"
location = "London, UK"
bio = ["First paragraph.", "Second paragraph."]

[[skills]]
name = "Go"
category = "backend"

[[skills]]
name = "Figma"
category = "tools"

[[experience]]
role = "Engineer"
company = "Analytical Engines Ltd"
period = "1840 — 1843"
description = "Wrote the first published program."

[[projects]]
slug = "notes"
title = "Notes on the Analytical Engine"
description = "Annotated translation with original analysis."
tags = ["math", "writing"]
year = "1843"
`

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	p, err := profile.Load(writeProfile(t, sampleTOML))
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", p.Name)
	assert.Equal(t, "ada@example.com", p.Email)
	assert.Len(t, p.Bio, 2)
	require.Len(t, p.Skills, 2)
	assert.Equal(t, "backend", p.Skills[0].Category)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, "Analytical Engines Ltd", p.Experience[0].Company)
	require.Len(t, p.Projects, 1)
	assert.Equal(t, "1843", p.Projects[0].Year)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := profile.Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadMalformed(t *testing.T) {
	_, err := profile.Load(writeProfile(t, "name = [unclosed"))
	assert.Error(t, err)
}

func TestDefaultIsPopulated(t *testing.T) {
	p := profile.Default()

	assert.NotEmpty(t, p.Name)
	assert.NotEmpty(t, p.Email)
	assert.NotEmpty(t, p.Skills)
	assert.NotEmpty(t, p.Experience)
	assert.NotEmpty(t, p.Bio)
}
