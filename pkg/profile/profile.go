// Package profile holds the static record describing the site owner:
// identity, skills, experience, projects, and bio. The data lives in a
// TOML document so it can be edited without touching code; everything
// user-visible (the rendered site, the chat system prompt) derives from it.
package profile

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Skill is a single named skill tagged with a category
// (e.g. "frontend", "backend", "tools", "ai").
type Skill struct {
	Name     string `toml:"name" json:"name"`
	Category string `toml:"category" json:"category"`
}

// Experience is one entry in the work history.
type Experience struct {
	Role        string `toml:"role" json:"role"`
	Company     string `toml:"company" json:"company"`
	Period      string `toml:"period" json:"period"`
	Description string `toml:"description" json:"description"`
}

// Project is one portfolio project.
type Project struct {
	Slug        string   `toml:"slug" json:"slug"`
	Title       string   `toml:"title" json:"title"`
	Description string   `toml:"description" json:"description"`
	Tags        []string `toml:"tags" json:"tags"`
	Year        string   `toml:"year" json:"year"`
}

// Profile is the full read-only record the rest of the system consumes.
type Profile struct {
	Name       string       `toml:"name" json:"name"`
	Tagline    string       `toml:"tagline" json:"tagline"`
	Email      string       `toml:"email" json:"email"`
	Location   string       `toml:"location" json:"location"`
	Bio        []string     `toml:"bio" json:"bio"`
	Skills     []Skill      `toml:"skills" json:"skills"`
	Experience []Experience `toml:"experience" json:"experience"`
	Projects   []Project    `toml:"projects" json:"projects"`
}

// Load reads a profile from a TOML file.
func Load(path string) (*Profile, error) {
	var p Profile
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", path, err)
	}
	return &p, nil
}

// Default returns the built-in placeholder profile used when no profile
// file is configured.
func Default() *Profile {
	return &Profile{
		Name:     "Your Name",
		Tagline:  "Full-Stack Developer & AI Enthusiast",
		Email:    "your@email.com",
		Location: "Your City, Country",
		Bio: []string{
			"I'm a full-stack developer passionate about building beautiful, performant web applications.",
			"Currently focused on modern web technologies and exploring how AI can enhance developer workflows and user experiences.",
		},
		Skills: []Skill{
			{Name: "TypeScript", Category: "frontend"},
			{Name: "React", Category: "frontend"},
			{Name: "Go", Category: "backend"},
			{Name: "PostgreSQL", Category: "backend"},
			{Name: "Docker", Category: "tools"},
			{Name: "Prompt Engineering", Category: "ai"},
		},
		Experience: []Experience{
			{
				Role:        "Full-Stack Developer",
				Company:     "Company Name",
				Period:      "2023 — Present",
				Description: "Building scalable web applications and leading frontend architecture.",
			},
		},
		Projects: []Project{
			{
				Slug:        "ai-portfolio-chat",
				Title:       "AI Portfolio Chat",
				Description: "An AI-powered chatbot embedded in my portfolio that answers questions about my experience.",
				Tags:        []string{"Go", "AI"},
				Year:        "2025",
			},
		},
	}
}
