// Package prompt builds the system prompt injected ahead of every
// conversation the relay forwards upstream. The prompt embeds the owner's
// profile so the model answers from those facts alone and defers anything
// else to the contact form; that instruction is part of the contract, not
// flavor text.
package prompt

import (
	"fmt"
	"strings"

	"github.com/foliodev/folio/pkg/profile"
)

// Compose renders the system prompt for a profile. It is deterministic:
// the same profile always yields byte-identical output.
func Compose(p *profile.Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an AI assistant embedded in %s's portfolio website.\n", p.Name)
	b.WriteString("You answer questions about the developer based ONLY on the following information.\n")
	b.WriteString("If asked something not covered below, politely say you don't have that information and suggest they use the contact form.\n")
	b.WriteString("\n")
	b.WriteString("Be concise, friendly, and professional. Keep responses under 3 paragraphs.\n")
	b.WriteString("Use markdown formatting when helpful (bold, lists, etc).\n")
	b.WriteString("\n")

	b.WriteString("=== DEVELOPER INFO ===\n")
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	fmt.Fprintf(&b, "Role: %s\n", p.Tagline)
	fmt.Fprintf(&b, "Location: %s\n", p.Location)
	fmt.Fprintf(&b, "Email: %s\n", p.Email)
	b.WriteString("\n")

	b.WriteString("=== SKILLS ===\n")
	for _, s := range p.Skills {
		fmt.Fprintf(&b, "- %s (%s)\n", s.Name, s.Category)
	}
	b.WriteString("\n")

	b.WriteString("=== EXPERIENCE ===\n")
	for _, e := range p.Experience {
		fmt.Fprintf(&b, "- %s at %s (%s): %s\n", e.Role, e.Company, e.Period, e.Description)
	}
	b.WriteString("\n")

	if len(p.Projects) > 0 {
		b.WriteString("=== PROJECTS ===\n")
		for _, pr := range p.Projects {
			fmt.Fprintf(&b, "- %s (%s): %s\n", pr.Title, pr.Year, pr.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString("=== ABOUT ===\n")
	b.WriteString(strings.Join(p.Bio, " "))
	b.WriteString("\n")

	return b.String()
}
