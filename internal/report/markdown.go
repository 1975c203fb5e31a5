package report

import (
	"fmt"
	"slices"
	"strings"

	"mcpscan/internal/annotation"
)

// Section is one top-level part of the Markdown report.
type Section struct {
	Title    string
	Summary  string
	Markdown string
}

// Sections splits the report into its top-level parts, in document order.
func Sections(r *Report) []Section {
	in := r.Insights
	var overview strings.Builder
	overviewSummary := fmt.Sprintf("%d files", in.FileCount)
	if repo := r.Repository; repo != nil {
		fmt.Fprintf(&overview, "## Repository\n\n**%s**", escapeInline(repo.Name))
		if repo.Description != "" {
			fmt.Fprintf(&overview, ": %s", escapeInline(repo.Description))
		}
		overview.WriteString("\n\n| Branch | Stars | Forks |\n|---|---|---|\n")
		fmt.Fprintf(&overview, "| %s | %d | %d |\n\n", cell(repo.DefaultBranch), repo.Stars, repo.Forks)
		overviewSummary = repo.Name
	}
	overview.WriteString("## Summary\n\n")
	overview.WriteString("| Tools | Prompts | Resources | Relationships | Errors | Files |\n|---|---|---|---|---|---|\n")
	fmt.Fprintf(&overview, "| %d | %d | %d | %d | %d | %d |\n\n",
		in.ToolCount, in.PromptCount, in.ResourceCount, in.RelationshipCount, in.ErrorCount, in.FileCount)

	var tools, prompts, resources, rels, errs strings.Builder
	writeTools(&tools, r.Tools)
	writePrompts(&prompts, r.Prompts)
	writeResources(&resources, r.Resources)
	writeRelationships(&rels, r.Relationships)
	writeErrors(&errs, r.Errors)

	return []Section{
		{Title: "Overview", Summary: overviewSummary, Markdown: overview.String()},
		{Title: "Tools", Summary: fmt.Sprintf("%d found", in.ToolCount), Markdown: tools.String()},
		{Title: "Prompts", Summary: fmt.Sprintf("%d found", in.PromptCount), Markdown: prompts.String()},
		{Title: "Resources", Summary: fmt.Sprintf("%d found", in.ResourceCount), Markdown: resources.String()},
		{Title: "Relationships", Summary: fmt.Sprintf("%d edges", in.RelationshipCount), Markdown: rels.String()},
		{Title: "Errors", Summary: fmt.Sprintf("%d recorded", in.ErrorCount), Markdown: errs.String()},
	}
}

// Markdown renders r as a GitHub flavoured Markdown document.
func Markdown(r *Report) string {
	var b strings.Builder
	b.WriteString("# MCP Analysis Report\n\n")
	for _, s := range Sections(r) {
		b.WriteString(s.Markdown)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeTools(b *strings.Builder, tools []annotation.Tool) {
	b.WriteString("## Tools\n\n")
	if len(tools) == 0 {
		b.WriteString("_No tools found._\n\n")
		return
	}
	for _, tool := range tools {
		fmt.Fprintf(b, "### `%s`\n\n", tool.Name)
		if tool.Description != "" {
			b.WriteString(escapeInline(tool.Description) + "\n\n")
		}
		if len(tool.Parameters.Properties) == 0 {
			b.WriteString("_No parameters._\n\n")
			continue
		}
		b.WriteString("| Parameter | Type | Required | Description |\n|---|---|---|---|\n")
		names := make([]string, 0, len(tool.Parameters.Properties))
		for name := range tool.Parameters.Properties {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			prop := tool.Parameters.Properties[name]
			required := "no"
			if isRequired(tool.Parameters, name) {
				required = "yes"
			}
			fmt.Fprintf(b, "| `%s` | %s | %s | %s |\n", name, cell(prop.Type), required, cell(prop.Description))
		}
		b.WriteString("\n")
	}
}

func isRequired(params annotation.Parameters, name string) bool {
	if slices.Contains(params.Required, name) {
		return true
	}
	prop := params.Properties[name]
	return prop.Required != nil && *prop.Required
}

func writePrompts(b *strings.Builder, prompts []annotation.Prompt) {
	b.WriteString("## Prompts\n\n")
	if len(prompts) == 0 {
		b.WriteString("_No prompts found._\n\n")
		return
	}
	for _, prompt := range prompts {
		fmt.Fprintf(b, "### `%s`\n\n", prompt.Name)
		if prompt.Description != "" {
			b.WriteString(escapeInline(prompt.Description) + "\n\n")
		}
		if len(prompt.Variables) > 0 {
			vars := make([]string, len(prompt.Variables))
			for i, v := range prompt.Variables {
				vars[i] = "`" + v + "`"
			}
			fmt.Fprintf(b, "Variables: %s\n\n", strings.Join(vars, ", "))
		}
		writeFenced(b, "text", prompt.Template)
	}
}

func writeResources(b *strings.Builder, resources []annotation.Resource) {
	b.WriteString("## Resources\n\n")
	if len(resources) == 0 {
		b.WriteString("_No resources found._\n\n")
		return
	}
	b.WriteString("| Name | Type | Path | Handler |\n|---|---|---|---|\n")
	for _, res := range resources {
		fmt.Fprintf(b, "| `%s` | %s | %s | %s |\n", res.Name, cell(res.Type), cell(res.Path), cell(res.Handler))
	}
	b.WriteString("\n")
}

func writeRelationships(b *strings.Builder, rels annotation.RelationshipMap) {
	b.WriteString("## Relationships\n\n")
	sections := []struct {
		title string
		rel   annotation.Relations
	}{
		{"Tool → Prompt", rels.ToolToPrompt},
		{"Prompt → Resource", rels.PromptToResource},
		{"Tool → Resource", rels.ToolToResource},
	}
	for _, s := range sections {
		fmt.Fprintf(b, "### %s\n\n", s.title)
		if s.rel.Len() == 0 {
			b.WriteString("_None._\n\n")
			continue
		}
		for _, source := range s.rel.Keys() {
			targets, _ := s.rel.Get(source)
			quoted := make([]string, len(targets))
			for i, t := range targets {
				quoted[i] = "`" + t + "`"
			}
			fmt.Fprintf(b, "- `%s` → %s\n", source, strings.Join(quoted, ", "))
		}
		b.WriteString("\n")
	}
}

func writeErrors(b *strings.Builder, errs []annotation.ParseError) {
	b.WriteString("## Errors\n\n")
	if len(errs) == 0 {
		b.WriteString("_No errors._\n\n")
		return
	}
	for _, e := range errs {
		fmt.Fprintf(b, "### `%s` (%s)\n\n", e.File, e.Type)
		b.WriteString(escapeInline(e.Error) + "\n\n")
		writeFenced(b, "", e.Block)
	}
}

// writeFenced picks a fence longer than any backtick run in body.
func writeFenced(b *strings.Builder, lang, body string) {
	longest, run := 0, 0
	for _, r := range body {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", max(3, longest+1))
	fmt.Fprintf(b, "%s%s\n%s\n%s\n\n", fence, lang, strings.TrimRight(body, "\n"), fence)
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

func escapeInline(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
}
