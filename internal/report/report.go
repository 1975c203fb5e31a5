// Package report turns an analysis result into something a person or
// another program can read: JSON and YAML exports, a Markdown report and a
// plain text summary.
package report

import (
	"mcpscan/internal/annotation"
	"mcpscan/internal/repository"
)

// Insights are headline counts over one analysis.
type Insights struct {
	ToolCount         int `json:"toolCount" yaml:"tool_count"`
	PromptCount       int `json:"promptCount" yaml:"prompt_count"`
	ResourceCount     int `json:"resourceCount" yaml:"resource_count"`
	ErrorCount        int `json:"errorCount" yaml:"error_count"`
	RelationshipCount int `json:"relationshipCount" yaml:"relationship_count"`
	FileCount         int `json:"fileCount" yaml:"file_count"`
}

// Report is an analysis with the repository it came from, if any. The
// analysis fields are inlined so a Report encodes as a superset of
// AnalysisResult.
type Report struct {
	Repository *repository.RepositoryData `json:"repo,omitempty" yaml:"repo,omitempty"`

	annotation.AnalysisResult `yaml:",inline"`

	Insights Insights `json:"insights" yaml:"insights"`
}

// NewInsights counts result. files is the number of files analyzed.
func NewInsights(result *annotation.AnalysisResult, files int) Insights {
	if result == nil {
		return Insights{FileCount: files}
	}
	return Insights{
		ToolCount:         len(result.Tools),
		PromptCount:       len(result.Prompts),
		ResourceCount:     len(result.Resources),
		ErrorCount:        len(result.Errors),
		RelationshipCount: result.Relationships.Edges(),
		FileCount:         files,
	}
}

// New builds a report. repo may be nil; its file contents are dropped.
func New(result *annotation.AnalysisResult, files int, repo *repository.RepositoryData) *Report {
	if result == nil {
		result = annotation.Analyze(nil)
	}
	r := &Report{
		AnalysisResult: *result,
		Insights:       NewInsights(result, files),
	}
	if repo != nil {
		meta := *repo
		meta.Files = nil
		r.Repository = &meta
	}
	return r
}

// HasErrors reports whether any annotation failed to parse or validate.
func (r *Report) HasErrors() bool {
	return r.Insights.ErrorCount > 0
}
