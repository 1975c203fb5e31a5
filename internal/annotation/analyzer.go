package annotation

import (
	"errors"
	"time"

	"mcpscan/internal/logging"
)

// Analyzer runs the extract, parse, validate and relate pipeline over a set
// of files. It holds no per-run state and is safe for concurrent use.
type Analyzer struct {
	opts   ExtractOptions
	logger *logging.AppLogger
}

// NewAnalyzer returns an Analyzer. logger may be nil.
func NewAnalyzer(logger *logging.AppLogger, opts ExtractOptions) *Analyzer {
	return &Analyzer{opts: opts, logger: logger}
}

// Analyze scans files with default options and no logging.
func Analyze(files []FileContent) *AnalysisResult {
	return NewAnalyzer(nil, ExtractOptions{}).Analyze(files)
}

// Analyze extracts every kind of annotation across files, in file order,
// then infers relationships once per file against the aggregated entities.
// Malformed blocks end up in the result's Errors; Analyze itself never fails.
func (a *Analyzer) Analyze(files []FileContent) *AnalysisResult {
	start := time.Now()

	result := &AnalysisResult{
		Tools:     []Tool{},
		Prompts:   []Prompt{},
		Resources: []Resource{},
		Errors:    []ParseError{},
	}

	for _, kind := range Kinds {
		for _, file := range files {
			for block := range Blocks(file.Content, kind.Marker(), a.opts) {
				entity, err := ParseBlock(kind, block)
				if err != nil {
					a.reject(result, file.Path, kind, block, err)
					continue
				}
				switch e := entity.(type) {
				case Tool:
					result.Tools = append(result.Tools, e)
				case Prompt:
					result.Prompts = append(result.Prompts, e)
				case Resource:
					result.Resources = append(result.Resources, e)
				}
			}
		}
	}

	for _, file := range files {
		AnalyzeRelationships(file.Content, result)
	}

	if a.logger != nil {
		a.logger.Debug("Analysis complete",
			"files", len(files),
			"tools", len(result.Tools),
			"prompts", len(result.Prompts),
			"resources", len(result.Resources),
			"errors", len(result.Errors),
			"edges", result.Relationships.Edges(),
		)
		a.logger.LogPerformance("annotation.Analyze", start)
	}

	return result
}

func (a *Analyzer) reject(result *AnalysisResult, path string, kind Kind, block string, err error) {
	result.Errors = append(result.Errors, ParseError{
		File:  path,
		Type:  kind,
		Block: block,
		Error: err.Error(),
	})

	if a.logger == nil {
		return
	}
	var shapeErr *ShapeError
	if errors.As(err, &shapeErr) {
		a.logger.Debug("Block failed validation", "file", path, "kind", kind, "reasons", shapeErr.Detail())
		return
	}
	a.logger.Debug("Block is not valid JSON", "file", path, "kind", kind, "error", err)
}
