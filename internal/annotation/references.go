package annotation

import (
	"regexp"
	"strings"
)

// Position is the syntactic slot an `@name` reference sits in.
type Position int

const (
	// PositionCall is `@name(`.
	PositionCall Position = iota
	// PositionBlock is `@name{`.
	PositionBlock
	// PositionIndex is `@name[`.
	PositionIndex
)

var referencePatterns = [...]*regexp.Regexp{
	PositionCall:  regexp.MustCompile(`@(\w+)\s*\(`),
	PositionBlock: regexp.MustCompile(`@(\w+)\s*\{`),
	PositionIndex: regexp.MustCompile(`@(\w+)\s*\[`),
}

func (p Position) String() string {
	switch p {
	case PositionCall:
		return "call"
	case PositionBlock:
		return "block"
	case PositionIndex:
		return "index"
	default:
		return "unknown"
	}
}

// ReferencedNames returns the distinct identifiers found in the given
// position, in order of first appearance.
func ReferencedNames(content string, pos Position) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range referencePatterns[pos].FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// CoOccur reports whether both `@a` and `@b` appear anywhere in content.
func CoOccur(content, a, b string) bool {
	return strings.Contains(content, "@"+a) && strings.Contains(content, "@"+b)
}

// AnalyzeRelationships infers edges from one file's text against the
// entity lists already aggregated in result, writing into
// result.Relationships. An edge source -> target is accepted whenever target
// appears in the position its kind is referenced from (block for prompts,
// index for resources) and both names co-occur in the file. Proximity of the
// two references is not required.
//
// A source that gains targets in this file replaces whatever an earlier file
// recorded for it; a source with no targets here keeps its earlier entry.
func AnalyzeRelationships(content string, result *AnalysisResult) {
	blockRefs := ReferencedNames(content, PositionBlock)
	indexRefs := ReferencedNames(content, PositionIndex)

	promptNames := make([]string, len(result.Prompts))
	for i, p := range result.Prompts {
		promptNames[i] = p.Name
	}
	resourceNames := make([]string, len(result.Resources))
	for i, r := range result.Resources {
		resourceNames[i] = r.Name
	}

	rels := &result.Relationships
	for _, tool := range result.Tools {
		rels.ToolToPrompt.Set(tool.Name, matchTargets(content, tool.Name, blockRefs, promptNames))
		rels.ToolToResource.Set(tool.Name, matchTargets(content, tool.Name, indexRefs, resourceNames))
	}
	for _, prompt := range result.Prompts {
		rels.PromptToResource.Set(prompt.Name, matchTargets(content, prompt.Name, indexRefs, resourceNames))
	}
}

// matchTargets filters known target names, in their own order, down to those
// found among refs and co-occurring with source.
func matchTargets(content, source string, refs, known []string) []string {
	accepted := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if CoOccur(content, source, ref) {
			accepted[ref] = true
		}
	}
	if len(accepted) == 0 {
		return nil
	}

	var out []string
	for _, name := range known {
		if accepted[name] {
			out = append(out, name)
		}
	}
	return out
}
