package annotation

import (
	"regexp"
	"strings"
)

// RepairRule is one text rewrite applied to a raw block before strict JSON
// parsing. Rules are pure and run in the order of RepairRules.
type RepairRule struct {
	Name  string
	Apply func(string) string
}

var (
	lineCommentPattern   = regexp.MustCompile(`(?m)//.*$`)
	blockCommentPattern  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
	bareKeyPattern       = regexp.MustCompile(`([{,]\s*)([a-zA-Z0-9_]+)\s*:`)
)

// RepairRules is the fixed repair pipeline. None of the rules understand
// string literals: a "//" or "key:" inside a quoted value is rewritten too,
// and every apostrophe becomes a double quote.
var RepairRules = []RepairRule{
	{Name: "strip-comments", Apply: StripComments},
	{Name: "trim-space", Apply: strings.TrimSpace},
	{Name: "drop-trailing-commas", Apply: DropTrailingCommas},
	{Name: "quote-bare-keys", Apply: QuoteBareKeys},
	{Name: "normalize-quotes", Apply: NormalizeQuotes},
}

// Repair runs every rule of RepairRules over block.
func Repair(block string) string {
	for _, rule := range RepairRules {
		block = rule.Apply(block)
	}
	return block
}

// StripComments removes `//` line comments, then `/* */` block comments.
// Block comments do not nest.
func StripComments(s string) string {
	s = lineCommentPattern.ReplaceAllString(s, "")
	return blockCommentPattern.ReplaceAllString(s, "")
}

// DropTrailingCommas removes a comma that only precedes a closing } or ].
func DropTrailingCommas(s string) string {
	return trailingCommaPattern.ReplaceAllString(s, "$1")
}

// QuoteBareKeys wraps identifier keys that follow { or , in double quotes.
func QuoteBareKeys(s string) string {
	return bareKeyPattern.ReplaceAllString(s, `${1}"${2}":`)
}

// NormalizeQuotes turns every single quote into a double quote.
func NormalizeQuotes(s string) string {
	return strings.ReplaceAll(s, "'", `"`)
}
