// Package annotation finds MCP annotation blocks (@tool{...}, @prompt{...},
// @resource{...}) in source text, repairs and parses their near-JSON
// payloads, checks their shape and links entities that reference each other.
//
// Extraction counts braces without regard to string literals unless
// ExtractOptions.StringAware is set. Relationships are inferred from the
// co-occurrence of @name tokens within one file.
package annotation
