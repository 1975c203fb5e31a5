package annotation

// Kind tags an annotation block with the entity it declares.
type Kind string

const (
	KindTool     Kind = "tool"
	KindPrompt   Kind = "prompt"
	KindResource Kind = "resource"
)

// Kinds lists every entity kind in the order the analyzer processes them.
var Kinds = []Kind{KindTool, KindPrompt, KindResource}

// Marker returns the literal annotation marker for the kind, e.g. "@tool".
func (k Kind) Marker() string {
	return "@" + string(k)
}

func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is one of the known entity kinds.
func (k Kind) IsValid() bool {
	return k == KindTool || k == KindPrompt || k == KindResource
}

// FileContent is one input file. ContentHash is carried through untouched.
type FileContent struct {
	Path        string `json:"path" yaml:"path"`
	Content     string `json:"content" yaml:"content"`
	ContentHash string `json:"contentHash,omitempty" yaml:"content_hash,omitempty"`
}

// Tool is an `@tool{...}` declaration.
type Tool struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Parameters  Parameters `json:"parameters" yaml:"parameters"`
}

// Parameters is the shallow input schema of a tool.
type Parameters struct {
	Type       string              `json:"type" yaml:"type"`
	Properties map[string]Property `json:"properties" yaml:"properties"`
	Required   []string            `json:"required" yaml:"required"`
}

// Property describes one tool parameter. Required is nil when the
// annotation does not set a per-property flag.
type Property struct {
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Required    *bool  `json:"required,omitempty" yaml:"required,omitempty"`
}

// Prompt is a `@prompt{...}` declaration. Placeholders in Template are not
// checked against Variables.
type Prompt struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Template    string   `json:"template" yaml:"template"`
	Variables   []string `json:"variables" yaml:"variables"`
}

// Resource is a `@resource{...}` declaration.
type Resource struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Path    string `json:"path" yaml:"path"`
	Handler string `json:"handler,omitempty" yaml:"handler,omitempty"`
}

// ParseError records a block that was extracted but could not become an
// entity. Block holds the raw text as it appeared in the file.
type ParseError struct {
	File  string `json:"file" yaml:"file"`
	Type  Kind   `json:"type" yaml:"type"`
	Block string `json:"block" yaml:"block"`
	Error string `json:"error" yaml:"error"`
}

// AnalysisResult is everything one analysis run produced.
type AnalysisResult struct {
	Tools         []Tool          `json:"tools" yaml:"tools"`
	Prompts       []Prompt        `json:"prompts" yaml:"prompts"`
	Resources     []Resource      `json:"resources" yaml:"resources"`
	Relationships RelationshipMap `json:"relationships" yaml:"relationships"`
	Errors        []ParseError    `json:"errors" yaml:"errors"`
}

// HasErrors reports whether any block failed to parse or validate.
func (r *AnalysisResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// IsEmpty reports whether the run found nothing at all.
func (r *AnalysisResult) IsEmpty() bool {
	return len(r.Tools) == 0 && len(r.Prompts) == 0 && len(r.Resources) == 0 && len(r.Errors) == 0
}
