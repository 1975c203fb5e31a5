package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferencedNames(t *testing.T) {
	content := "@a() @b { @c[0] @a ( @b{ @d [x] @e"

	assert.Equal(t, []string{"a"}, ReferencedNames(content, PositionCall))
	assert.Equal(t, []string{"b"}, ReferencedNames(content, PositionBlock))
	assert.Equal(t, []string{"c", "d"}, ReferencedNames(content, PositionIndex))
	assert.Empty(t, ReferencedNames("no references", PositionBlock))
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "call", PositionCall.String())
	assert.Equal(t, "block", PositionBlock.String())
	assert.Equal(t, "index", PositionIndex.String())
	assert.Equal(t, "unknown", Position(9).String())
}

func TestCoOccur(t *testing.T) {
	assert.True(t, CoOccur("@x ... @y", "x", "y"))
	assert.True(t, CoOccur("@xy", "x", "xy"))
	assert.False(t, CoOccur("@x only", "x", "y"))
	assert.False(t, CoOccur("x and y", "x", "y"))
}

func resultWith(tools, prompts, resources []string) *AnalysisResult {
	r := &AnalysisResult{}
	for _, n := range tools {
		r.Tools = append(r.Tools, Tool{Name: n})
	}
	for _, n := range prompts {
		r.Prompts = append(r.Prompts, Prompt{Name: n})
	}
	for _, n := range resources {
		r.Resources = append(r.Resources, Resource{Name: n})
	}
	return r
}

func TestAnalyzeRelationships(t *testing.T) {
	t.Run("block and index references", func(t *testing.T) {
		r := resultWith([]string{"t1"}, []string{"p1"}, []string{"r1"})
		AnalyzeRelationships("@t1() {\n  @p1 {\n    @r1[path]\n  }\n}", r)

		got, ok := r.Relationships.ToolToPrompt.Get("t1")
		assert.True(t, ok)
		assert.Equal(t, []string{"p1"}, got)

		got, _ = r.Relationships.PromptToResource.Get("p1")
		assert.Equal(t, []string{"r1"}, got)

		got, _ = r.Relationships.ToolToResource.Get("t1")
		assert.Equal(t, []string{"r1"}, got)
	})

	t.Run("no proximity required", func(t *testing.T) {
		r := resultWith([]string{"t1"}, []string{"p1"}, nil)
		AnalyzeRelationships("@t1 at the top\n\n\n...much later... @p1{}", r)
		assert.True(t, r.Relationships.ToolToPrompt.Has("t1"))
	})

	t.Run("call position alone does not link", func(t *testing.T) {
		r := resultWith([]string{"t1"}, []string{"p1"}, []string{"r1"})
		AnalyzeRelationships("@t1 @p1() @r1()", r)
		assert.Zero(t, r.Relationships.Edges())
	})

	t.Run("source must appear", func(t *testing.T) {
		r := resultWith([]string{"t1"}, []string{"p1"}, nil)
		AnalyzeRelationships("@p1{ }", r)
		assert.False(t, r.Relationships.ToolToPrompt.Has("t1"))
		assert.Zero(t, r.Relationships.ToolToPrompt.Len())
	})

	t.Run("unknown names ignored", func(t *testing.T) {
		r := resultWith([]string{"t1"}, []string{"p1"}, nil)
		AnalyzeRelationships("@t1 @other{ }", r)
		assert.Zero(t, r.Relationships.Edges())
	})

	t.Run("targets follow known order", func(t *testing.T) {
		r := resultWith([]string{"t"}, nil, []string{"a", "b", "c"})
		AnalyzeRelationships("@t @c[1] @a[2]", r)
		got, _ := r.Relationships.ToolToResource.Get("t")
		assert.Equal(t, []string{"a", "c"}, got)
	})

	t.Run("later file replaces earlier targets", func(t *testing.T) {
		r := resultWith([]string{"t"}, []string{"p", "q"}, nil)
		AnalyzeRelationships("@t @p{}", r)
		AnalyzeRelationships("@t @q{}", r)
		AnalyzeRelationships("nothing here", r)

		got, _ := r.Relationships.ToolToPrompt.Get("t")
		assert.Equal(t, []string{"q"}, got)
	})
}
