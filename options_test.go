package xmltree

import "testing"

func TestDefaultConfig(t *testing.T) {
	c := defaultConfig()
	if !c.preserveComments {
		t.Fatalf("default config should preserve comments")
	}
	if c.ignoreUndefinedEntities || c.preserveCDATA || c.preserveDocumentType {
		t.Fatalf("default config = %+v, want all other flags false", c)
	}
}

func TestApplyOptionsOverridesDefaults(t *testing.T) {
	c := applyOptions([]Option{
		IgnoreUndefinedEntities(true),
		PreserveCDATA(true),
		PreserveComments(false),
	})
	if !c.ignoreUndefinedEntities || !c.preserveCDATA || c.preserveComments {
		t.Fatalf("applyOptions = %+v, want ignoreUndefinedEntities and preserveCDATA true, preserveComments false", c)
	}
}

func TestApplyOptionsSkipsNilOption(t *testing.T) {
	c := applyOptions([]Option{nil, PreserveCDATA(true)})
	if !c.preserveCDATA {
		t.Fatalf("expected nil options to be skipped without panicking")
	}
}

func TestResolveUndefinedEntityOption(t *testing.T) {
	hook := func(name string) (string, bool) { return "x", true }
	c := applyOptions([]Option{ResolveUndefinedEntity(hook)})
	if c.resolveUndefinedEntity == nil {
		t.Fatalf("expected resolveUndefinedEntity hook to be set")
	}
	if text, ok := c.resolveUndefinedEntity("anything"); !ok || text != "x" {
		t.Fatalf("hook(...) = %q, %v, want \"x\", true", text, ok)
	}
}
