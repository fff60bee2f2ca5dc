package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeQueryIncludesNoTargets(t *testing.T) {
	q := NewScopeQuery("", "", "")

	assert.True(t, q.Includes("com.x.Foo"))
	assert.True(t, q.Includes("org.other.Bar"))
}

func TestScopeQueryPackagePrefix(t *testing.T) {
	q := NewScopeQuery("", "com.x", "")

	assert.True(t, q.Includes("com.x.Foo"))
	assert.True(t, q.Includes("com.x.sub.Baz"))
	assert.False(t, q.Includes("com.y.Bar"))
}

func TestScopeQueryClassTargets(t *testing.T) {
	q := NewScopeQuery("", "", "UserService, com.x.AuthController")

	// Simple name matches via the "."+name suffix form.
	assert.True(t, q.Includes("com.app.UserService"))
	// Fully qualified name matches exactly.
	assert.True(t, q.Includes("com.x.AuthController"))
	// Substring is not enough.
	assert.False(t, q.Includes("com.app.UserServiceHelper"))
	assert.False(t, q.Includes("com.app.Other"))
}

func TestScopeQueryBuiltinExclusionsBeatClassTargets(t *testing.T) {
	// An explicitly targeted class in a generated package stays excluded.
	q := NewScopeQuery("", "", "Mapper")

	assert.False(t, q.Includes("com.x.generated.Mapper"))
	assert.False(t, q.Includes("com.x.dto.Mapper"))
}

func TestScopeQueryBuiltinExclusions(t *testing.T) {
	q := NewScopeQuery("", "", "")

	excluded := []string{
		"com.x.generated.OrderMapper",
		"com.x.dto.OrderRequest",
		"com.x.dtos.OrderRequest",
		"com.x.model.Order",
		"com.x.models.Order",
		"com.x.exception.NotFound",
		"com.x.exceptions.NotFound",
		"com.x.OrderDto",
		"com.x.NotFoundException",
		"com.x.GENERATED.Thing", // case-insensitive
	}
	for _, name := range excluded {
		assert.False(t, q.Includes(name), "expected %s to be excluded", name)
	}

	included := []string{
		"com.x.OrderService",
		"com.x.modeling.Engine", // "modeling" is not the "model" package marker
		"com.x.Dtomic",
	}
	for _, name := range included {
		assert.True(t, q.Includes(name), "expected %s to be included", name)
	}
}

func TestScopeQueryDeterministic(t *testing.T) {
	q := NewScopeQuery("mod-a", "com.x", "Foo")

	for i := 0; i < 3; i++ {
		assert.True(t, q.Includes("com.x.Service"))
		assert.False(t, q.Includes("com.y.Service"))
	}
}

func TestScopeQueryModulesDoNotFilterClasses(t *testing.T) {
	// Modules steer report discovery only; a module-only query includes
	// every class.
	q := NewScopeQuery("mod-a,mod-b", "", "")

	assert.True(t, q.Includes("com.anything.Foo"))
}

func TestScopeQueryWithExcludePatterns(t *testing.T) {
	q, err := NewScopeQuery("", "", "").WithExcludePatterns([]string{`\.internal\.`})
	require.NoError(t, err)

	assert.False(t, q.Includes("com.x.internal.Secret"))
	assert.True(t, q.Includes("com.x.Public"))
	// Built-ins stay active.
	assert.False(t, q.Includes("com.x.dto.Thing"))
}

func TestScopeQueryWithBadExcludePattern(t *testing.T) {
	_, err := NewScopeQuery("", "", "").WithExcludePatterns([]string{"("})
	require.Error(t, err)
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"single", "com.x", []string{"com.x"}},
		{"trimmed", " a , b ,c", []string{"a", "b", "c"}},
		{"drops empties", "a,,b,", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.input))
		})
	}
}
