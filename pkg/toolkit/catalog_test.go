package toolkit

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHandler(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	return nil, nil
}

func TestCatalog_RegisterAndLookup(t *testing.T) {
	c := NewCatalog()

	def := ToolDefinition{
		Name:        "test_tool",
		Description: "A test tool",
		Parameters: []ToolParameter{
			{Name: "input", Type: "string", Description: "Input parameter", Required: true},
		},
		Handler: noopHandler,
	}

	err := c.Register(def)
	require.NoError(t, err)

	got, err := c.Lookup("test_tool")
	require.NoError(t, err)
	assert.Equal(t, "test_tool", got.Name)
	assert.Equal(t, "A test tool", got.Description)
	assert.Equal(t, def.Parameters, got.Parameters)
}

func TestCatalog_Lookup_NotFound(t *testing.T) {
	c := NewCatalog()

	_, err := c.Lookup("missing")
	assert.ErrorIs(t, err, ErrToolNotFound)
}

func TestCatalog_Register_Duplicate(t *testing.T) {
	c := NewCatalog()

	first := ToolDefinition{
		Name:        "dup",
		Description: "The original",
		Handler:     noopHandler,
	}
	require.NoError(t, c.Register(first))

	second := ToolDefinition{
		Name:        "dup",
		Description: "An impostor",
		Handler:     noopHandler,
	}
	err := c.Register(second)
	assert.ErrorIs(t, err, ErrDuplicateTool)

	// The existing entry must be untouched.
	got, err := c.Lookup("dup")
	require.NoError(t, err)
	assert.Equal(t, "The original", got.Description)
	assert.Equal(t, 1, c.Len())
}

func TestCatalog_Register_InvalidDefinition(t *testing.T) {
	c := NewCatalog()

	tests := []struct {
		name string
		def  ToolDefinition
	}{
		{
			name: "empty name",
			def:  ToolDefinition{Description: "Test", Handler: noopHandler},
		},
		{
			name: "empty description",
			def:  ToolDefinition{Name: "test", Handler: noopHandler},
		},
		{
			name: "nil handler",
			def:  ToolDefinition{Name: "test", Description: "Test"},
		},
		{
			name: "invalid parameter type",
			def: ToolDefinition{
				Name:        "test",
				Description: "Test",
				Parameters:  []ToolParameter{{Name: "x", Type: "decimal"}},
				Handler:     noopHandler,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Register(tt.def)
			assert.Error(t, err)
		})
	}
}

func TestCatalog_List_RegistrationOrder(t *testing.T) {
	c := NewCatalog()

	names := []string{"zeta", "alpha", "mike", "bravo", "yankee"}
	for _, name := range names {
		require.NoError(t, c.Register(ToolDefinition{
			Name:        name,
			Description: fmt.Sprintf("tool %s", name),
			Handler:     noopHandler,
		}))
	}

	listed := c.List()
	require.Len(t, listed, len(names))
	for i, def := range listed {
		assert.Equal(t, names[i], def.Name)
	}

	// Re-iterating yields the same order.
	again := c.List()
	for i, def := range again {
		assert.Equal(t, names[i], def.Name)
	}
}

func TestCatalog_Freeze_RejectsRegister(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Register(ToolDefinition{
		Name:        "early",
		Description: "Registered before freeze",
		Handler:     noopHandler,
	}))

	assert.False(t, c.Frozen())
	c.Freeze()
	assert.True(t, c.Frozen())

	err := c.Register(ToolDefinition{
		Name:        "late",
		Description: "Registered after freeze",
		Handler:     noopHandler,
	})
	assert.ErrorIs(t, err, ErrCatalogFrozen)
	assert.Equal(t, 1, c.Len())

	// Freeze is idempotent.
	c.Freeze()
	assert.True(t, c.Frozen())
}

func TestCatalog_Describe(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Register(ToolDefinition{
		Name:        "described",
		Description: "Has a schema",
		Parameters: []ToolParameter{
			{Name: "owner", Type: "string", Description: "Repository owner", Required: true},
			{Name: "limit", Type: "integer", Description: "Result limit", Default: 10},
		},
		Handler: noopHandler,
	}))

	infos := c.Describe()
	require.Len(t, infos, 1)
	info := infos[0]
	assert.Equal(t, "described", info.Name)
	assert.Equal(t, "Has a schema", info.Description)

	require.NotNil(t, info.InputSchema)
	assert.Equal(t, "object", info.InputSchema["type"])
	assert.Equal(t, false, info.InputSchema["additionalProperties"])
	assert.Equal(t, []string{"owner"}, info.InputSchema["required"])

	properties, ok := info.InputSchema["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, properties, "owner")
	assert.Contains(t, properties, "limit")
}
