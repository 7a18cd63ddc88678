package toolkit

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"
)

// Catalog is an insertion-ordered registry of tools. It has two phases:
// building (Register accepted) and frozen (read-only). Freeze is one-way
// and must be called before concurrent dispatch begins.
type Catalog struct {
	mu      sync.RWMutex
	tools   map[string]*ToolDefinition
	schemas map[string]*gojsonschema.Schema
	docs    map[string]map[string]interface{}
	order   []string
	frozen  bool
}

// NewCatalog creates an empty catalog in the building phase.
func NewCatalog() *Catalog {
	return &Catalog{
		tools:   make(map[string]*ToolDefinition),
		schemas: make(map[string]*gojsonschema.Schema),
		docs:    make(map[string]map[string]interface{}),
	}
}

// Register adds a tool. The name must be unique; the definition is
// validated and its JSON Schema compiled up front so invalid tools are
// rejected at startup rather than at call time.
func (c *Catalog) Register(def ToolDefinition) error {
	if err := validateToolDefinition(def); err != nil {
		return fmt.Errorf("invalid tool definition: %w", err)
	}

	doc := schemaDoc(def)
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("failed to compile schema for %s: %w", def.Name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frozen {
		return fmt.Errorf("cannot register %s: %w", def.Name, ErrCatalogFrozen)
	}
	if _, exists := c.tools[def.Name]; exists {
		return fmt.Errorf("%s: %w", def.Name, ErrDuplicateTool)
	}

	c.tools[def.Name] = &def
	c.schemas[def.Name] = schema
	c.docs[def.Name] = doc
	c.order = append(c.order, def.Name)

	log.Info().Str("tool", def.Name).Msg("Tool registered")

	return nil
}

// Freeze ends the building phase. After Freeze the catalog is read-only
// and safe for concurrent lookups.
func (c *Catalog) Freeze() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.frozen {
		c.frozen = true
		log.Info().Int("tools", len(c.order)).Msg("Catalog frozen")
	}
}

// Frozen reports whether the catalog has left the building phase.
func (c *Catalog) Frozen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.frozen
}

// Lookup returns the definition registered under name.
func (c *Catalog) Lookup(name string) (*ToolDefinition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	def, ok := c.tools[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrToolNotFound)
	}
	return def, nil
}

// List returns all definitions in registration order. Repeated calls
// return the same order.
func (c *Catalog) List() []ToolDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]ToolDefinition, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, *c.tools[name])
	}
	return out
}

// Describe returns the advertised view of every tool in registration
// order, for capability discovery.
func (c *Catalog) Describe() []ToolInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]ToolInfo, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, ToolInfo{
			Name:        name,
			Description: c.tools[name].Description,
			InputSchema: c.docs[name],
		})
	}
	return out
}

// Len returns the number of registered tools.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

func (c *Catalog) schema(name string) *gojsonschema.Schema {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.schemas[name]
}

func validateToolDefinition(def ToolDefinition) error {
	if def.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if def.Description == "" {
		return fmt.Errorf("tool description cannot be empty")
	}
	if def.Handler == nil {
		return fmt.Errorf("tool handler cannot be nil")
	}

	validTypes := map[string]bool{
		"string": true, "number": true, "boolean": true,
		"object": true, "array": true, "integer": true,
	}
	for _, param := range def.Parameters {
		if param.Name == "" {
			return fmt.Errorf("parameter name cannot be empty")
		}
		if !validTypes[param.Type] {
			return fmt.Errorf("invalid parameter type %s for %s", param.Type, param.Name)
		}
	}

	return nil
}

// schemaDoc builds the JSON Schema document for a tool's parameters.
// Unexpected fields are rejected via additionalProperties.
func schemaDoc(def ToolDefinition) map[string]interface{} {
	properties := make(map[string]interface{}, len(def.Parameters))
	required := []string{}

	for _, param := range def.Parameters {
		paramSchema := map[string]interface{}{
			"type":        param.Type,
			"description": param.Description,
		}
		if param.Default != nil {
			paramSchema["default"] = param.Default
		}
		properties[param.Name] = paramSchema

		if param.Required {
			required = append(required, param.Name)
		}
	}

	doc := map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           properties,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	return doc
}
