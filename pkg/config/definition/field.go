package definition

import (
	"reflect"
	"sort"
)

// FieldDef describes one configuration field: where it lives, its default
// and how it is exposed on the command line and in the environment.
type FieldDef struct {
	Path    string       // Config path like "table.page_size"
	Default any          // Default value
	CLIFlag string       // CLI flag name like "page-size"
	EnvVar  string       // Environment variable name like "TABLE_PAGE_SIZE"
	Type    reflect.Type // Field type
	Help    string       // Help text for CLI
}

// Registry holds all configuration field definitions
type Registry struct {
	fields map[string]FieldDef
}

func NewRegistry() *Registry {
	return &Registry{
		fields: make(map[string]FieldDef),
	}
}

// Register adds a field definition, replacing any field with the same path.
func (r *Registry) Register(field *FieldDef) {
	r.fields[field.Path] = *field
}

func (r *Registry) GetField(path string) (FieldDef, bool) {
	field, exists := r.fields[path]
	return field, exists
}

// GetDefault returns the default value for a field path
func (r *Registry) GetDefault(path string) any {
	if field, exists := r.fields[path]; exists {
		return field.Default
	}
	return nil
}

// Paths returns every registered path in lexical order.
func (r *Registry) Paths() []string {
	paths := make([]string, 0, len(r.fields))
	for path := range r.fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// GetCLIFlagMapping returns a map of CLI flag names to config paths
func (r *Registry) GetCLIFlagMapping() map[string]string {
	mapping := make(map[string]string)
	for path, field := range r.fields {
		if field.CLIFlag != "" {
			mapping[field.CLIFlag] = path
		}
	}
	return mapping
}
