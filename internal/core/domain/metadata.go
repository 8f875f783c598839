package domain

// IOSpec declares a type an application consumes or produces.
type IOSpec struct {
	// Type is the document or annotation type.
	Type string `json:"@type"`

	// Properties are type-specific properties (e.g. category).
	Properties map[string]string `json:"properties,omitempty"`
}

// ParameterSpec declares a runtime parameter.
// Parameters are declared for callers; the core does not enforce them.
type ParameterSpec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Default     string `json:"default"`
}

// AppMetadata describes the application to callers of the service.
type AppMetadata struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Identifier  string          `json:"identifier"`
	URL         string          `json:"url"`
	License     string          `json:"app_license"`
	Version     string          `json:"app_version"`
	Input       []IOSpec        `json:"input"`
	Output      []IOSpec        `json:"output"`
	Parameters  []ParameterSpec `json:"parameters"`
}

// Parameter returns the declared parameter with the given name.
func (m *AppMetadata) Parameter(name string) (ParameterSpec, bool) {
	for _, p := range m.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return ParameterSpec{}, false
}
