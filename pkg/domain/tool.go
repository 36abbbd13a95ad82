package domain

// Param describes a single tool parameter. All parameters are flat strings;
// optional parameters carry a default that the dispatcher injects when the
// caller omits the argument.
type Param struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Default     string `json:"default,omitempty"`
}

// Tool defines the metadata for a named operation. The table of tools is
// built once at startup and never mutated; both transports derive their
// schemas from it.
type Tool struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Params      []Param `json:"parameters"`
}
