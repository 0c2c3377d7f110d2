package api

// MaskStringRequest asks for the string section's key rule-set to be
// applied to Input.
type MaskStringRequest struct {
	Input string `json:"input"`
	Key   string `json:"key" binding:"required"`
}

// MaskRegexRequest asks for the regex section's key/name pattern to be
// applied to Input.
type MaskRegexRequest struct {
	Input string `json:"input"`
	Key   string `json:"key" binding:"required"`
	Name  string `json:"name" binding:"required"`
}

// MaskJSONRequest asks for the json section's key rule-set to be applied
// to Input, a serialized JSON document.
type MaskJSONRequest struct {
	Input string `json:"input" binding:"required"`
	Key   string `json:"key" binding:"required"`
}
