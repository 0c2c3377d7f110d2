package api

// MaskResponse carries the masked output of any /mask endpoint.
type MaskResponse struct {
	Output string `json:"output"`
}

// ErrorResponse is returned for malformed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports liveness and configured rule-set counts.
type HealthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	StringKeys int    `json:"string_keys"`
	RegexKeys  int    `json:"regex_keys"`
	JSONKeys   int    `json:"json_keys"`
}
