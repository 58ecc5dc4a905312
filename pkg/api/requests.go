package api

// EstimateRequest is the one-shot estimation payload.
type EstimateRequest struct {
	Project  ProjectInputs    `json:"project"`
	Business BusinessSettings `json:"business"`
	Archive  bool             `json:"archive,omitempty"`
}

// EstimateResponse wraps a finished computation.
type EstimateResponse struct {
	Computation Computation `json:"computation"`
	SnapshotID  string      `json:"snapshot_id,omitempty"`
}

// CreateScenarioRequest adds a scenario to the session.
type CreateScenarioRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Overrides   ScenarioOverrides `json:"overrides"`
}

// UpdateScenarioRequest patches scenario metadata and overrides. The
// overrides merge shallowly; updating never triggers a recompute.
type UpdateScenarioRequest struct {
	Name        *string            `json:"name,omitempty"`
	Description *string            `json:"description,omitempty"`
	Overrides   *ScenarioOverrides `json:"overrides,omitempty"`
}

// SweepRequest asks for a sensitivity sweep of one parameter.
type SweepRequest struct {
	Project   ProjectInputs     `json:"project"`
	Business  BusinessSettings  `json:"business"`
	Overrides ScenarioOverrides `json:"overrides"`
	Parameter string            `json:"parameter"`
	Values    []float64         `json:"values"`
}

// ErrorResponse is the uniform API error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
