// Package health reports process health and the active scoring capability.
package health

// Models the service can report as active.
const (
	ModelSemantic = "semantic"
	ModelLexical  = "lexical"
)

// Report is the health endpoint payload. The process is always "healthy"
// when it can answer at all; Model names the strongest scoring tier
// currently available.
type Report struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}

// Service answers health probes. semantic can be nil.
type Service struct {
	semantic CapabilityProber
}

// New creates a Service.
func New(semantic CapabilityProber) *Service {
	return &Service{semantic: semantic}
}

// Check reports the current capability tier.
func (s *Service) Check() Report {
	model := ModelLexical
	if s.semantic != nil && s.semantic.Available() {
		model = ModelSemantic
	}
	return Report{Status: "healthy", Model: model}
}
