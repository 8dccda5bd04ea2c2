package health

// CapabilityProber reports whether the semantic scoring capability is usable.
type CapabilityProber interface {
	Available() bool
}
