package types

// KernelCollectionKit is one debug kit found in the local store. Raw is
// the full dotted release the kit was built for; Version is the same
// value truncated to the comparable pair.
type KernelCollectionKit struct {
	Path    string  `yaml:"path"`
	Build   string  `yaml:"build"`
	Raw     string  `yaml:"raw"`
	Version Version `yaml:"version"`

	// ExactMatch marks a kit built for the running build rather than a
	// same-major fallback.
	ExactMatch bool `yaml:"exact_match"`
}
