package types

// BlockingCondition names one unmet precondition in a gating report.
type BlockingCondition string

const (
	BlockSIPEnabled              BlockingCondition = "sip_enabled"
	BlockSecureBootEnabled       BlockingCondition = "secure_boot_enabled"
	BlockFileVaultEnabled        BlockingCondition = "filevault_enabled"
	BlockSigningEnforced         BlockingCondition = "signing_enforced"
	BlockForeignPatches          BlockingCondition = "foreign_patches"
	BlockWebDriverNVRAMMissing   BlockingCondition = "web_driver_nvram_missing"
	BlockWebDriverOpenGLMissing  BlockingCondition = "web_driver_opengl_missing"
	BlockWebDriverCompatMissing  BlockingCondition = "web_driver_compat_missing"
	BlockWebDriverHelperMissing  BlockingCondition = "web_driver_helper_missing"
	BlockNetworkRequired         BlockingCondition = "network_required"
)

// GatingReport explains whether the plan may be applied right now and,
// if not, which enforcement states stand in the way. An empty Blocking
// list with an empty plan means no patches are required at all; callers
// must render that distinctly from "required but blocked".
type GatingReport struct {
	Blocking []BlockingCondition `yaml:"blocking,omitempty"`

	// RequiredSIPValue is the csr-active-config relaxation the current
	// configuration needs, rendered for diagnostics.
	RequiredSIPValue string `yaml:"required_sip_value"`

	// SigningLevel is the depth of signing relaxation the plan needs:
	// 0 none, 1 library validation only, 3 full enforcement off.
	SigningLevel int `yaml:"signing_level"`

	CanApply  bool `yaml:"can_apply"`
	CanRevert bool `yaml:"can_revert"`
}

// BlockedBy reports whether the named condition is present.
func (r GatingReport) BlockedBy(condition BlockingCondition) bool {
	for _, blocked := range r.Blocking {
		if blocked == condition {
			return true
		}
	}
	return false
}

// PlannedPatch is one resolved catalog entry, with any optional
// components that failed their own gate recorded rather than installed.
type PlannedPatch struct {
	Name              string     `yaml:"name"`
	DisplayName       string     `yaml:"display_name"`
	Operations        Operations `yaml:"operations,omitempty"`
	OmittedComponents []string   `yaml:"omitted_components,omitempty"`
}

// PatchPlan is the ordered, deduplicated patch set for one resolution.
// It has no identity beyond the call that produced it.
type PatchPlan struct {
	OSVersion Version        `yaml:"os_version"`
	Patches   []PlannedPatch `yaml:"patches,omitempty"`
}

// Names returns the entry names in plan order.
func (p PatchPlan) Names() []string {
	names := make([]string, 0, len(p.Patches))
	for _, patch := range p.Patches {
		names = append(names, patch.Name)
	}
	return names
}

// Empty reports whether the plan carries no patches.
func (p PatchPlan) Empty() bool {
	return len(p.Patches) == 0
}

// AppliedManifest is the durable record a completed patch run leaves on
// the root volume. Later runs read it to answer "was the narrow wireless
// fix already committed" without network access.
type AppliedManifest struct {
	PatcherVersion   string   `yaml:"patcher_version"`
	OSVersion        Version  `yaml:"os_version"`
	OSBuild          string   `yaml:"os_build,omitempty"`
	PatchedAt        string   `yaml:"patched_at"`
	KernelCollection string   `yaml:"kernel_collection,omitempty"`
	Patches          []string `yaml:"patches"`
}

// Includes reports whether the manifest records the named entry.
func (m AppliedManifest) Includes(name string) bool {
	for _, patch := range m.Patches {
		if patch == name {
			return true
		}
	}
	return false
}
