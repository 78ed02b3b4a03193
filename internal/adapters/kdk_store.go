package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rootpatch/internal/shared"
	"rootpatch/internal/types"
)

// kitSentinel must exist inside a kit for it to count as usable; a
// half-extracted download leaves the directory without it.
const kitSentinel = "System/Library/Extensions/System.kext/PlugIns/Libkern.kext/Libkern"

const kitSuffix = ".kdk"

// KernelCollectionStoreAdapter scans a local directory of debug kits
// named KDK_<release>_<build>.kdk.
type KernelCollectionStoreAdapter struct {
	Dir string
}

func NewKernelCollectionStoreAdapter(dir string) KernelCollectionStoreAdapter {
	return KernelCollectionStoreAdapter{Dir: dir}
}

// Locate picks the best usable kit for the running release. An exact
// build match always wins; otherwise the newest same-major kit at or
// below the running release is taken.
func (a KernelCollectionStoreAdapter) Locate(version types.Version, build string) (types.KernelCollectionKit, bool, error) {
	entries, err := os.ReadDir(a.Dir)
	if os.IsNotExist(err) {
		return types.KernelCollectionKit{}, false, nil
	}
	if err != nil {
		return types.KernelCollectionKit{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan kernel debug kit store").
			WithCause(err)
	}

	var best types.KernelCollectionKit
	found := false
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasSuffix(entry.Name(), kitSuffix) {
			continue
		}
		kit, ok := a.parseKitName(entry.Name())
		if !ok || !a.usable(kit.Path) {
			continue
		}
		if kit.Build == build {
			kit.ExactMatch = true
			return kit, true, nil
		}
		if kit.Version.Major != version.Major || kit.Version.After(version) {
			continue
		}
		if !found || shared.CompareDottedVersions(kit.Raw, best.Raw) > 0 {
			best = kit
			found = true
		}
	}
	return best, found, nil
}

// parseKitName splits KDK_22.6.1_22G120.kdk into its release and build.
func (a KernelCollectionStoreAdapter) parseKitName(name string) (types.KernelCollectionKit, bool) {
	trimmed := strings.TrimSuffix(name, kitSuffix)
	pieces := strings.Split(trimmed, "_")
	if len(pieces) != 3 || pieces[0] != "KDK" {
		return types.KernelCollectionKit{}, false
	}
	parts := shared.SplitVersionParts(pieces[1])
	if len(parts) < 2 {
		return types.KernelCollectionKit{}, false
	}
	return types.KernelCollectionKit{
		Path:    filepath.Join(a.Dir, name),
		Build:   pieces[2],
		Raw:     pieces[1],
		Version: types.Version{Major: parts[0], Minor: parts[1]},
	}, true
}

func (a KernelCollectionStoreAdapter) usable(path string) bool {
	info, err := os.Stat(filepath.Join(path, kitSentinel))
	return err == nil && !info.IsDir()
}
