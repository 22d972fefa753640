package release

import "strings"

// installerSuffixes in priority order
var installerSuffixes = []string{".msi", ".exe"}

// SelectPrimaryInstaller picks the asset used for the main download button:
// the first .msi in input order, else the first .exe, else nil.
// Matching is case-insensitive and the input is never reordered.
func SelectPrimaryInstaller(assets []Asset) *Asset {
	for _, suffix := range installerSuffixes {
		for i := range assets {
			if strings.HasSuffix(strings.ToLower(assets[i].Name), suffix) {
				a := assets[i]
				return &a
			}
		}
	}
	return nil
}
