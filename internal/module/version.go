package module

import (
	"strconv"
	"strings"
)

// CompareVersions compares two dot-separated version strings
// component-wise as integers, zero-padding the shorter one (spec §4.4,
// exercised by §8 scenario 3). A non-numeric component compares as 0.
// Returns <0 if a<b, 0 if equal, >0 if a>b.
func CompareVersions(a, b string) int {
	pa := strings.Split(a, ".")
	pb := strings.Split(b, ".")
	n := len(pa)
	if len(pb) > n {
		n = len(pb)
	}
	for i := 0; i < n; i++ {
		var va, vb int
		if i < len(pa) {
			va, _ = strconv.Atoi(pa[i])
		}
		if i < len(pb) {
			vb, _ = strconv.Atoi(pb[i])
		}
		if va != vb {
			return va - vb
		}
	}
	return 0
}
