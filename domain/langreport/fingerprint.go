package langreport

import (
	"fmt"
	"strings"

	"langtrends/domain/core"
)

// Fingerprint hashes the tidy records independent of their order.
func Fingerprint(tidy []TidyRecord) core.Hash {
	var b strings.Builder
	for _, r := range SortTidy(tidy) {
		fmt.Fprintf(&b, "%s\x1f%d\x1f%d\x1f%s\n", r.Country, r.Year, r.Slot, r.Language)
	}
	return core.NewHash([]byte(b.String()))
}
