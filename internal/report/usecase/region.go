package usecase

import (
	"regexp"
	"strings"

	"github.com/fekuna/omnipos-warehouse/internal/report/dto"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// A regional marker followed by a run of words, e.g. "Kab. Bogor" or
// "KOTA TASIKMALAYA". Punctuation or digits end the run. "Kota Adm." is folded
// into "Kota".
var regionPattern = regexp.MustCompile(`(?i)\b(kabupaten|kab\.?|kota(?:\s+adm(?:inistrasi)?\.?)?)\s+([a-z]+(?:[ ]+[a-z]+)*)`)

// RegionOf extracts a normalized region token from a free-text address, such
// as "Kabupaten Bogor" or "Kota Bandung". Unmatched addresses map to "Other".
func RegionOf(address string) string {
	m := regionPattern.FindStringSubmatch(address)
	if m == nil {
		return dto.RegionOther
	}

	kind := "Kabupaten"
	if strings.HasPrefix(strings.ToLower(m[1]), "kota") {
		kind = "Kota"
	}
	name := cases.Title(language.Indonesian).String(strings.Join(strings.Fields(m[2]), " "))
	return kind + " " + name
}
