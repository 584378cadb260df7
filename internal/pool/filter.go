package pool

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/swappool/internal/common"
)

// FilterMode is a viewer's declared acceptance of explicit content.
type FilterMode string

const (
	FilterSFW  FilterMode = "sfw"
	FilterAll  FilterMode = "all"
	FilterNSFW FilterMode = "nsfw"
)

// ParseFilterMode accepts "sfw", "all" and "nsfw" in any case. An empty
// string means sfw.
func ParseFilterMode(s string) (FilterMode, error) {
	switch m := FilterMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return FilterSFW, nil
	case FilterSFW, FilterAll, FilterNSFW:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown filter mode %q", common.ErrorValidation, s)
	}
}

// FilterFromNSFW maps the boolean "show me NSFW" switch used by older
// clients onto the three-way mode: true selects only NSFW content, false
// only safe content.
func FilterFromNSFW(nsfw bool) FilterMode {
	if nsfw {
		return FilterNSFW
	}
	return FilterSFW
}

func (m FilterMode) valid() bool {
	return m == FilterSFW || m == FilterAll || m == FilterNSFW
}

func (m FilterMode) matches(e *Entry) bool {
	switch m {
	case FilterSFW:
		return !e.IsNSFW
	case FilterNSFW:
		return e.IsNSFW
	default:
		return true
	}
}
