package dispatch

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/seeklab/handlescout/internal/domain/namegen"
	"github.com/seeklab/handlescout/internal/domain/search/payload"
)

const neutralVibe = "steady"

// forecast synthesizes the single derived statement for a keyword: a vibe
// picked deterministically from the vibe table plus one suggested variation.
func (s *Service) forecast(p *payload.Payload) string {
	keyword := p.Keyword()

	descriptor := neutralVibe
	if len(s.vibes) > 0 {
		keys := make([]string, 0, len(s.vibes))
		for k := range s.vibes {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		h := fnv.New32a()
		_, _ = h.Write([]byte(keyword))
		descriptor = s.vibes[keys[int(h.Sum32())%len(keys)]]
	}

	suggestion := keyword
	if vars := namegen.Variations(keyword, len(keyword)+8); len(vars) > 1 {
		suggestion = vars[1]
	}

	return fmt.Sprintf("%q reads as %s right now; a handle like %q should land.",
		keyword, descriptor, suggestion)
}
