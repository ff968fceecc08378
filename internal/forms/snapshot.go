package forms

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Snapshot is the read view form renderers poll: every template keyed by ID
// with a weak ETag over the serialized content. Renderers send the ETag back
// as If-None-Match to skip unchanged payloads.
type Snapshot struct {
	ETag      string              `json:"etag"`
	Templates map[string]Template `json:"templates"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// BuildSnapshot assembles a snapshot from the given templates. The ETag is
// deterministic: templates are serialized in ID order before hashing so two
// identical template sets always produce the same tag.
func BuildSnapshot(templates []Template) *Snapshot {
	byID := make(map[string]Template, len(templates))
	ids := make([]string, 0, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}
	sort.Strings(ids)

	digest := xxhash.New()
	for _, id := range ids {
		blob, _ := json.Marshal(byID[id])
		_, _ = digest.Write(blob)
	}

	return &Snapshot{
		ETag:      fmt.Sprintf(`W/"%016x"`, digest.Sum64()),
		Templates: byID,
		UpdatedAt: time.Now().UTC(),
	}
}
