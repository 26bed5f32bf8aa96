package metrics

import (
	"encoding/json"
	"io"
)

// WriteSnapshot encodes the current snapshot as indented JSON. Workload
// mode uses it for the end-of-run report.
func (c *Collector) WriteSnapshot(w io.Writer, policy string) error {
	snap := c.metrics.Snapshot(policy)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}
