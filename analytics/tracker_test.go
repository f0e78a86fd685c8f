package analytics

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// with gathering disabled the tracker must answer neutrally
// and never reach for its (unconfigured) connections
func TestTrackerDisabled(t *testing.T) {
	old := os.Getenv("USE_ANALYTICS")
	_ = os.Setenv("USE_ANALYTICS", "NO")
	defer os.Setenv("USE_ANALYTICS", old)

	tracker := new(Tracker)

	// no-op, must not panic on the zero value
	tracker.SaveVisitor("facility", "fac-1", "")

	visits, err := tracker.GetVisits("facility", "fac-1", time.Now().AddDate(0, 0, -7))
	assert.Nil(t, err)
	assert.Equal(t, int64(0), visits)

	visitors, err := tracker.ListVisitors("fac-1", time.Now().AddDate(0, 0, -7), "")
	assert.Nil(t, err)
	assert.Nil(t, visitors)

	tracker.Replicate()
}
