package client

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContinue(t *testing.T) {
	var r Registry
	r.Initialize()

	// first view counts
	assert.True(t, r.Continue("10.0.0.1", "fac-1"))

	// same client & facility = page refresh
	assert.False(t, r.Continue("10.0.0.1", "fac-1"))

	// another facility counts again
	assert.True(t, r.Continue("10.0.0.1", "fac-2"))

	// another client is independent
	assert.True(t, r.Continue("10.0.0.2", "fac-2"))
}

func TestCountAndDump(t *testing.T) {
	var r Registry
	r.Initialize()

	_ = r.Continue("10.0.0.1", "fac-1")
	_ = r.Continue("10.0.0.2", "fac-2")

	assert.Equal(t, 2, r.Count())
	assert.Equal(t, 2, len(r.Dump(50)))
	assert.Equal(t, 1, len(r.Dump(1)))
}

// run with -race: Dump iterates the map while handlers keep writing to it
func TestDumpDuringWrites(t *testing.T) {
	var r Registry
	r.Initialize()

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
				_ = r.Continue(fmt.Sprintf("10.0.0.%d", i%50), "fac-1")
			}
		}
	}()

	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				_ = r.Dump(50)
			}
		}
	}()

	time.Sleep(50 * time.Millisecond)
	close(done)
	wg.Wait()

	assert.True(t, r.Count() > 0)
}
