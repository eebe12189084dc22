//go:build linux

package affinity

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-tcp/api"
)

func TestSetAffinity_PinsCallingThread(t *testing.T) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		// The thread is discarded on exit because it stays locked.
		runtime.LockOSThread()

		before, err := Allowed()
		require.NoError(t, err)
		require.NotEmpty(t, before)

		target := before[len(before)-1]
		require.NoError(t, SetAffinity(target))

		after, err := Allowed()
		require.NoError(t, err)
		assert.Equal(t, []int{target}, after)
	}()
	<-done
}

func TestSetAffinity_RejectsNegativeCPU(t *testing.T) {
	assert.ErrorIs(t, SetAffinity(-1), api.ErrInvalidArgument)
}
