package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireSingleInstance(t *testing.T) {
	const appName = "IntervalTimerGuardTest"

	guard, err := AcquireSingleInstance(appName)
	require.NoError(t, err)

	_, err = AcquireSingleInstance(appName)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())
	require.NoError(t, guard.Release())

	again, err := AcquireSingleInstance(appName)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestGuardAddressIsStable(t *testing.T) {
	assert.Equal(t, GuardAddress("a"), GuardAddress("a"))
	assert.NotEqual(t, GuardAddress("IntervalTimer"), GuardAddress("IntervalTimer2"))

	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
}
