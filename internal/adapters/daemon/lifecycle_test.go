package daemon_test

import (
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/gridscript/internal/adapters/daemon"
)

func TestLifecycle_AutoShutdown(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		lc := daemon.NewLifecycle(100 * time.Millisecond)

		select {
		case <-lc.ShutdownChan():
		case <-time.After(200 * time.Millisecond):
			t.Fatal("expected shutdown to be triggered")
		}
		synctest.Wait()
	})
}

func TestLifecycle_RequestBoundaryResetsTimer(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		lc := daemon.NewLifecycle(100 * time.Millisecond)

		time.Sleep(50 * time.Millisecond)
		lc.Begin()
		lc.End()

		select {
		case <-lc.ShutdownChan():
			t.Fatal("shutdown should not have triggered yet")
		case <-time.After(60 * time.Millisecond):
		}

		select {
		case <-lc.ShutdownChan():
		case <-time.After(60 * time.Millisecond):
			t.Fatal("expected shutdown after the idle timeout")
		}
		synctest.Wait()
	})
}

func TestLifecycle_InFlightRequestHoldsShutdown(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		lc := daemon.NewLifecycle(100 * time.Millisecond)

		lc.Begin()
		select {
		case <-lc.ShutdownChan():
			t.Fatal("shutdown must wait for the request to end")
		case <-time.After(time.Second):
		}
		assert.Equal(t, 100*time.Millisecond, lc.IdleRemaining())

		lc.End()
		select {
		case <-lc.ShutdownChan():
		case <-time.After(200 * time.Millisecond):
			t.Fatal("expected shutdown after the last request ended")
		}
		synctest.Wait()
	})
}

func TestLifecycle_IdleRemaining(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		lc := daemon.NewLifecycle(100 * time.Millisecond)
		assert.Equal(t, 100*time.Millisecond, lc.IdleRemaining())

		time.Sleep(40 * time.Millisecond)
		assert.Equal(t, 60*time.Millisecond, lc.IdleRemaining())

		time.Sleep(time.Second)
		assert.Zero(t, lc.IdleRemaining())
		synctest.Wait()
	})
}

func TestLifecycle_UptimeAndLastActivity(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		lc := daemon.NewLifecycle(time.Hour)
		initial := lc.LastActivity()

		time.Sleep(10 * time.Millisecond)
		lc.Begin()
		lc.End()

		assert.Equal(t, 10*time.Millisecond, lc.Uptime())
		assert.True(t, lc.LastActivity().After(initial))
		lc.Shutdown()
		synctest.Wait()
	})
}

func TestLifecycle_Shutdown(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		lc := daemon.NewLifecycle(time.Hour)

		select {
		case <-lc.ShutdownChan():
			t.Fatal("should not have shutdown yet")
		case <-time.After(10 * time.Millisecond):
		}

		lc.Shutdown()
		lc.Shutdown()

		select {
		case <-lc.ShutdownChan():
		default:
			t.Fatal("should have shutdown after calling Shutdown()")
		}
		synctest.Wait()
	})
}
