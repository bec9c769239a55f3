package watcher

import (
	"testing"
	"time"

	"apechain-buybot/internal/explorer"
	"apechain-buybot/internal/types"

	"github.com/stretchr/testify/require"
)

func newTestManager(ledger *fakeLedger, dispatcher *fakeDispatcher) *Manager {
	return NewManager(ledger, &fakePrices{priceUSD: 1.0}, dispatcher, stubRenderer{}, 5*time.Millisecond, PolicyContinue)
}

func testOpts(user int64, token string) types.SettingOpts {
	return types.SettingOpts{
		UserID:       user,
		GroupChatID:  testChat,
		TokenAddress: token,
		BuyStep:      30,
		Emoji:        "💎",
	}
}

func TestManagerStartStop(t *testing.T) {
	m := newTestManager(&fakeLedger{page: transferPage("0xaaa", "UTB"), tx: feeTx()}, &fakeDispatcher{})

	require.NoError(t, m.Start(testOpts(1, testToken)))
	require.True(t, m.IsActive(1, testToken))
	require.Equal(t, 1, m.ActiveCount())

	require.True(t, m.Stop(1, testToken))
	require.Eventually(t, func() bool { return m.ActiveCount() == 0 }, time.Second, 5*time.Millisecond)
	require.False(t, m.Stop(1, testToken), "stopping a stopped session reports false")
}

func TestManagerRejectsEmptyTokenAddress(t *testing.T) {
	m := newTestManager(&fakeLedger{}, &fakeDispatcher{})
	require.Error(t, m.Start(testOpts(1, "")))
	require.Equal(t, 0, m.ActiveCount())
}

func TestManagerRestartReplacesSession(t *testing.T) {
	m := newTestManager(&fakeLedger{page: transferPage("0xaaa", "UTB"), tx: feeTx()}, &fakeDispatcher{})

	require.NoError(t, m.Start(testOpts(1, testToken)))
	require.NoError(t, m.Start(testOpts(1, testToken)), "re-confirm restarts in place")
	require.Equal(t, 1, m.ActiveCount())

	m.StopAll()
	require.Equal(t, 0, m.ActiveCount())
}

func TestManagerStopAllWaitsForSessions(t *testing.T) {
	m := newTestManager(&fakeLedger{page: &explorer.TransferPage{}}, &fakeDispatcher{})

	for i := int64(1); i <= 3; i++ {
		require.NoError(t, m.Start(testOpts(i, testToken)))
	}
	require.Equal(t, 3, m.ActiveCount())

	done := make(chan struct{})
	go func() {
		m.StopAll()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("StopAll did not drain sessions")
	}
	require.Equal(t, 0, m.ActiveCount())
}

func TestManagerResume(t *testing.T) {
	m := newTestManager(&fakeLedger{page: &explorer.TransferPage{}}, &fakeDispatcher{})

	m.Resume([]types.SettingOpts{
		testOpts(1, testToken),
		testOpts(2, testToken),
		testOpts(3, ""), // skipped, logged
	})
	require.Equal(t, 2, m.ActiveCount())

	m.StopAll()
}
