package memory

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"sdramctl-go/bus"
	"sdramctl-go/drivers/sdram"
	"sdramctl-go/drivers/sdram/sim"
	"sdramctl-go/errcode"
	"sdramctl-go/internal/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() sdram.Config {
	return sdram.Config{
		Populated:     sdram.MaskOf(sdram.Bank0),
		Control:       0x29D4,
		Timing:        0x01116361,
		ModeRegister:  0x0231,
		RefreshTimer:  0x0603,
		RefreshPrimes: 2,
	}
}

func newService(t *testing.T, opts ...Option) (*sim.Controller, *Service) {
	t.Helper()
	ctl := sim.New(sim.Config{BusyPolls: 1})
	dev := sdram.New(ctl, ctl, sdram.WithClock(ctl.Clock()))
	return ctl, New(dev, opts...)
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(nopWriter{}) })
	return &buf
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestUpDown(t *testing.T) {
	buf := captureLog(t)
	ctl, s := newService(t, WithName("bank1"))

	assert.Equal(t, sdram.Uninitialized, s.Status().State)
	require.NoError(t, s.Up(testConfig()))
	assert.Empty(t, ctl.Violations())
	assert.True(t, ctl.Operational())

	st := s.Status()
	assert.Equal(t, Status{Name: "bank1", State: sdram.Ready, Target: sdram.MaskOf(sdram.Bank0), Config: testConfig()}, st)
	assert.Contains(t, buf.String(), "sdram ready")
	assert.Contains(t, buf.String(), "device=bank1")

	writes := len(ctl.Writes())
	require.NoError(t, s.Up(testConfig()))
	assert.Len(t, ctl.Writes(), writes, "Up on a Ready device must not touch the hardware")

	require.NoError(t, s.Down())
	assert.Equal(t, Status{Name: "bank1", State: sdram.Idle}, s.Status())
	require.NoError(t, s.Down())
}

func TestDownBeforeUp(t *testing.T) {
	captureLog(t)
	_, s := newService(t)

	err := s.Down()
	require.Error(t, err)
	assert.True(t, errcode.Is(err, errcode.InvalidState))
	assert.Equal(t, sdram.Uninitialized, s.Status().State)
}

func TestUpFailures(t *testing.T) {
	captureLog(t)

	t.Run("invalid config", func(t *testing.T) {
		_, s := newService(t)
		err := s.Up(sdram.Config{})
		assert.True(t, errcode.Is(err, errcode.InvalidParams))
		assert.ErrorIs(t, err, sdram.ErrNoBanks)
		assert.Equal(t, sdram.Idle, s.Status().State)
	})

	t.Run("write fault", func(t *testing.T) {
		ctl, s := newService(t)
		ctl.FailWrites = errors.New("bus error")
		err := s.Up(testConfig())
		assert.True(t, errcode.Is(err, errcode.HardwareFault))
		assert.ErrorIs(t, err, ctl.FailWrites)
		assert.Equal(t, sdram.Idle, s.Status().State)
	})
}

func TestPublishesRetainedStatus(t *testing.T) {
	captureLog(t)
	b := bus.NewBus(4)
	conn := b.NewConnection("memory")
	_, s := newService(t, WithName("ext"), WithConnection(conn))

	require.NoError(t, s.Up(testConfig()))
	m, ok := b.Retained(bus.T("sdram", "ext", "state"))
	require.True(t, ok)
	assert.Equal(t, sdram.Ready, m.Payload.(Status).State)

	require.NoError(t, s.Down())
	m, _ = b.Retained(s.StateTopic())
	assert.Equal(t, sdram.Idle, m.Payload.(Status).State)
}

func TestServe(t *testing.T) {
	captureLog(t)
	b := bus.NewBus(4)
	svcConn := b.NewConnection("memory")
	_, s := newService(t, WithConnection(svcConn))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Serve(ctx, svcConn))

	client := b.NewConnection("client")
	replies := client.Subscribe(bus.T("client", "reply"))

	call := func(req any) Reply {
		t.Helper()
		client.Publish(&bus.Message{Topic: s.CtlTopic(), Payload: req, ReplyTo: replies.Topic()})
		select {
		case m := <-replies.Channel():
			return m.Payload.(Reply)
		case <-time.After(time.Second):
			t.Fatal("no reply")
			return Reply{}
		}
	}

	rep := call(Request{Op: "up", Config: testConfig()})
	require.NoError(t, rep.Err)
	assert.Equal(t, sdram.Ready, rep.Status.State)

	rep = call(Request{Op: "status"})
	assert.Equal(t, sdram.Ready, rep.Status.State)

	rep = call(Request{Op: "down"})
	require.NoError(t, rep.Err)
	assert.Equal(t, sdram.Idle, rep.Status.State)

	rep = call(Request{Op: "reset"})
	assert.ErrorIs(t, rep.Err, ErrUnknownOp)
	assert.True(t, errcode.Is(rep.Err, errcode.Unsupported))

	rep = call("up")
	assert.True(t, errcode.Is(rep.Err, errcode.InvalidParams))
}
