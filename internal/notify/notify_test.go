package notify

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panickingSink struct{}

func (panickingSink) Notify(Kind)              { panic("no display") }
func (panickingSink) RequestPermission() error { panic("no display") }

type deniedSink struct{ Recorder }

func (*deniedSink) RequestPermission() error { return errors.New("denied") }

type senderSpy struct {
	sent []*fyne.Notification
}

func (spy *senderSpy) SendNotification(notification *fyne.Notification) {
	spy.sent = append(spy.sent, notification)
}

func TestSafeRecoversPanics(t *testing.T) {
	sink := Safe(panickingSink{}, nil)

	assert.NotPanics(t, func() { sink.Notify(WorkComplete) })
	assert.NoError(t, RequestPermission(sink, nil))
}

func TestSafeNilSinkIsNop(t *testing.T) {
	assert.Equal(t, Nop{}, Safe(nil, nil))
}

func TestRecorderKeepsOrder(t *testing.T) {
	recorder := &Recorder{}
	recorder.Notify(WorkComplete)
	recorder.Notify(BreakComplete)

	assert.Equal(t, []Kind{WorkComplete, BreakComplete}, recorder.Kinds())
}

func TestRequestPermissionReportsDenial(t *testing.T) {
	assert.EqualError(t, RequestPermission(&deniedSink{}, nil), "denied")
	assert.NoError(t, RequestPermission(Nop{}, nil))
}

func TestMultiFansOut(t *testing.T) {
	first, second := &Recorder{}, &Recorder{}
	multi := Multi{first, second}

	multi.Notify(BreakComplete)

	assert.Equal(t, []Kind{BreakComplete}, first.Kinds())
	assert.Equal(t, []Kind{BreakComplete}, second.Kinds())
	assert.EqualError(t, Multi{first, &deniedSink{}}.RequestPermission(), "denied")
}

func TestAlertsPostNotification(t *testing.T) {
	spy := &senderSpy{}
	alerts := NewAlerts(spy)

	alerts.Notify(WorkComplete)
	alerts.Notify(BreakComplete)

	require.Len(t, spy.sent, 2)
	assert.Equal(t, "Work Session Complete!", spy.sent[0].Title)
	assert.Equal(t, "Break Complete!", spy.sent[1].Title)
	assert.NoError(t, alerts.RequestPermission())
	assert.NotPanics(t, func() { NewAlerts(nil).Notify(WorkComplete) })
}
