package mailer

import (
	"bytes"
	"context"
	"errors"
	"mime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/logger"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

type fakeSender struct {
	mu    sync.Mutex
	sent  []*gomail.Message
	err   error
	delay time.Duration
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, m...)
	return f.err
}

func testAppointment() domain.Appointment {
	return domain.NewAppointment(
		"abc-123",
		"Max <b>Mustermann</b>",
		"max@example.com",
		domain.DefaultServices[4],
		types.MustParseDate("2025-06-03"),
		"10:30",
		"Bitte pünktlich",
		time.Now(),
	)
}

func newTestClient(sender Sender) *Client {
	return NewClientWithSender(sender, Config{
		From:    "termine@example.com",
		BaseURL: "https://barber.example.com/",
	}, logger.Nop())
}

func TestAppointmentBooked_SendsConfirmation(t *testing.T) {
	sender := &fakeSender{}
	c := newTestClient(sender)

	require.NoError(t, c.AppointmentBooked(context.Background(), testAppointment()))
	require.Len(t, sender.sent, 1)

	m := sender.sent[0]
	require.Len(t, m.GetHeader("Subject"), 1)
	subject, err := new(mime.WordDecoder).DecodeHeader(m.GetHeader("Subject")[0])
	require.NoError(t, err)
	assert.Equal(t, "Terminbestätigung 2025-06-03 10:30", subject)
	assert.Equal(t, []string{"max@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"termine@example.com"}, m.GetHeader("Reply-To"))
}

func TestAppointmentCancelled_Subject(t *testing.T) {
	sender := &fakeSender{}
	c := newTestClient(sender)

	require.NoError(t, c.AppointmentCancelled(context.Background(), testAppointment()))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"Termin abgesagt - 2025-06-03 10:30"}, sender.sent[0].GetHeader("Subject"))
}

func TestCancelURL(t *testing.T) {
	c := newTestClient(&fakeSender{})
	assert.Equal(t, "https://barber.example.com/cancel?token=abc-123", c.CancelURL("abc-123"))
	assert.Equal(t, "https://barber.example.com/cancel?token=a%26b", c.CancelURL("a&b"))
}

func TestTemplates_EscapeUserInputInHTML(t *testing.T) {
	c := newTestClient(&fakeSender{})
	data := c.data(testAppointment())

	var html bytes.Buffer
	require.NoError(t, bookedHTML.Execute(&html, data))
	assert.NotContains(t, html.String(), "<b>Mustermann</b>")
	assert.Contains(t, html.String(), "&lt;b&gt;Mustermann&lt;/b&gt;")
	assert.Contains(t, html.String(), "https://barber.example.com/cancel?token=abc-123")

	var text bytes.Buffer
	require.NoError(t, bookedText.Execute(&text, data))
	assert.Contains(t, text.String(), "Termin absagen: https://barber.example.com/cancel?token=abc-123")
	assert.Contains(t, text.String(), "Hinweise: Bitte pünktlich")
	assert.Contains(t, text.String(), "Service: Bart Styling")
}

func TestSend_Errors(t *testing.T) {
	c := newTestClient(&fakeSender{err: errors.New("535 auth failed")})
	err := c.AppointmentBooked(context.Background(), testAppointment())
	assert.ErrorIs(t, err, ErrSend)

	slow := newTestClient(&fakeSender{delay: 200 * time.Millisecond})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err = slow.AppointmentCancelled(ctx, testAppointment())
	assert.ErrorIs(t, err, ErrSend)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWait_CoversSendsThatOutliveTheirContext(t *testing.T) {
	sender := &fakeSender{delay: 100 * time.Millisecond}
	c := newTestClient(sender)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, c.AppointmentBooked(ctx, testAppointment()), context.DeadlineExceeded)

	short, cancelShort := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancelShort()
	assert.ErrorIs(t, c.Wait(short), context.DeadlineExceeded)

	require.NoError(t, c.Wait(context.Background()))
	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Len(t, sender.sent, 1)
}

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{Host: "smtp.example.com", From: "a@example.com"}.Enabled())
}
