package mailer

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"net/url"
	"strings"
	"sync"
	"text/template"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/m04kA/barbershop-booking/internal/domain"
)

const defaultShopName = "RYAN BARBERSHOP"

// Config параметры SMTP и ссылок в письмах
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	BaseURL  string
	ShopName string
}

// Enabled true, если SMTP настроен достаточно для отправки
func (c Config) Enabled() bool {
	return c.Host != "" && c.From != ""
}

// Client отправляет письма о записи и отмене через SMTP
type Client struct {
	sender Sender
	cfg    Config
	log    Logger

	inflight sync.WaitGroup
}

// NewClient создает клиента поверх gomail.Dialer. Порт 465 означает неявный TLS.
func NewClient(cfg Config, log Logger) *Client {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.SSL = cfg.Port == 465
	return NewClientWithSender(dialer, cfg, log)
}

// NewClientWithSender создает клиента с произвольным отправителем
func NewClientWithSender(sender Sender, cfg Config, log Logger) *Client {
	if cfg.ShopName == "" {
		cfg.ShopName = defaultShopName
	}
	if cfg.FromName == "" {
		cfg.FromName = cfg.ShopName
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		sender: sender,
		cfg:    cfg,
		log:    log,
	}
}

// CancelURL ссылка для отмены записи из письма
func (c *Client) CancelURL(id string) string {
	return c.cfg.BaseURL + "/cancel?token=" + url.QueryEscape(id)
}

// AppointmentBooked отправляет подтверждение записи со ссылкой на отмену
func (c *Client) AppointmentBooked(ctx context.Context, a domain.Appointment) error {
	subject := fmt.Sprintf("Terminbestätigung %s %s", a.Date, a.Time)
	msg, err := c.compose(a, subject, bookedText, bookedHTML)
	if err != nil {
		return err
	}
	return c.send(ctx, msg, "AppointmentBooked", a.ID)
}

// AppointmentCancelled отправляет подтверждение отмены
func (c *Client) AppointmentCancelled(ctx context.Context, a domain.Appointment) error {
	subject := fmt.Sprintf("Termin abgesagt - %s %s", a.Date, a.Time)
	msg, err := c.compose(a, subject, cancelledText, cancelledHTML)
	if err != nil {
		return err
	}
	return c.send(ctx, msg, "AppointmentCancelled", a.ID)
}

func (c *Client) data(a domain.Appointment) messageData {
	return messageData{
		ShopName:  c.cfg.ShopName,
		Name:      a.Name,
		Service:   a.Service.Name,
		Date:      a.Date.String(),
		Time:      a.Time.String(),
		Duration:  a.Service.DurationMinutes,
		Notes:     a.Notes,
		CancelURL: c.CancelURL(a.ID),
		Year:      time.Now().Year(),
	}
}

func (c *Client) compose(a domain.Appointment, subject string, text *template.Template, html *htmltemplate.Template) (*gomail.Message, error) {
	data := c.data(a)

	var textBody, htmlBody bytes.Buffer
	if err := text.Execute(&textBody, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRender, text.Name(), err)
	}
	if err := html.Execute(&htmlBody, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRender, html.Name(), err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", c.cfg.From, c.cfg.FromName)
	m.SetHeader("To", a.Email)
	m.SetHeader("Reply-To", c.cfg.From)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody.String())
	m.AddAlternative("text/html", htmlBody.String())
	return m, nil
}

// Wait ждёт завершения отправок, которые пережили свой ctx.
// Возвращает ошибку ctx, если письма не ушли до его отмены.
func (c *Client) Wait(ctx context.Context) error {
	finished := make(chan struct{})
	go func() {
		c.inflight.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// send не блокирует дольше ctx: gomail не принимает контекст,
// поэтому отправка идёт в отдельной горутине и учитывается в Wait
func (c *Client) send(ctx context.Context, m *gomail.Message, op, id string) error {
	done := make(chan error, 1)
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		done <- c.sender.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: %s id=%s: %v", ErrSend, op, id, err)
		}
		c.log.Info("%s: mail sent for id=%s", op, id)
		return nil
	case <-ctx.Done():
		c.log.Warn("%s: mail for id=%s still sending after %v", op, id, ctx.Err())
		return fmt.Errorf("%w: %s id=%s: %w", ErrSend, op, id, ctx.Err())
	}
}
