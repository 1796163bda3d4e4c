package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/resend/resend-go/v2"
	"github.com/risegum/internal/db"
	"github.com/rs/zerolog/log"
)

// WaitlistMailer 在访客加入候补名单后发送确认邮件。
type WaitlistMailer interface {
	SendWelcome(entry db.WaitlistEntry) error
}

// MailerConfig 为 Resend 发信所需的配置。
type MailerConfig struct {
	APIKey   string
	From     string
	FromName string
	// TestMode 为 true 时只打印日志，不实际发信
	TestMode bool
}

// ResendMailer sends waitlist confirmations through the Resend API.
type ResendMailer struct {
	cfg  MailerConfig
	send func(*resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// NewResendMailer 构造 ResendMailer
func NewResendMailer(cfg MailerConfig) *ResendMailer {
	m := &ResendMailer{cfg: cfg}
	if strings.TrimSpace(cfg.APIKey) != "" {
		client := resend.NewClient(cfg.APIKey)
		m.send = client.Emails.Send
	}
	return m
}

// SendWelcome builds and sends the confirmation email for entry.
func (m *ResendMailer) SendWelcome(entry db.WaitlistEntry) error {
	req := buildWelcomeEmail(m.cfg, entry)

	if m.cfg.TestMode {
		log.Info().
			Strs("to", req.To).
			Str("subject", req.Subject).
			Msg("email test mode, confirmation not sent")
		return nil
	}

	if m.send == nil {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	sent, err := m.send(req)
	if err != nil {
		return fmt.Errorf("send confirmation via resend: %w", err)
	}
	log.Info().Str("email_id", sent.Id).Strs("to", req.To).Msg("waitlist confirmation sent")
	return nil
}

// WelcomeSender 在后台发送确认邮件，失败只记录日志，不影响接口响应。
// 关停时调用 Wait 等待已入队的邮件发完。
type WelcomeSender struct {
	mailer WaitlistMailer
	wg     sync.WaitGroup
}

// NewWelcomeSender 构造 WelcomeSender；m 为 nil 时 Send 不做任何事。
func NewWelcomeSender(m WaitlistMailer) *WelcomeSender {
	return &WelcomeSender{mailer: m}
}

// Send 异步发送 entry 的确认邮件。
func (s *WelcomeSender) Send(entry db.WaitlistEntry) {
	if s == nil || s.mailer == nil {
		return
	}
	s.wg.Add(1)
	go func(e db.WaitlistEntry) {
		defer s.wg.Done()
		if err := s.mailer.SendWelcome(e); err != nil {
			log.Error().Err(err).Str("entry_id", e.ID).Msg("waitlist confirmation failed")
		}
	}(entry)
}

// Wait blocks until every queued confirmation finished or ctx is done.
func (s *WelcomeSender) Wait(ctx context.Context) error {
	if s == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain waitlist confirmations: %w", ctx.Err())
	}
}

func buildWelcomeEmail(cfg MailerConfig, entry db.WaitlistEntry) *resend.SendEmailRequest {
	from := cfg.From
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.From)
	}

	first := entry.Name
	if fields := strings.Fields(entry.Name); len(fields) > 0 {
		first = fields[0]
	}

	text := fmt.Sprintf("Hi %s,\n\nYou're on the Rise Gum waitlist. We'll let you know as soon as we launch in %s.\n\nTeam Rise Gum", first, entry.City)
	body := fmt.Sprintf("<p>Hi %s,</p><p>You're on the Rise Gum waitlist. We'll let you know as soon as we launch in %s.</p><p>Team Rise Gum</p>",
		html.EscapeString(first), html.EscapeString(entry.City))

	return &resend.SendEmailRequest{
		From:    from,
		To:      []string{entry.Email},
		Subject: "You're on the Rise Gum waitlist",
		Html:    body,
		Text:    text,
	}
}
