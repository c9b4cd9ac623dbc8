package mailer

import (
	"context"
	"fmt"
	"time"

	"kartim.link/configs"
	"kartim.link/configs/configslog"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Mailer HTTP tabanlı bir transactional mail API'sine mail gönderir.
// MAIL_API_URL tanımlı değilse gönderim no-op'tur (mail içeriği yalnızca loglanır).
type Mailer struct {
	client *resty.Client
	apiURL string
	from   string
}

// New konfigürasyondan bir Mailer oluşturur.
func New(cfg *configs.App) *Mailer {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")
	if cfg.MailAPIKey != "" {
		client.SetAuthToken(cfg.MailAPIKey)
	}
	return &Mailer{
		client: client,
		apiURL: cfg.MailAPIURL,
		from:   cfg.MailFrom,
	}
}

type sendPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Send tek bir maili gönderir. Handler'lar mail hatasını kullanıcıya
// yansıtmaz; hata loglanır ve çağırana döner, çağıran karar verir.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if m.apiURL == "" {
		configslog.SLog.Infof("Mail gönderimi devre dışı (MAIL_API_URL boş). Alıcı: %s, Konu: %s", to, subject)
		return nil
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(sendPayload{From: m.from, To: to, Subject: subject, Text: body}).
		Post(m.apiURL)
	if err != nil {
		configslog.Log.Error("Mail API isteği başarısız", zap.String("to", to), zap.Error(err))
		return err
	}
	if resp.IsError() {
		configslog.Log.Error("Mail API hata döndü",
			zap.String("to", to),
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return fmt.Errorf("mail API %d döndü", resp.StatusCode())
	}
	return nil
}
