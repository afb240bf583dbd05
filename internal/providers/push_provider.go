package providers

import (
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	json "github.com/goccy/go-json"

	"tickd/internal/structures"
)

// NotificationPayload is the JSON body delivered to the push endpoint; the
// service worker renders it as-is.
type NotificationPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag"`
}

type PushProviderInterface interface {
	// Configured reports whether a VAPID key pair is available; without
	// one no delivery is attempted (the permission-not-granted analog).
	Configured() bool
	Send(sub *webpush.Subscription, payload *NotificationPayload) error
}

type PushProvider struct {
	subject    string
	publicKey  string
	privateKey string
	logger     Logger
}

func NewPushProvider(conf *structures.Config, logger Logger) PushProviderInterface {
	if conf.Push.PublicKey == "" || conf.Push.PrivateKey == "" {
		logger.Infof(TypeApp, "Push disabled: no VAPID key pair configured")
	}
	subject := conf.Push.Subject
	if subject == "" {
		subject = "mailto:noreply@example.com"
	}
	return &PushProvider{
		subject:    subject,
		publicKey:  conf.Push.PublicKey,
		privateKey: conf.Push.PrivateKey,
		logger:     logger,
	}
}

func (p *PushProvider) Configured() bool {
	return p.publicKey != "" && p.privateKey != ""
}

func (p *PushProvider) Send(sub *webpush.Subscription, payload *NotificationPayload) error {
	if !p.Configured() {
		return fmt.Errorf("push not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := webpush.SendNotification(body, sub, &webpush.Options{
		Subscriber:      p.subject,
		VAPIDPublicKey:  p.publicKey,
		VAPIDPrivateKey: p.privateKey,
		TTL:             60,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("push endpoint answered %d", resp.StatusCode)
	}
	return nil
}
