package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type WhatsAppConfig struct {
	URL    string
	Token  string
	Sender string
}

type whatsAppPayload struct {
	MessageType string `json:"messageType"`
	RequestType string `json:"requestType"`
	Token       string `json:"token"`
	From        string `json:"from"`
	To          string `json:"to"`
	Text        string `json:"text"`
}

// WhatsAppGateway sends text messages through a WhatsApp Business REST provider.
type WhatsAppGateway struct {
	cfg    WhatsAppConfig
	client *http.Client
	logger *zap.Logger
}

func NewWhatsAppGateway(cfg WhatsAppConfig, timeout time.Duration, logger *zap.Logger) *WhatsAppGateway {
	return &WhatsAppGateway{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger.Named("whatsapp_gateway"),
	}
}

func (g *WhatsAppGateway) Send(ctx context.Context, phoneNumber, body string) error {
	start := time.Now()

	payload, err := json.Marshal(whatsAppPayload{
		MessageType: "text",
		RequestType: "POST",
		Token:       g.cfg.Token,
		From:        g.cfg.Sender,
		To:          phoneNumber,
		Text:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal whatsapp payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create whatsapp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("whatsapp http error", zap.String("recipient", phoneNumber), zap.Error(err))
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("whatsapp send failed",
			zap.String("recipient", phoneNumber),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", time.Since(start)),
			zap.ByteString("response", respBody),
		)
		return classifyStatus(resp.StatusCode, respBody)
	}

	g.logger.Debug("whatsapp sent",
		zap.String("recipient", phoneNumber),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}
