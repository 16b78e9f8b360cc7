package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// smsResponse is the portal's JSON reply. It answers 200 even when it refuses a message.
type smsResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type SMSConfig struct {
	URL      string
	APIKey   string
	UserID   string
	Password string
	SenderID string
}

// SMSGateway posts form-encoded messages to a bulk SMS portal.
type SMSGateway struct {
	cfg    SMSConfig
	client *http.Client
	logger *zap.Logger
}

func NewSMSGateway(cfg SMSConfig, timeout time.Duration, logger *zap.Logger) *SMSGateway {
	return &SMSGateway{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger.Named("sms_gateway"),
	}
}

func (g *SMSGateway) Send(ctx context.Context, phoneNumber, body string) error {
	start := time.Now()

	form := url.Values{}
	form.Set("userid", g.cfg.UserID)
	form.Set("password", g.cfg.Password)
	form.Set("senderid", g.cfg.SenderID)
	form.Set("sendMethod", "quick")
	form.Set("msgType", "text")
	form.Set("msg", body)
	form.Set("mobile", phoneNumber)
	form.Set("duplicatecheck", "true")
	form.Set("output", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if g.cfg.APIKey != "" {
		req.Header.Set("apikey", g.cfg.APIKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("sms http error", zap.String("recipient", phoneNumber), zap.Error(err))
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("sms send failed",
			zap.String("recipient", phoneNumber),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", time.Since(start)),
			zap.ByteString("response", respBody),
		)
		return classifyStatus(resp.StatusCode, respBody)
	}

	// Only an accepted message is charged.
	var reply smsResponse
	if err := json.Unmarshal(respBody, &reply); err == nil && strings.EqualFold(reply.Status, "error") {
		g.logger.Warn("sms rejected by portal",
			zap.String("recipient", phoneNumber),
			zap.String("reason", reply.Reason),
		)
		return fmt.Errorf("gateway rejected message: %s", reply.Reason)
	}

	g.logger.Debug("sms sent",
		zap.String("recipient", phoneNumber),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}
