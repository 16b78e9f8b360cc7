package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dennismutuku2005/stream-wisp-sub001/internal/domain"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSMSGateway_PostsForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, "key-1", r.Header.Get("apikey"))
		assert.Equal(t, "254700000001", r.PostForm.Get("mobile"))
		assert.Equal(t, "Hi", r.PostForm.Get("msg"))
		assert.Equal(t, "ISPNET", r.PostForm.Get("senderid"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	gw := NewSMSGateway(SMSConfig{URL: srv.URL, APIKey: "key-1", SenderID: "ISPNET"}, time.Second, zap.NewNop())

	assert.NoError(t, gw.Send(context.Background(), "254700000001", "Hi"))
}

func TestSMSGateway_RejectedIsPlainFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid mobile", http.StatusBadRequest)
	}))
	defer srv.Close()

	gw := NewSMSGateway(SMSConfig{URL: srv.URL}, time.Second, zap.NewNop())
	err := gw.Send(context.Background(), "bad", "Hi")

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestSMSGateway_ErrorStatusInBodyIsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"error","reason":"Invalid mobile number"}`))
	}))
	defer srv.Close()

	gw := NewSMSGateway(SMSConfig{URL: srv.URL}, time.Second, zap.NewNop())
	err := gw.Send(context.Background(), "0700", "Hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid mobile number")
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestSMSGateway_SuccessStatusInBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","transactionId":"8241"}`))
	}))
	defer srv.Close()

	gw := NewSMSGateway(SMSConfig{URL: srv.URL}, time.Second, zap.NewNop())

	assert.NoError(t, gw.Send(context.Background(), "254700000001", "Hi"))
}

func TestSMSGateway_TimeoutIsPlainFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	gw := NewSMSGateway(SMSConfig{URL: srv.URL}, 50*time.Millisecond, zap.NewNop())
	err := gw.Send(context.Background(), "254700000001", "Hi")

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestWhatsAppGateway_ContextDeadlineIsPlainFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	gw := NewWhatsAppGateway(WhatsAppConfig{URL: srv.URL}, time.Minute, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := gw.Send(ctx, "254700000001", "Hi")

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestSMSGateway_ServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	gw := NewSMSGateway(SMSConfig{URL: srv.URL}, time.Second, zap.NewNop())

	assert.ErrorIs(t, gw.Send(context.Background(), "254700000001", "Hi"), ErrUnavailable)
}

func TestWhatsAppGateway_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	gw := NewWhatsAppGateway(WhatsAppConfig{URL: addr}, time.Second, zap.NewNop())

	assert.ErrorIs(t, gw.Send(context.Background(), "254700000001", "Hi"), ErrUnavailable)
}

func TestWhatsAppGateway_PostsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p whatsAppPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		assert.Equal(t, "tok", p.Token)
		assert.Equal(t, "254711111111", p.From)
		assert.Equal(t, "254700000001", p.To)
		assert.Equal(t, "Your package expires tomorrow", p.Text)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	gw := NewWhatsAppGateway(WhatsAppConfig{URL: srv.URL, Token: "tok", Sender: "254711111111"}, time.Second, zap.NewNop())

	assert.NoError(t, gw.Send(context.Background(), "254700000001", "Your package expires tomorrow"))
}

func TestRegistry(t *testing.T) {
	noop := TransportFunc(func(context.Context, string, string) error { return nil })
	reg := Registry{domain.ChannelSMS: noop}

	_, err := reg.For(domain.ChannelSMS)
	assert.NoError(t, err)

	_, err = reg.For(domain.ChannelWhatsApp)
	assert.ErrorIs(t, err, types.ErrChannelNotConfigured)
}
