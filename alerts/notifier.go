// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/danielhkuo/activity-board/models"
)

// Notifier delivers alert events on a best-effort basis
// Notify never fails from the caller's point of view; errors are logged
type Notifier interface {
	Notify(ctx context.Context, event models.AlertEvent)
}

// Waiter is implemented by notifiers that deliver in the background
type Waiter interface {
	Wait()
}

// WebhookNotifier POSTs events as JSON, one goroutine per event
type WebhookNotifier struct {
	url    string
	client *http.Client
	wg     sync.WaitGroup
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *WebhookNotifier) Notify(ctx context.Context, event models.AlertEvent) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		// delivery outlives the request that triggered it
		ctx := context.WithoutCancel(ctx)
		if err := n.deliver(ctx, event); err != nil {
			slog.Error("webhook delivery failed",
				"status", event.Status,
				"member_id", event.MemberID,
				"error", err,
			)
			return
		}
		slog.Info("webhook delivered", "status", event.Status, "member_id", event.MemberID)
	}()
}

func (n *WebhookNotifier) deliver(ctx context.Context, event models.AlertEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("webhook returned status=%d body=%s", resp.StatusCode, string(respBody))
	}
	return nil
}

// Wait blocks until in-flight deliveries finish
func (n *WebhookNotifier) Wait() {
	n.wg.Wait()
}

// MQTTConfig configures the broker connection
type MQTTConfig struct {
	URL      string
	ClientID string
	Username string
	Password string
	Topic    string
}

// MQTTNotifier publishes events to a broker topic, one goroutine per event
type MQTTNotifier struct {
	client mqtt.Client
	topic  string
	wg     sync.WaitGroup
}

const (
	mqttConnectTimeout = 10 * time.Second
	mqttPublishTimeout = 5 * time.Second
)

// NewMQTTNotifier connects to the broker
// An unreachable broker is not fatal: the client keeps retrying and queues
// publishes until the connection comes up
func NewMQTTNotifier(cfg MQTTConfig) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.URL).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(c mqtt.Client) {
			slog.Info("connected to message broker", "url", cfg.URL)
		}).
		SetConnectionLostHandler(func(c mqtt.Client, err error) {
			slog.Warn("message broker connection lost", "error", err)
		})

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	return connectMQTT(mqtt.NewClient(opts), cfg.Topic, mqttConnectTimeout)
}

func connectMQTT(client mqtt.Client, topic string, timeout time.Duration) (*MQTTNotifier, error) {
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		slog.Warn("message broker not reachable yet, retrying in background", "timeout", timeout)
		return &MQTTNotifier{client: client, topic: topic}, nil
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}
	return &MQTTNotifier{client: client, topic: topic}, nil
}

func (n *MQTTNotifier) Notify(ctx context.Context, event models.AlertEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal event", "error", err)
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.publish(payload, event)
	}()
}

func (n *MQTTNotifier) publish(payload []byte, event models.AlertEvent) {
	token := n.client.Publish(n.topic, 1, false, payload)
	if !token.WaitTimeout(mqttPublishTimeout) {
		slog.Error("mqtt publish timeout", "topic", n.topic, "member_id", event.MemberID)
		return
	}
	if err := token.Error(); err != nil {
		slog.Error("mqtt publish failed", "topic", n.topic, "error", err)
		return
	}
	slog.Info("mqtt event published", "topic", n.topic, "status", event.Status, "member_id", event.MemberID)
}

// Wait blocks until in-flight publishes finish
func (n *MQTTNotifier) Wait() {
	n.wg.Wait()
}

// Close drains pending publishes and disconnects from the broker
func (n *MQTTNotifier) Close() {
	n.wg.Wait()
	n.client.Disconnect(1000)
	slog.Info("disconnected from message broker")
}

// Multi fans an event out to several notifiers
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, event models.AlertEvent) {
	for _, n := range m {
		n.Notify(ctx, event)
	}
}

func (m Multi) Wait() {
	for _, n := range m {
		if w, ok := n.(Waiter); ok {
			w.Wait()
		}
	}
}
