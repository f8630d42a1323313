/*
Copyright (c) 2025 Scribe Labs

Licensed under the AGPLv3 License.
This file is part of scribe-bot.
*/

package chat

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/scribelabs/scribe-bot/internal/logging"
)

// GatewayConfig holds connection settings for the chat-host NATS bus.
type GatewayConfig struct {
	URL           string
	MaxReconnect  int
	ReconnectWait time.Duration
}

// Gateway handles NATS messaging between the bot and the chat host.
type Gateway struct {
	conn *nats.Conn
	cfg  GatewayConfig
}

// NewGateway creates a gateway for the given NATS configuration.
func NewGateway(cfg GatewayConfig) *Gateway {
	if cfg.URL == "" {
		cfg.URL = nats.DefaultURL
	}
	if cfg.ReconnectWait <= 0 {
		cfg.ReconnectWait = 2 * time.Second
	}
	return &Gateway{cfg: cfg}
}

// Connect establishes the connection to the NATS server.
func (g *Gateway) Connect() error {
	opts := []nats.Option{
		nats.Name("scribe-bot"),
		nats.ReconnectWait(g.cfg.ReconnectWait),
		nats.MaxReconnects(g.cfg.MaxReconnect),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logging.LogWarn("⚠️  NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logging.LogNATSEvent(nc.ConnectedUrl(), "reconnected")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logging.LogNATSEvent(g.cfg.URL, "closed")
		}),
	}

	conn, err := nats.Connect(g.cfg.URL, opts...)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}

	g.conn = conn
	logging.LogNATSEvent(conn.ConnectedUrl(), "connected")
	return nil
}

// IsConnected reports whether the NATS connection is up.
func (g *Gateway) IsConnected() bool {
	return g.conn != nil && g.conn.IsConnected()
}

// Close drains and closes the NATS connection.
func (g *Gateway) Close() {
	if g.conn != nil {
		g.conn.Close()
		g.conn = nil
	}
}

// SubscribeMessages subscribes to message-received events from the host.
func (g *Gateway) SubscribeMessages(handler func(*MessageEvent)) (*nats.Subscription, error) {
	if g.conn == nil {
		return nil, fmt.Errorf("NATS connection not established")
	}

	sub, err := g.conn.Subscribe(SubjectMessages, func(msg *nats.Msg) {
		var event MessageEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			logging.LogError(err, "Failed to decode message event",
				zap.String("subject", msg.Subject),
			)
			return
		}
		handler(&event)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", SubjectMessages, err)
	}

	logging.LogNATSEvent(SubjectMessages, "subscribed")
	return sub, nil
}

// SubscribeCommands subscribes to admin command invocations from the host.
func (g *Gateway) SubscribeCommands(handler func(*CommandEvent)) (*nats.Subscription, error) {
	if g.conn == nil {
		return nil, fmt.Errorf("NATS connection not established")
	}

	sub, err := g.conn.Subscribe(SubjectCommands, func(msg *nats.Msg) {
		var event CommandEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			logging.LogError(err, "Failed to decode command event",
				zap.String("subject", msg.Subject),
			)
			return
		}
		handler(&event)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", SubjectCommands, err)
	}

	logging.LogNATSEvent(SubjectCommands, "subscribed")
	return sub, nil
}

// PublishReply sends a conversational reply back to the chat host.
func (g *Gateway) PublishReply(reply *Reply) error {
	if g.conn == nil {
		return fmt.Errorf("NATS connection not established")
	}
	if reply.Timestamp == 0 {
		reply.Timestamp = time.Now().Unix()
	}

	data, err := json.Marshal(reply)
	if err != nil {
		return fmt.Errorf("failed to marshal reply: %w", err)
	}

	if err := g.conn.Publish(SubjectReplies, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", SubjectReplies, err)
	}

	logging.LogNATSEvent(SubjectReplies, "published",
		zap.String("channel_id", reply.ChannelID),
		zap.Int("text_length", len(reply.Text)),
	)
	return nil
}
