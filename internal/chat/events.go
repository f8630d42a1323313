/*
Copyright (c) 2025 Scribe Labs

Licensed under the AGPLv3 License.
This file is part of scribe-bot.
*/

// Package chat is the boundary to the chat-host runtime. The host publishes
// message events and admin command invocations as JSON over NATS; the bot
// publishes conversational replies back.
package chat

// NATS subjects for the chat-host boundary
const (
	SubjectMessages = "scribe.chat.messages"
	SubjectCommands = "scribe.chat.commands"
	SubjectReplies  = "scribe.chat.replies"
)

// Attachment is one file attached to a chat message. Audio bytes are
// delivered inline by the host.
type Attachment struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type,omitempty"`
	Data        []byte `json:"data"`
}

// MessageEvent is a message-received event delivered by the chat host.
type MessageEvent struct {
	ID           string       `json:"id"`
	ChannelID    string       `json:"channel_id"`
	AuthorID     string       `json:"author_id"`
	AuthorName   string       `json:"author_name,omitempty"`
	AuthorIsBot  bool         `json:"author_is_bot"`
	VoiceMessage bool         `json:"voice_message"`
	Attachments  []Attachment `json:"attachments,omitempty"`
	Timestamp    int64        `json:"timestamp"`
}

// CommandEvent is an admin command invocation. The host restricts these to
// privileged users before they reach the bot.
type CommandEvent struct {
	Name      string   `json:"name"`
	Args      []string `json:"args,omitempty"`
	ChannelID string   `json:"channel_id"`
	IssuerID  string   `json:"issuer_id"`
	Timestamp int64    `json:"timestamp"`
}

// Reply is an outgoing conversational message. ReplyToID threads the reply
// under a specific message when set.
type Reply struct {
	ChannelID string `json:"channel_id"`
	ReplyToID string `json:"reply_to_id,omitempty"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}
