/*
Copyright (c) 2025 Scribe Labs

Licensed under the AGPLv3 License.
This file is part of scribe-bot.
*/

package chat

import (
	"encoding/json"
	"testing"
)

func TestMessageEvent_Decode(t *testing.T) {
	// "T2dnUw==" is base64 for "OggS", the Ogg capture pattern
	payload := `{
		"id": "msg-42",
		"channel_id": "chan-7",
		"author_id": "user-1",
		"author_name": "alice",
		"author_is_bot": false,
		"voice_message": true,
		"attachments": [
			{"id": "att-1", "filename": "voice-message.ogg", "content_type": "audio/ogg", "data": "T2dnUw=="}
		],
		"timestamp": 1735689600
	}`

	var event MessageEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if event.ID != "msg-42" {
		t.Errorf("ID = %q, want %q", event.ID, "msg-42")
	}
	if !event.VoiceMessage {
		t.Error("VoiceMessage = false, want true")
	}
	if event.AuthorIsBot {
		t.Error("AuthorIsBot = true, want false")
	}
	if len(event.Attachments) != 1 {
		t.Fatalf("len(Attachments) = %d, want 1", len(event.Attachments))
	}
	if got := string(event.Attachments[0].Data); got != "OggS" {
		t.Errorf("attachment data = %q, want %q", got, "OggS")
	}
	if event.Attachments[0].Filename != "voice-message.ogg" {
		t.Errorf("attachment filename = %q, want %q", event.Attachments[0].Filename, "voice-message.ogg")
	}
}

func TestCommandEvent_Decode(t *testing.T) {
	payload := `{"name": "set_lang", "args": ["de"], "channel_id": "chan-7", "issuer_id": "admin-1", "timestamp": 1735689600}`

	var event CommandEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if event.Name != "set_lang" {
		t.Errorf("Name = %q, want %q", event.Name, "set_lang")
	}
	if len(event.Args) != 1 || event.Args[0] != "de" {
		t.Errorf("Args = %v, want [de]", event.Args)
	}
}

func TestReply_RoundTrip(t *testing.T) {
	reply := &Reply{
		ChannelID: "chan-7",
		ReplyToID: "msg-42",
		Text:      "hello world",
		Timestamp: 1735689600,
	}

	data, err := json.Marshal(reply)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Reply
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded != *reply {
		t.Errorf("round trip = %+v, want %+v", decoded, *reply)
	}
}

func TestReply_OmitsEmptyReplyTo(t *testing.T) {
	data, err := json.Marshal(&Reply{ChannelID: "chan-7", Text: "notice"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := raw["reply_to_id"]; ok {
		t.Error("reply_to_id should be omitted when empty")
	}
}
