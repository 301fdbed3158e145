package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/jrzesz33/civ6_notif/internal/logging"
	"github.com/jrzesz33/civ6_notif/internal/models"
	"github.com/jrzesz33/civ6_notif/internal/notification"
	appconfig "github.com/jrzesz33/civ6_notif/pkg/config"
)

type fakeDiscord struct {
	messages []string
	err      error
}

func (f *fakeDiscord) Send(ctx context.Context, message string) error {
	f.messages = append(f.messages, message)
	return f.err
}

type fakePublisher struct {
	published []*models.Notification
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, n *models.Notification) error {
	f.published = append(f.published, n)
	return f.err
}

var aliceTurn = models.TurnEvent{Game: "42", Player: "Alice"}

const aliceMessage = "It is now Alice's turn in Civ6 game 42"

func TestHandleEvent_Destinations(t *testing.T) {
	tests := []struct {
		name        string
		discord     bool
		sns         bool
		wantDiscord int
		wantSNS     int
	}{
		{"both enabled", true, true, 1, 1},
		{"discord only", true, false, 1, 0},
		{"sns only", false, true, 0, 1},
		{"none", false, false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discord := &fakeDiscord{}
			publisher := &fakePublisher{}
			cfg := &appconfig.Config{SendToDiscord: tt.discord, SendToSNS: tt.sns}

			ack, err := NewHandler(cfg, discord, publisher, nil).HandleEvent(context.Background(), aliceTurn)
			if err != nil {
				t.Fatalf("HandleEvent() error = %v", err)
			}
			if ack != (Ack{}) {
				t.Errorf("HandleEvent() ack = %+v, want empty", ack)
			}
			if len(discord.messages) != tt.wantDiscord {
				t.Errorf("discord sends = %d, want %d", len(discord.messages), tt.wantDiscord)
			}
			if len(publisher.published) != tt.wantSNS {
				t.Errorf("sns publishes = %d, want %d", len(publisher.published), tt.wantSNS)
			}
			for _, msg := range discord.messages {
				if msg != aliceMessage {
					t.Errorf("discord message = %q, want %q", msg, aliceMessage)
				}
			}
			for _, n := range publisher.published {
				if n.Text != aliceMessage {
					t.Errorf("sns message = %q, want %q", n.Text, aliceMessage)
				}
			}
		})
	}
}

func TestHandleEvent_DiscordDisabledMakesNoRequest(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	cfg := &appconfig.Config{SendToDiscord: false, DiscordWebhookURL: server.URL}
	discord := notification.NewDiscordClient(notification.DiscordClientConfig{WebhookURL: server.URL})

	if _, err := NewHandler(cfg, discord, nil, nil).HandleEvent(context.Background(), aliceTurn); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	if calls != 0 {
		t.Errorf("webhook called %d times, want 0", calls)
	}
}

func TestHandleEvent_DiscordOverHTTP(t *testing.T) {
	var body struct {
		Content string `json:"content"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	cfg := &appconfig.Config{SendToDiscord: true, DiscordWebhookURL: server.URL}
	discord := notification.NewDiscordClient(notification.DiscordClientConfig{WebhookURL: server.URL})

	if _, err := NewHandler(cfg, discord, nil, nil).HandleEvent(context.Background(), aliceTurn); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	if body.Content != aliceMessage {
		t.Errorf("content = %q, want %q", body.Content, aliceMessage)
	}
}

func TestHandleEvent_SNSFailure(t *testing.T) {
	publishErr := errors.New("publish failed")
	cfg := &appconfig.Config{SendToSNS: true}

	_, err := NewHandler(cfg, nil, &fakePublisher{err: publishErr}, nil).HandleEvent(context.Background(), aliceTurn)
	if !errors.Is(err, publishErr) {
		t.Errorf("HandleEvent() error = %v, want %v", err, publishErr)
	}
}

func TestHandleEvent_DiscordFailureSkipsSNS(t *testing.T) {
	sendErr := errors.New("webhook down")
	publisher := &fakePublisher{}
	cfg := &appconfig.Config{SendToDiscord: true, SendToSNS: true}

	_, err := NewHandler(cfg, &fakeDiscord{err: sendErr}, publisher, nil).HandleEvent(context.Background(), aliceTurn)
	if !errors.Is(err, sendErr) {
		t.Errorf("HandleEvent() error = %v, want %v", err, sendErr)
	}
	if len(publisher.published) != 0 {
		t.Errorf("sns publishes = %d, want 0", len(publisher.published))
	}
}

func decodeEvent(t *testing.T, payload string) models.TurnEvent {
	t.Helper()
	var e models.TurnEvent
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		t.Fatalf("Unmarshal(%s) error = %v", payload, err)
	}
	return e
}

func TestHandleEvent_InvalidEvent(t *testing.T) {
	discord := &fakeDiscord{}
	cfg := &appconfig.Config{SendToDiscord: true}

	_, err := NewHandler(cfg, discord, nil, nil).HandleEvent(context.Background(), decodeEvent(t, `{"value1":"42"}`))
	if !errors.Is(err, models.ErrMissingField) {
		t.Errorf("HandleEvent() error = %v, want ErrMissingField", err)
	}
	if len(discord.messages) != 0 {
		t.Errorf("discord sends = %d, want 0", len(discord.messages))
	}
}

func TestHandleEvent_EmptyAndNullValuesAreDelivered(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"empty game", `{"value1":"","value2":"Bob"}`, "It is now Bob's turn in Civ6 game "},
		{"null game", `{"value1":null,"value2":"Bob"}`, "It is now Bob's turn in Civ6 game "},
		{"empty player", `{"value1":"42","value2":""}`, "It is now 's turn in Civ6 game 42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discord := &fakeDiscord{}
			publisher := &fakePublisher{}
			cfg := &appconfig.Config{SendToDiscord: true, SendToSNS: true}

			if _, err := NewHandler(cfg, discord, publisher, nil).HandleEvent(context.Background(), decodeEvent(t, tt.payload)); err != nil {
				t.Fatalf("HandleEvent() error = %v", err)
			}
			if len(discord.messages) != 1 || discord.messages[0] != tt.want {
				t.Errorf("discord messages = %q, want [%q]", discord.messages, tt.want)
			}
			if len(publisher.published) != 1 {
				t.Errorf("sns publishes = %d, want 1", len(publisher.published))
			}
		})
	}
}

func TestHandleEvent_DiscordRejectionStillPublishes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	publisher := &fakePublisher{}
	cfg := &appconfig.Config{SendToDiscord: true, SendToSNS: true, DiscordWebhookURL: server.URL}
	discord := notification.NewDiscordClient(notification.DiscordClientConfig{WebhookURL: server.URL})

	if _, err := NewHandler(cfg, discord, publisher, nil).HandleEvent(context.Background(), aliceTurn); err != nil {
		t.Fatalf("HandleEvent() error = %v, want nil", err)
	}
	if len(publisher.published) != 1 {
		t.Errorf("sns publishes = %d, want 1", len(publisher.published))
	}
}

func TestHandleEvent_MissingClient(t *testing.T) {
	cfg := &appconfig.Config{SendToDiscord: true}

	if _, err := NewHandler(cfg, nil, nil, nil).HandleEvent(context.Background(), aliceTurn); err == nil {
		t.Error("HandleEvent() error = nil, want error")
	}
}

func TestHandleEvent_LogsRequestIDWithoutWebhook(t *testing.T) {
	webhook := "https://discord.com/api/webhooks/1/shh"
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelDebug).With(slog.String("webhook_url", webhook))

	cfg := &appconfig.Config{SendToDiscord: true, DiscordWebhookURL: webhook}
	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "req-123"})

	if _, err := NewHandler(cfg, &fakeDiscord{}, nil, logger).HandleEvent(ctx, aliceTurn); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-123"`) {
		t.Errorf("logs missing request id: %s", out)
	}
	if strings.Contains(out, webhook) {
		t.Errorf("logs contain webhook URL: %s", out)
	}
}

func TestAck_MarshalsEmpty(t *testing.T) {
	data, err := json.Marshal(Ack{})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Marshal(Ack{}) = %s, want {}", data)
	}
}
