package dog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Brawl345/doggobot/plugin"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

// fakeBotClient records every Bot API call instead of hitting Telegram.
type fakeBotClient struct {
	mu       sync.Mutex
	requests []fakeRequest
}

type fakeRequest struct {
	method string
	params map[string]string
}

func (f *fakeBotClient) RequestWithContext(ctx context.Context, token string, method string, params map[string]string, data map[string]gotgbot.FileReader, opts *gotgbot.RequestOpts) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, fakeRequest{method: method, params: params})

	switch method {
	case "sendMessage", "sendPhoto":
		return json.RawMessage(`{"message_id":2,"date":10,"chat":{"id":1,"type":"private"}}`), nil
	default:
		return json.RawMessage(`true`), nil
	}
}

func (f *fakeBotClient) TimeoutContext(opts *gotgbot.RequestOpts) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Second)
}

func (f *fakeBotClient) GetAPIURL(opts *gotgbot.RequestOpts) string {
	return "https://api.telegram.org"
}

func (f *fakeBotClient) calls(method string) []map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []map[string]string
	for _, req := range f.requests {
		if req.method == method {
			matched = append(matched, req.params)
		}
	}
	return matched
}

func newTestBot(client *fakeBotClient) *gotgbot.Bot {
	return &gotgbot.Bot{
		Token:     "123:test",
		User:      gotgbot.User{Id: 123, IsBot: true, FirstName: "Doggobot", Username: "doggobot_test"},
		BotClient: client,
	}
}

func newMessageContext(text string) *ext.Context {
	user := gotgbot.User{Id: 1, FirstName: "Tester"}
	msg := &gotgbot.Message{
		MessageId: 1,
		Date:      10,
		Text:      text,
		Chat:      gotgbot.Chat{Id: 1, Type: gotgbot.ChatTypePrivate},
		From:      &user,
	}
	return &ext.Context{
		Update:           &gotgbot.Update{UpdateId: 1, Message: msg},
		EffectiveMessage: msg,
		EffectiveChat:    &msg.Chat,
		EffectiveUser:    &user,
	}
}

func fakeDogAPI(t *testing.T, body string) func() {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	oldBase := apiBase
	apiBase = server.URL
	return func() {
		apiBase = oldBase
		server.Close()
	}
}

func TestOnRandomImageSendsPhoto(t *testing.T) {
	cleanup := fakeDogAPI(t, `{"message":"https://images.dog.ceo/breeds/pug/n02110958_1975.jpg","status":"success"}`)
	defer cleanup()

	client := &fakeBotClient{}
	err := onRandomImage(newTestBot(client), plugin.Context{Context: newMessageContext("/doggo")})
	if err != nil {
		t.Fatalf("onRandomImage() returned error: %v", err)
	}

	photos := client.calls("sendPhoto")
	if len(photos) != 1 {
		t.Fatalf("expected 1 photo send, got %d", len(photos))
	}
	if got := photos[0]["photo"]; got != "https://images.dog.ceo/breeds/pug/n02110958_1975.jpg" {
		t.Errorf("unexpected photo URL: %q", got)
	}
	if !strings.Contains(photos[0]["reply_markup"], randomCallbackData) {
		t.Errorf("photo is missing the refresh button: %q", photos[0]["reply_markup"])
	}
}

func TestOnRandomImageNonSuccessSendsNoPhoto(t *testing.T) {
	cleanup := fakeDogAPI(t, `{"message":"error","status":"error"}`)
	defer cleanup()

	client := &fakeBotClient{}
	err := onRandomImage(newTestBot(client), plugin.Context{Context: newMessageContext("/doggo")})
	if err != nil {
		t.Fatalf("onRandomImage() returned error: %v", err)
	}

	if photos := client.calls("sendPhoto"); len(photos) != 0 {
		t.Errorf("expected no photo sends, got %d", len(photos))
	}
	messages := client.calls("sendMessage")
	if len(messages) != 1 {
		t.Fatalf("expected 1 text reply, got %d", len(messages))
	}
	if !strings.Contains(messages[0]["text"], "Couldn't find a dog") {
		t.Errorf("unexpected reply text: %q", messages[0]["text"])
	}
}

func TestOnBreedImageUnknownBreedSendsNoPhoto(t *testing.T) {
	cleanup := fakeDogAPI(t, `{"message":"Breed not found (master breed does not exist)","status":"error"}`)
	defer cleanup()

	client := &fakeBotClient{}
	err := onBreedImage(newTestBot(client), plugin.Context{
		Context:      newMessageContext("/breed Dino"),
		NamedMatches: map[string]string{"breed": "Dino"},
	})
	if err != nil {
		t.Fatalf("onBreedImage() returned error: %v", err)
	}

	if photos := client.calls("sendPhoto"); len(photos) != 0 {
		t.Errorf("expected no photo sends, got %d", len(photos))
	}
	messages := client.calls("sendMessage")
	if len(messages) != 1 {
		t.Fatalf("expected 1 text reply, got %d", len(messages))
	}
	if !strings.Contains(messages[0]["text"], "Breed 'Dino' doesn't exist") {
		t.Errorf("unexpected reply text: %q", messages[0]["text"])
	}
}

func TestOnRandomImageCallbackSendsPhoto(t *testing.T) {
	cleanup := fakeDogAPI(t, `{"message":"https://images.dog.ceo/breeds/pug/n02110958_1975.jpg","status":"success"}`)
	defer cleanup()

	user := gotgbot.User{Id: 1, FirstName: "Tester"}
	msg := &gotgbot.Message{
		MessageId: 5,
		Date:      10,
		Chat:      gotgbot.Chat{Id: 1, Type: gotgbot.ChatTypePrivate},
	}
	ctx := &ext.Context{
		Update: &gotgbot.Update{
			UpdateId:      2,
			CallbackQuery: &gotgbot.CallbackQuery{Id: "1", Data: randomCallbackData, From: user},
		},
		EffectiveMessage: msg,
		EffectiveChat:    &msg.Chat,
		EffectiveUser:    &user,
	}

	client := &fakeBotClient{}
	err := onRandomImageCallback(newTestBot(client), plugin.Context{Context: ctx})
	if err != nil {
		t.Fatalf("onRandomImageCallback() returned error: %v", err)
	}

	if answers := client.calls("answerCallbackQuery"); len(answers) != 1 {
		t.Errorf("expected 1 callback answer, got %d", len(answers))
	}
	photos := client.calls("sendPhoto")
	if len(photos) != 1 {
		t.Fatalf("expected 1 photo send, got %d", len(photos))
	}
	if !strings.Contains(photos[0]["reply_markup"], randomCallbackData) {
		t.Errorf("photo is missing the refresh button: %q", photos[0]["reply_markup"])
	}
}

func TestOnRandomImageInlineNonSuccessAnswersEmpty(t *testing.T) {
	cleanup := fakeDogAPI(t, `{"message":"error","status":"error"}`)
	defer cleanup()

	user := gotgbot.User{Id: 1, FirstName: "Tester"}
	ctx := &ext.Context{
		Update: &gotgbot.Update{
			UpdateId:    3,
			InlineQuery: &gotgbot.InlineQuery{Id: "1", Query: "doggo", From: user},
		},
		EffectiveUser: &user,
	}

	client := &fakeBotClient{}
	err := onRandomImageInline(newTestBot(client), plugin.Context{Context: ctx})
	if err != nil {
		t.Fatalf("onRandomImageInline() returned error: %v", err)
	}

	answers := client.calls("answerInlineQuery")
	if len(answers) != 1 {
		t.Fatalf("expected 1 inline answer, got %d", len(answers))
	}
	if strings.Contains(answers[0]["results"], "photo_url") {
		t.Errorf("expected no results, got %q", answers[0]["results"])
	}
}

func TestCallbackHandlerWiring(t *testing.T) {
	p := New()

	var handler *plugin.CallbackHandler
	for _, h := range p.Handlers(&gotgbot.User{Username: "doggobot_test"}) {
		if cb, ok := h.(*plugin.CallbackHandler); ok {
			handler = cb
		}
	}
	if handler == nil {
		t.Fatal("no callback handler registered")
	}

	if !handler.Trigger.MatchString(randomCallbackData) {
		t.Errorf("trigger %q does not match %q", handler.Trigger, randomCallbackData)
	}
	if handler.Cooldown <= 0 {
		t.Error("callback handler should have a cooldown")
	}
	if !handler.DeleteButton {
		t.Error("used button should be removed")
	}

	keyboard := randomImageKeyboard()
	if got := keyboard.InlineKeyboard[0][0].CallbackData; got != randomCallbackData {
		t.Errorf("keyboard callback data = %q, want %q", got, randomCallbackData)
	}
}
