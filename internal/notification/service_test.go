package notification

import (
	"context"
	"strings"
	"testing"

	authdomain "github.com/rameshbanalab/ServNest-sub001/internal/auth/domain"
	chatdomain "github.com/rameshbanalab/ServNest-sub001/internal/chat/domain"
	"github.com/rameshbanalab/ServNest-sub001/pkg/fcm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	users map[string]*authdomain.User
}

func (r *stubUserRepo) Create(user *authdomain.User) error { return nil }
func (r *stubUserRepo) Update(user *authdomain.User) error { return nil }

func (r *stubUserRepo) FindByID(id string) (*authdomain.User, error) {
	return r.users[id], nil
}

func (r *stubUserRepo) FindByEmail(email string) (*authdomain.User, error) {
	return nil, nil
}

func (r *stubUserRepo) ListTokenHolders(isBusinessOwner *bool) ([]authdomain.User, error) {
	return nil, nil
}

func (r *stubUserRepo) SaveToken(userID, token string) error       { return nil }
func (r *stubUserRepo) ClearToken(userID, token string) error      { return nil }
func (r *stubUserRepo) ClearTokens(tokens []string) (int64, error) { return 0, nil }

type stubMessageRepo struct {
	messages map[string]*chatdomain.ChatMessage
}

func (r *stubMessageRepo) Create(msg *chatdomain.ChatMessage) error { return nil }

func (r *stubMessageRepo) FindByID(chatID, messageID string) (*chatdomain.ChatMessage, error) {
	return r.messages[chatID+"/"+messageID], nil
}

func (r *stubMessageRepo) ListByChat(chatID string, limit int) ([]chatdomain.ChatMessage, error) {
	return nil, nil
}

type stubSender struct {
	tokenCalls []string
	payloads   []fcm.Payload
}

func (s *stubSender) SendMulticast(ctx context.Context, tokens []string, payload fcm.Payload) (*fcm.MulticastResult, error) {
	return &fcm.MulticastResult{}, nil
}

func (s *stubSender) SendToTopic(ctx context.Context, topic string, payload fcm.Payload) (string, error) {
	return "", nil
}

func (s *stubSender) SendToToken(ctx context.Context, token string, payload fcm.Payload) (string, error) {
	s.tokenCalls = append(s.tokenCalls, token)
	s.payloads = append(s.payloads, payload)
	return "msg-id", nil
}

func notifierFixture() (*stubUserRepo, *stubSender, *Service) {
	users := &stubUserRepo{users: map[string]*authdomain.User{
		"u1": {ID: "u1", Name: "Alice"},
		"u2": {ID: "u2", Name: "Bob", FCMToken: "tok-u2"},
	}}
	sender := &stubSender{}
	svc := &Service{
		users:     users,
		messages:  &stubMessageRepo{messages: map[string]*chatdomain.ChatMessage{}},
		sender:    sender,
		topicName: "chat-message-created",
		subName:   "chat-message-created-sub",
	}
	return users, sender, svc
}

func chatMsg(sender, recipient, content string) *chatdomain.ChatMessage {
	return &chatdomain.ChatMessage{
		ID:          "m1",
		ChatID:      "c1",
		Sender:      sender,
		SenderName:  "Alice",
		RecipientID: recipient,
		Type:        chatdomain.MessageText,
		Content:     content,
	}
}

func TestNotifySkipsWhenRecipientHasNoToken(t *testing.T) {
	_, sender, svc := notifierFixture()

	svc.Notify(context.Background(), chatMsg("u2", "u1", "hi"))
	assert.Empty(t, sender.tokenCalls, "recipient without a token must produce zero provider calls")
}

func TestNotifySkipsWithoutRecipient(t *testing.T) {
	_, sender, svc := notifierFixture()

	svc.Notify(context.Background(), chatMsg("u1", "", "hi"))
	assert.Empty(t, sender.tokenCalls)
}

func TestNotifySkipsSelfChat(t *testing.T) {
	_, sender, svc := notifierFixture()

	svc.Notify(context.Background(), chatMsg("u2", "u2", "note to self"))
	assert.Empty(t, sender.tokenCalls)
}

func TestNotifySendsSingleDirectMessage(t *testing.T) {
	_, sender, svc := notifierFixture()

	svc.Notify(context.Background(), chatMsg("u1", "u2", "hi"))
	require.Len(t, sender.tokenCalls, 1)
	assert.Equal(t, "tok-u2", sender.tokenCalls[0])

	payload := sender.payloads[0]
	assert.Equal(t, "New message from Alice", payload.Title)
	assert.Equal(t, "hi", payload.Body)
	assert.Equal(t, "chat_message", payload.Data["type"])
	assert.Equal(t, "chat", payload.Data["navigationType"])
	assert.Equal(t, "c1", payload.Data["chatId"])
	assert.Equal(t, "u1", payload.Data["senderId"])
	assert.Equal(t, "Alice", payload.Data["senderName"])
}

func TestNotifyTruncatesLongText(t *testing.T) {
	_, sender, svc := notifierFixture()

	content := strings.Repeat("a", 80)
	svc.Notify(context.Background(), chatMsg("u1", "u2", content))
	require.Len(t, sender.payloads, 1)
	assert.Equal(t, strings.Repeat("a", 50)+"...", sender.payloads[0].Body)
}

func TestNotifyKeepsShortTextIntact(t *testing.T) {
	_, sender, svc := notifierFixture()

	content := strings.Repeat("b", 50)
	svc.Notify(context.Background(), chatMsg("u1", "u2", content))
	require.Len(t, sender.payloads, 1)
	assert.Equal(t, content, sender.payloads[0].Body)
}

func TestNotifyUsesPlaceholderForImages(t *testing.T) {
	_, sender, svc := notifierFixture()

	msg := chatMsg("u1", "u2", "https://cdn.example/img.png")
	msg.Type = chatdomain.MessageImage
	svc.Notify(context.Background(), msg)
	require.Len(t, sender.payloads, 1)
	assert.Equal(t, imagePlaceholder, sender.payloads[0].Body)
}

func TestHandleEventIgnoresUnknownMessage(t *testing.T) {
	_, sender, svc := notifierFixture()

	svc.handleEvent(context.Background(), []byte(`{"chatId":"c1","messageId":"missing"}`))
	assert.Empty(t, sender.tokenCalls)
}

func TestHandleEventLoadsAndNotifies(t *testing.T) {
	_, sender, svc := notifierFixture()
	msg := chatMsg("u1", "u2", "hello there")
	svc.messages = &stubMessageRepo{messages: map[string]*chatdomain.ChatMessage{
		"c1/m1": msg,
	}}

	svc.handleEvent(context.Background(), []byte(`{"chatId":"c1","messageId":"m1"}`))
	require.Len(t, sender.tokenCalls, 1)
	assert.Equal(t, "tok-u2", sender.tokenCalls[0])
}

func TestHandleEventIgnoresMalformedPayload(t *testing.T) {
	_, sender, svc := notifierFixture()

	svc.handleEvent(context.Background(), []byte(`not json`))
	assert.Empty(t, sender.tokenCalls)
}
