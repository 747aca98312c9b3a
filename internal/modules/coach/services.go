package coach

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/vitalog-app/vitalog-backend/internal/ai"
	"github.com/vitalog-app/vitalog-backend/internal/config"
	"github.com/vitalog-app/vitalog-backend/internal/modules/checkins"
	"github.com/vitalog-app/vitalog-backend/internal/services"
	"gorm.io/gorm"
)

var (
	ErrEmptyMessage         = errors.New("message content is required")
	ErrQuotaExceeded        = errors.New("daily free message limit reached")
	ErrConversationNotFound = errors.New("conversation not found")
)

// historyWindow caps how many prior messages travel with each completion.
const historyWindow = 20

const coachSystemPrompt = `You are Vitalog's wellness coach. You help users build healthy habits around sleep, hydration, nutrition, movement, and medication adherence. Be warm, concise, and practical. You are not a doctor; for medical concerns, suggest the user talk to a healthcare professional. Never diagnose or prescribe.`

const tipSystemPrompt = `You write one short, actionable wellness tip. Respond with ONLY a JSON object: {"tip": "..."}. Keep the tip under 40 words.`

type CoachService struct {
	db         *gorm.DB
	client     *ai.Client
	subs       *services.SubscriptionService
	provider   ai.Provider
	freePerDay int
}

func NewCoachService(db *gorm.DB, client *ai.Client, subs *services.SubscriptionService, cfg *config.Config) *CoachService {
	return &CoachService{
		db:     db,
		client: client,
		subs:   subs,
		provider: ai.Provider{
			APIURL: cfg.OpenAIAPIURL,
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
		},
		freePerDay: cfg.FreeMessagesPerDay,
	}
}

// SendMessage stores the user's message, asks the model for a reply with the
// conversation's recent history as context, and stores the reply. A nil
// conversation ID starts a new conversation titled from the first message.
func (s *CoachService) SendMessage(userID uuid.UUID, req SendMessageRequest) (*SendMessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	if err := s.checkQuota(userID); err != nil {
		return nil, err
	}

	conv, err := s.resolveConversation(userID, req.ConversationID, content)
	if err != nil {
		return nil, err
	}

	history, err := s.recentMessages(conv.ID, historyWindow)
	if err != nil {
		return nil, err
	}

	chat := make([]ai.ChatMessage, 0, len(history)+2)
	chat = append(chat, ai.ChatMessage{Role: "system", Content: coachSystemPrompt})
	for _, m := range history {
		chat = append(chat, ai.ChatMessage{Role: m.Role, Content: m.Content})
	}
	chat = append(chat, ai.ChatMessage{Role: "user", Content: content})

	replyText, err := s.client.Complete(s.provider, chat, 0.7)
	if err != nil {
		return nil, err
	}

	userMsg := Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		UserID:         userID,
		Role:           "user",
		Content:        content,
	}
	reply := Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		UserID:         userID,
		Role:           "assistant",
		Content:        strings.TrimSpace(replyText),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&userMsg).Error; err != nil {
			return err
		}
		if err := tx.Create(&reply).Error; err != nil {
			return err
		}
		return tx.Model(conv).Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}

	return &SendMessageResponse{
		ConversationID: conv.ID,
		UserMessage:    userMsg,
		Reply:          reply,
	}, nil
}

func (s *CoachService) resolveConversation(userID uuid.UUID, convID *uuid.UUID, firstMessage string) (*Conversation, error) {
	if convID != nil {
		var conv Conversation
		err := s.db.Where("user_id = ? AND id = ?", userID, *convID).First(&conv).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		if err != nil {
			return nil, err
		}
		return &conv, nil
	}

	title := firstMessage
	if len(title) > 60 {
		title = title[:60]
	}
	conv := Conversation{
		ID:     uuid.New(),
		UserID: userID,
		Title:  title,
	}
	if err := s.db.Create(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *CoachService) recentMessages(convID uuid.UUID, limit int) ([]Message, error) {
	var recent []Message
	err := s.db.Where("conversation_id = ?", convID).
		Order("created_at DESC").
		Limit(limit).
		Find(&recent).Error
	if err != nil {
		return nil, err
	}

	// reverse to chronological order
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}
	return recent, nil
}

func (s *CoachService) checkQuota(userID uuid.UUID) error {
	if s.subs.IsActive(userID) {
		return nil
	}

	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var count int64
	if err := s.db.Model(&Message{}).
		Where("user_id = ? AND role = ? AND created_at >= ?", userID, "user", startOfDay).
		Count(&count).Error; err != nil {
		return err
	}
	if count >= int64(s.freePerDay) {
		return ErrQuotaExceeded
	}
	return nil
}

func (s *CoachService) ListConversations(userID uuid.UUID) ([]Conversation, error) {
	var convs []Conversation
	err := s.db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(50).
		Find(&convs).Error
	return convs, err
}

func (s *CoachService) ListMessages(userID, convID uuid.UUID) ([]Message, error) {
	var conv Conversation
	err := s.db.Where("user_id = ? AND id = ?", userID, convID).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}

	var messages []Message
	err = s.db.Where("conversation_id = ?", convID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (s *CoachService) DeleteConversation(userID, convID uuid.UUID) error {
	var conv Conversation
	err := s.db.Where("user_id = ? AND id = ?", userID, convID).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrConversationNotFound
	}
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", convID).Delete(&Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&conv).Error
	})
}

// DailyTip generates a short wellness tip, personalized from the user's most
// recent check-in when one exists. Tips do not count against the message
// quota.
func (s *CoachService) DailyTip(userID uuid.UUID) (*DailyTip, error) {
	prompt := "Give me one wellness tip for today."

	var checkIn checkins.CheckIn
	err := s.db.Where("user_id = ?", userID).Order("day DESC").First(&checkIn).Error
	if err == nil {
		prompt = fmt.Sprintf(
			"My latest check-in: mood %d/10, energy %d/10, %.1f hours of sleep, %d glasses of water. Give me one wellness tip for today based on this.",
			checkIn.Mood, checkIn.Energy, checkIn.SleepHours, checkIn.WaterGlasses,
		)
	}

	raw, err := s.client.Complete(s.provider, []ai.ChatMessage{
		{Role: "system", Content: tipSystemPrompt},
		{Role: "user", Content: prompt},
	}, 0.8)
	if err != nil {
		return nil, err
	}

	tip := strings.TrimSpace(raw)
	if payload, err := ai.ExtractJSON(raw); err == nil {
		if parsed := strings.TrimSpace(gjson.Get(payload, "tip").String()); parsed != "" {
			tip = parsed
		}
	}

	return &DailyTip{Tip: tip}, nil
}
