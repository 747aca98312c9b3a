package coach

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vitalog-app/vitalog-backend/internal/account"
	"github.com/vitalog-app/vitalog-backend/internal/ai"
	"github.com/vitalog-app/vitalog-backend/internal/config"
	"github.com/vitalog-app/vitalog-backend/internal/services"
	"gorm.io/gorm"
)

type CoachModule struct {
	client *ai.Client
	subs   *services.SubscriptionService
}

func New(client *ai.Client, subs *services.SubscriptionService) *CoachModule {
	return &CoachModule{client: client, subs: subs}
}

func (m *CoachModule) ID() string { return "coach" }

func (m *CoachModule) Models() []interface{} {
	return []interface{}{
		&Conversation{},
		&Message{},
	}
}

func (m *CoachModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewCoachService(db, m.client, m.subs, cfg)
	handler := NewCoachHandler(svc)

	router.Post("/coach/messages", handler.SendMessage)
	router.Get("/coach/conversations", handler.ListConversations)
	router.Get("/coach/conversations/:id/messages", handler.ListMessages)
	router.Delete("/coach/conversations/:id", handler.DeleteConversation)
	router.Get("/coach/tip", handler.DailyTip)
}

// DeletionSteps sweeps messages before conversations so a partial failure
// never leaves orphaned messages pointing at deleted conversations.
func (m *CoachModule) DeletionSteps() []account.Step {
	return []account.Step{
		{Label: "messages", Delete: account.DeleteOwned(&Message{})},
		{Label: "conversations", Delete: account.DeleteOwned(&Conversation{})},
	}
}
