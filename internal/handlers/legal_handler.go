package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type LegalHandler struct{}

func NewLegalHandler() *LegalHandler {
	return &LegalHandler{}
}

func (h *LegalHandler) PrivacyPolicy(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Privacy Policy - Vitalog</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>
</head><body>
<h1>Privacy Policy</h1>
<p>Last updated: February 2026</p>
<h2>Information We Collect</h2>
<p>We collect your email address and the wellness data you log: daily check-ins, medications and doses, vital signs, and nutrition entries.</p>
<h2>How We Use Your Information</h2>
<p>Your data is used solely to operate Vitalog, authenticate your account, and generate your personal insights. Food descriptions you submit for AI estimates are sent to our AI provider for processing and are not used to train their models.</p>
<h2>Health Data</h2>
<p>Vitalog is not a medical device and your entries are not shared with any healthcare provider. We do not sell your personal information to third parties.</p>
<h2>Account Deletion</h2>
<p>You can delete your account and all associated data at any time from the app settings. Deletion is immediate and irreversible.</p>
<h2>Contact</h2>
<p>For questions about this policy, contact us at support@vitalog.app</p>
</body></html>`)
}

func (h *LegalHandler) TermsOfService(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Terms of Service - Vitalog</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>
</head><body>
<h1>Terms of Service</h1>
<p>Last updated: February 2026</p>
<h2>Acceptance</h2>
<p>By using Vitalog, you agree to these terms.</p>
<h2>No Medical Advice</h2>
<p>Vitalog provides general wellness tracking and AI-generated estimates for informational purposes only. It is not a substitute for professional medical advice, diagnosis, or treatment. Nutrition estimates are approximations and may be inaccurate.</p>
<h2>Subscriptions</h2>
<p>Premium features require an active subscription managed through the App Store. Subscriptions auto-renew unless cancelled 24 hours before the end of the current period.</p>
<h2>Termination</h2>
<p>We may suspend or terminate accounts that violate these terms.</p>
<h2>Contact</h2>
<p>For questions, contact us at support@vitalog.app</p>
</body></html>`)
}
