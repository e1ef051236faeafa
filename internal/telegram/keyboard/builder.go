package keyboard

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// ActionsKeyboard is offered once the questionnaire is complete: generate the
// plan, predict the estimates, or start over.
func (b *Builder) ActionsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Generate plan", EncodeCallback(ActionPlan, "")),
			tgbotapi.NewInlineKeyboardButtonData("💰 Estimates", EncodeCallback(ActionEstimates, "")),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Start over", EncodeCallback(ActionRestart, "")),
		),
	)
}

// ExportKeyboard lets the user pick a download format for the estimates.
func (b *Builder) ExportKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Excel", EncodeCallback(ActionExport, "xlsx")),
			tgbotapi.NewInlineKeyboardButtonData("📄 PDF", EncodeCallback(ActionExport, "pdf")),
			tgbotapi.NewInlineKeyboardButtonData("📑 CSV", EncodeCallback(ActionExport, "csv")),
		),
	)
}
