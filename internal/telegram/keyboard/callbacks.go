package keyboard

import (
	"fmt"
	"strings"
)

// Callback actions understood by the bot.
const (
	ActionPlan      = "plan"
	ActionEstimates = "estimates"
	ActionExport    = "export"
	ActionRestart   = "restart"
)

// CallbackData is a parsed inline-button payload.
type CallbackData struct {
	Action string
	Value  string
}

// EncodeCallback packs an action and optional value into the "action:value"
// wire format. Telegram limits callback data to 64 bytes, which the short
// action names stay well under.
func EncodeCallback(action, value string) string {
	if value == "" {
		return action
	}
	return action + ":" + value
}

// ParseCallback splits "action:value" callback data.
func ParseCallback(data string) (*CallbackData, error) {
	if data == "" {
		return nil, fmt.Errorf("empty callback data")
	}

	parts := strings.SplitN(data, ":", 2)
	cb := &CallbackData{Action: parts[0]}
	if len(parts) == 2 {
		cb.Value = parts[1]
	}
	return cb, nil
}
