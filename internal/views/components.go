package views

import (
	"bytes"
	"fmt"
	"html/template"

	"supportdesk/internal/routes"
	"supportdesk/internal/theme"
)

// checkColor is the green of the closed check mark
const checkColor = "#52c41a"

type closingData struct {
	IsHighlighted bool
	Style         template.CSS
	CheckColor    template.CSS
	ClosedHref    string
}

// ConversationClosing renders the banner shown on a closed conversation.
// Highlighting adds a brand-colored left border and a faint brand tint;
// the text is the same either way.
func (v *Renderer) ConversationClosing(isHighlighted bool) (template.HTML, error) {
	palette := v.sheet.Palette()

	style := "padding: 16px; opacity: 0.8; border-bottom: 1px solid #f0f0f0; cursor: pointer;"
	if isHighlighted {
		style += " border-left: 2px solid " + palette.Brand + "; background: " + theme.Tint(palette.Brand, 0x10) + ";"
	}

	var buf bytes.Buffer
	err := v.base.ExecuteTemplate(&buf, "conversation_closing", closingData{
		IsHighlighted: isHighlighted,
		Style:         template.CSS(style),
		CheckColor:    template.CSS(checkColor),
		ClosedHref:    routes.ClosedConversationsPath,
	})
	if err != nil {
		return "", fmt.Errorf("conversation closing: %w", err)
	}
	return template.HTML(buf.String()), nil
}
