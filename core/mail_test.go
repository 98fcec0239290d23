package core

import (
	"net/mail"
	"strings"
	"testing"
)

func TestEmailMessage_Render(t *testing.T) {
	data := map[string]interface{}{
		"Name":    "Aarav Gupta",
		"RollNo":  "R001",
		"Class":   "10",
		"Section": "A",
		"Date":    "15/01/2025",
	}

	t.Run("templated", func(t *testing.T) {
		msg := &EmailMessage{
			To:           []mail.Address{{Name: "Parent", Address: "parent1@test.cd"}},
			Subject:      "Absence Notification",
			TemplateName: "absence",
			TemplateData: data,
		}
		if err := msg.Render(); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !msg.HasContent() {
			t.Fatal("Render() produced no content")
		}
		for _, content := range []string{msg.TextContent, msg.HTMLContent} {
			if !strings.Contains(content, "Aarav Gupta") || !strings.Contains(content, "15/01/2025") {
				t.Errorf("rendered content missing data:\n%s", content)
			}
			if !strings.Contains(content, "This is an automated message.") {
				t.Errorf("rendered content missing footer:\n%s", content)
			}
		}
	})

	t.Run("plain body wins over text template", func(t *testing.T) {
		msg := &EmailMessage{
			To:           []mail.Address{{Address: "parent1@test.cd"}},
			Subject:      "Absence Notification",
			TemplateName: "absence",
			TemplateData: data,
			BodyStr:      "plain text body",
		}
		if err := msg.Render(); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if msg.TextContent != "plain text body" {
			t.Errorf("TextContent = %q, want plain body", msg.TextContent)
		}
		if !strings.Contains(msg.HTMLContent, "Aarav Gupta") {
			t.Errorf("HTMLContent not rendered:\n%s", msg.HTMLContent)
		}
	})

	t.Run("no recipients", func(t *testing.T) {
		msg := &EmailMessage{Subject: "hi", BodyStr: "yo"}
		if msg.HasRecipients() {
			t.Error("HasRecipients() = true, want false")
		}
	})
}
