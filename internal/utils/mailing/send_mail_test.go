package mailing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMailerDisabledWithoutHost(t *testing.T) {
	assert.Nil(t, NewMailer(MailConfig{}))
	assert.NotNil(t, NewMailer(MailConfig{SMTPHost: "smtp.example.com", SMTPPort: "587"}))
}

func TestSendMailRejectsBadPort(t *testing.T) {
	m := NewMailer(MailConfig{SMTPHost: "smtp.example.com", SMTPPort: "smtp"})
	assert.Error(t, m.SendMail("a@example.com", "hi", "<p>hi</p>"))
}

func TestRenderSharedRecipeEscapesInput(t *testing.T) {
	subject, body, err := RenderSharedRecipe(SharedRecipeMail{
		Recipient: "bob",
		Sender:    "alice",
		Title:     "<script>x</script> pie",
		Link:      "http://localhost:8000/api/recipes/1",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice shared a recipe with you", subject)
	assert.Contains(t, body, "&lt;script&gt;x&lt;/script&gt; pie")
	assert.Contains(t, body, `href="http://localhost:8000/api/recipes/1"`)
}
