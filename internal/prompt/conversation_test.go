package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamora-ml/lamora/internal/dataset"
)

func TestConversationTemplate_TrainingPrompt(t *testing.T) {
	tmpl := NewConversationTemplate()
	tmpl.SystemMessage = "Système."

	conv := dataset.Conversation{
		Conversation: []dataset.Turn{
			{Role: dataset.RoleUser, Content: "Hi"},
			{Role: dataset.RoleAssistant, Content: "Hello"},
			{Role: dataset.RoleUser, Content: "Merci"},
			{Role: dataset.RoleAssistant, Content: "De rien"},
		},
	}

	got, err := tmpl.TrainingPrompt(conv, "</s>")
	require.NoError(t, err)

	want := "Système.\n" +
		"\n<|UTILISATEUR|>:Hi" +
		"\n<|ASSISTANT|>:Hello</s>" +
		"\n<|UTILISATEUR|>:Merci" +
		"\n<|ASSISTANT|>:De rien</s>"
	assert.Equal(t, want, got)
}

func TestConversationTemplate_SystemMessageOverride(t *testing.T) {
	tmpl := NewConversationTemplate()

	t.Run("default when absent", func(t *testing.T) {
		assert.Equal(t, DefaultSystemMessage, tmpl.System(dataset.Conversation{}))
	})

	t.Run("example value wins", func(t *testing.T) {
		conv := dataset.Conversation{SystemMessage: "Autre système."}
		assert.Equal(t, "Autre système.", tmpl.System(conv))
	})
}

func TestConversationTemplate_InferencePrompt(t *testing.T) {
	tmpl := NewConversationTemplate()
	tmpl.SystemMessage = "Système."

	conv := dataset.Conversation{
		Conversation: []dataset.Turn{
			{Role: dataset.RoleUser, Content: "Hi"},
		},
	}

	got, err := tmpl.InferencePrompt(conv, "</s>")
	require.NoError(t, err)

	assert.Equal(t, "Système.\n\n<|UTILISATEUR|>:Hi\n<|ASSISTANT|>:", got)
}

func TestConversationTemplate_MissingContent(t *testing.T) {
	tmpl := NewConversationTemplate()

	conv := dataset.Conversation{
		Conversation: []dataset.Turn{
			{Role: dataset.RoleUser, Content: ""},
		},
	}

	_, err := tmpl.TrainingPrompt(conv, "</s>")
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "content", missing.Field)
}
