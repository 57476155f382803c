package prompt

import (
	"strings"

	"github.com/lamora-ml/lamora/internal/dataset"
)

// Default conversation constants. The role-prefix spellings are part of
// the trained prompt format and must match between training and
// inference.
const (
	DefaultSystemMessage = "Vous êtes un assistant IA qui suit extrêmement bien les instructions. " +
		"Aidez autant que vous le pouvez."
	DefaultUserPrefix      = "<|UTILISATEUR|>"
	DefaultAssistantPrefix = "<|ASSISTANT|>"
)

// ConversationTemplate renders prompts for multi-turn chat examples.
//
// Rendering layout: the system-message block, then per turn a
// "\n{role_prefix}:" marker followed by the turn's content. Assistant
// turns carry the end-of-sequence marker right after their content,
// user turns do not.
//
// Callers must not pass conversations with two consecutive turns of the
// same role; the template renders whatever it is given.
type ConversationTemplate struct {
	SystemMessage   string
	UserPrefix      string
	AssistantPrefix string
}

// NewConversationTemplate creates a conversation template with the
// default system message and role prefixes.
func NewConversationTemplate() *ConversationTemplate {
	return &ConversationTemplate{
		SystemMessage:   DefaultSystemMessage,
		UserPrefix:      DefaultUserPrefix,
		AssistantPrefix: DefaultAssistantPrefix,
	}
}

// System returns the system-message block of a conversation, falling
// back to the template default when the example carries none.
func (t *ConversationTemplate) System(conv dataset.Conversation) string {
	if conv.SystemMessage != "" {
		return conv.SystemMessage
	}
	return t.SystemMessage
}

// RolePrefix returns the "\n{prefix}:" marker for a turn's role.
func (t *ConversationTemplate) RolePrefix(role string) string {
	if role == dataset.RoleAssistant {
		return "\n" + t.AssistantPrefix + ":"
	}
	return "\n" + t.UserPrefix + ":"
}

// TrainingPrompt renders the full conversation with every assistant
// answer revealed. eosMarker is the tokenizer's textual end-of-sequence
// marker, appended after each assistant turn.
func (t *ConversationTemplate) TrainingPrompt(conv dataset.Conversation, eosMarker string) (string, error) {
	var sb strings.Builder
	sb.WriteString(t.System(conv))
	sb.WriteString("\n")

	for _, turn := range conv.Conversation {
		if turn.Content == "" {
			return "", &MissingFieldError{Field: "content"}
		}
		sb.WriteString(t.RolePrefix(turn.Role))
		sb.WriteString(turn.Content)
		if turn.Role == dataset.RoleAssistant {
			sb.WriteString(eosMarker)
		}
	}

	return sb.String(), nil
}

// InferencePrompt renders the conversation up to the next assistant
// answer: all turns so far, then the assistant prefix as a generation
// cue.
func (t *ConversationTemplate) InferencePrompt(conv dataset.Conversation, eosMarker string) (string, error) {
	rendered, err := t.TrainingPrompt(conv, eosMarker)
	if err != nil {
		return "", err
	}
	return rendered + t.RolePrefix(dataset.RoleAssistant), nil
}
