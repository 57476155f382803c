package dataset

// Schema identifies which record layout a dataset uses.
//
// A dataset carries exactly one schema, fixed at configuration time;
// records are never inspected per-example to guess their layout.
type Schema string

const (
	// SchemaInstruct is the single-turn instruction/input/output layout.
	SchemaInstruct Schema = "instruct"

	// SchemaConversation is the multi-turn chat layout.
	SchemaConversation Schema = "conversation"
)

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Instruct is a single-turn instruction example.
type Instruct struct {
	Instruction string `json:"instruction"`
	Input       string `json:"input"`
	Output      string `json:"output"`
}

// Turn is one message of a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is a multi-turn chat example.
//
// SystemMessage is optional; an empty value means the template default.
type Conversation struct {
	SystemMessage string `json:"system_message,omitempty"`
	Conversation  []Turn `json:"conversation"`
}

// ParseSchema converts a configuration string to a Schema.
func ParseSchema(s string) (Schema, bool) {
	switch Schema(s) {
	case SchemaInstruct, SchemaConversation:
		return Schema(s), true
	default:
		return "", false
	}
}
