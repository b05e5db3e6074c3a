// pkg/registry/schema.go
package registry

// Categories an activity may declare. They double as the directory names
// under internal/workers/, so the generator can derive a package path from
// the registry entry alone.
const (
	CategoryRetrieval     = "retrieval"
	CategoryEnhancement   = "enhancement"
	CategoryPersistence   = "persistence"
	CategoryCommunication = "communication"
)

// KnownCategories is the closed set Validate accepts.
var KnownCategories = []string{
	CategoryRetrieval,
	CategoryEnhancement,
	CategoryPersistence,
	CategoryCommunication,
}

// ActivityRegistry is the catalog of chat-enhancement activities the BPMN
// processes reference. The worker manager validates it at startup; the
// scaffolding tools read and rewrite it.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity describes one registered activity. ID follows the
// domain.subdomain.action convention (chat.prompt.enhance); TaskType is the
// Zeebe job type the matching worker polls.
type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema,omitempty"`
	OutputSchema         map[string]interface{} `json:"outputSchema,omitempty"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Workflows            []string               `json:"workflows"`
	Tags                 []string               `json:"tags"`
}
