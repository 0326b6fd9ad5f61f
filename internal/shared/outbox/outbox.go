package outbox

// Outbox row persisted inside the same atomic operation as the state change
// it describes. The worker relay reads pending rows and publishes them to the
// event bus, which makes the outbox the append-only audit trail of every
// governance state transition.
type Message struct {
	ID         string
	EventType  string
	Payload    []byte
	Status     string // pending, published, failed
	RetryCount int
}

const (
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusFailed    = "failed"
)
