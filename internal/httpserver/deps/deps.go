package deps

import (
	"time"

	"github.com/MrSnakeDoc/comments/internal/events"
	"github.com/MrSnakeDoc/comments/internal/logger"
	"github.com/MrSnakeDoc/comments/internal/store"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	Store        store.Client     // document store holding the comments
	StoreBackend string           // backend name, reported by /readyz
	Publisher    events.Publisher // comment events (noop when NATS is not configured)
	AllowedHosts []string         // Host headers allowed to access the server
	AllowedCIDRS []string         // IPs allowed to access the readyz endpoint
	TrustProxy   bool             // true if running behind a trusted reverse proxy
	ServeWeb     bool             // serve the embedded comments page
}
