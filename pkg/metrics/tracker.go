package metrics

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "a11ybot_requests_total",
	Help: "Generation requests by outcome",
}, []string{"outcome"})

// UsageEvent records one generation request.
type UsageEvent struct {
	Timestamp    string  `json:"ts"`
	SessionKey   string  `json:"session"`
	Provider     string  `json:"provider"`
	Model        string  `json:"model"`
	InputTokens  int     `json:"in"`
	OutputTokens int     `json:"out"`
	CostUSD      float64 `json:"cost"`
	Outcome      string  `json:"outcome"` // "ok", "cached", "offline" or an error kind
}

// Tracker appends usage events to a JSONL file.
type Tracker struct {
	filePath string
	mu       sync.Mutex
}

// NewTracker creates a tracker that writes to workspace/metrics/usage.jsonl.
func NewTracker(workspace string) *Tracker {
	dir := filepath.Join(workspace, "metrics")
	os.MkdirAll(dir, 0755)
	return &Tracker{
		filePath: filepath.Join(dir, "usage.jsonl"),
	}
}

// Record appends a usage event. Write failures are swallowed; usage
// tracking never interferes with serving a response.
func (t *Tracker) Record(event UsageEvent) {
	if event.Timestamp == "" {
		event.Timestamp = time.Now().Format(time.RFC3339)
	}
	event.CostUSD = calculateCost(event.Model, event.InputTokens, event.OutputTokens)
	requestsTotal.WithLabelValues(event.Outcome).Inc()

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.OpenFile(t.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	f.Write(data)
	f.Write([]byte("\n"))
}

// Model pricing per million tokens (input, output).
type modelPricing struct {
	inputPerM  float64
	outputPerM float64
}

var pricing = map[string]modelPricing{
	"gemini-2.0-flash":           {0.10, 0.40},
	"gemini-2.0-flash-lite":      {0.075, 0.30},
	"gemini-1.5-pro":             {1.25, 5.0},
	"claude-sonnet-4-5-20250929": {3.0, 15.0},
	"claude-haiku-3-5-20241022":  {0.8, 4.0},
	"gpt-4o-mini":                {0.15, 0.60},
	"gpt-4o":                     {2.5, 10.0},
}

func calculateCost(model string, input, output int) float64 {
	p, ok := pricing[model]
	if !ok {
		// Default to flash pricing
		p = modelPricing{0.10, 0.40}
	}

	return float64(input)*p.inputPerM/1e6 + float64(output)*p.outputPerM/1e6
}
