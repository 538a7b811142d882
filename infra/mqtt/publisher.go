package mqtt

import (
	"encoding/json"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/kilianp07/distalg/core/factory"
	"github.com/kilianp07/distalg/core/logger"
	coremetrics "github.com/kilianp07/distalg/core/metrics"
	"github.com/kilianp07/distalg/core/monitoring"
	infralogger "github.com/kilianp07/distalg/infra/logger"
)

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

func init() {
	_ = coremetrics.RegisterRecorder("mqtt", func(conf map[string]any) (coremetrics.Recorder, error) {
		var c Config
		if err := factory.DecodeStrict(conf, &c); err != nil {
			return nil, err
		}
		return NewPublisher(c)
	})
}

// Publisher is a metrics recorder that publishes every scenario run as a
// JSON message on <prefix>/scenarios/<scenario>.
type Publisher struct {
	cli        pahoClient
	prefix     string
	qos        byte
	retain     bool
	maxRetries int
	backoff    time.Duration
	log        logger.Logger
}

type scenarioMessage struct {
	RunID      string  `json:"run_id"`
	Scenario   string  `json:"scenario"`
	Op         string  `json:"op"`
	Family     string  `json:"family,omitempty"`
	Operands   int     `json:"operands"`
	Failed     bool    `json:"failed"`
	DurationMS float64 `json:"duration_ms"`
	Timestamp  int64   `json:"timestamp"`
}

// NewPublisher connects to the MQTT broker.
func NewPublisher(cfg Config) (*Publisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}

	log := infralogger.New("mqtt_publisher")
	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected to %s", cfg.Broker)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(paho.Client, *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &Publisher{
		cli:        c,
		prefix:     strings.TrimSuffix(cfg.TopicPrefix, "/"),
		qos:        cfg.QoS,
		retain:     cfg.Retain,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
		log:        log,
	}, nil
}

func (p *Publisher) RecordRule(coremetrics.RuleEvent) error { return nil }

// RecordScenario publishes the event, retrying with exponential backoff.
// The last publish error is reported to the monitor and returned.
func (p *Publisher) RecordScenario(ev coremetrics.ScenarioEvent) error {
	payload, err := json.Marshal(scenarioMessage{
		RunID:      ev.RunID,
		Scenario:   ev.Scenario,
		Op:         ev.Op,
		Family:     ev.Family,
		Operands:   ev.Operands,
		Failed:     ev.Err,
		DurationMS: float64(ev.Duration) / float64(time.Millisecond),
		Timestamp:  ev.Time.UnixMilli(),
	})
	if err != nil {
		return err
	}

	topic := p.Topic(ev.Scenario)
	var publishErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		token := p.cli.Publish(topic, p.qos, p.retain, payload)
		token.Wait()
		publishErr = token.Error()
		if publishErr == nil {
			p.log.Debugf("published scenario %s to %s", ev.Scenario, topic)
			return nil
		}
		p.log.Errorf("publish attempt %d failed: %v", attempt+1, publishErr)
		if attempt < p.maxRetries {
			time.Sleep(p.backoff * time.Duration(1<<attempt))
		}
	}
	monitoring.CaptureException(publishErr, map[string]string{
		"module":   "mqtt",
		"scenario": ev.Scenario,
		"topic":    topic,
	})
	return publishErr
}

// Topic returns the topic a scenario is published on. MQTT separators and
// wildcards in the scenario name are replaced by underscores.
func (p *Publisher) Topic(scenario string) string {
	name := strings.NewReplacer("/", "_", "+", "_", "#", "_").Replace(scenario)
	return p.prefix + "/scenarios/" + name
}

// Close gracefully closes the MQTT connection.
func (p *Publisher) Close() error {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
	return nil
}
