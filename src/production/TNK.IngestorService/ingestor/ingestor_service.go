package tnkingestor

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	config "gitlab.com/hidrosense1/tnk.tank_server/src/production/TNK.Config"
	"gitlab.com/hidrosense1/tnk.tank_server/src/production/TNK.IngestorService/client"
	logger "gitlab.com/hidrosense1/tnk.tank_server/src/production/TNK.Logger"
	tnkmodels "gitlab.com/hidrosense1/tnk.tank_server/src/production/TNK.Models"
	validation "gitlab.com/hidrosense1/tnk.tank_server/src/production/TNK.Validation"
)

// Ingestor bridges tank-level readings published over MQTT into the HTTP
// ingestion endpoint. Each message is forwarded individually; malformed
// messages are logged and dropped.
type Ingestor struct {
	cfg        *config.IngestorConfig
	apiClient  *client.APIClient
	mqttClient mqtt.Client
	msgCh      chan tnkmodels.ReadingInput
	wg         sync.WaitGroup
	logger     *logger.Logger
}

func New(cfg *config.IngestorConfig, apiClient *client.APIClient, logger *logger.Logger) *Ingestor {
	return &Ingestor{
		cfg:       cfg,
		apiClient: apiClient,
		msgCh:     make(chan tnkmodels.ReadingInput, 1024),
		logger:    logger,
	}
}

func (i *Ingestor) Start(ctx context.Context) error {
	opts := mqtt.NewClientOptions().
		AddBroker(i.cfg.GetMQTTBrokerURL()).
		SetClientID(i.cfg.MQTT.ClientID).
		SetOrderMatters(false).
		SetKeepAlive(i.cfg.MQTT.KeepAlive).
		SetPingTimeout(i.cfg.MQTT.PingTimeout).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetCleanSession(false)

	if i.cfg.MQTT.BrokerUser != "" {
		opts.SetUsername(i.cfg.MQTT.BrokerUser)
		opts.SetPassword(i.cfg.MQTT.BrokerPass)
	}

	if i.cfg.MQTT.UseTLS {
		tlsCfg, err := i.tlsConfig(i.cfg.MQTT.CACertPath)
		if err != nil {
			return err
		}
		opts.SetTLSConfig(tlsCfg)
	}

	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		i.logger.Logger.Error().Err(err).Msg("MQTT connection lost")
	}
	opts.OnConnect = func(c mqtt.Client) {
		topic := i.cfg.MQTT.Topic
		if i.cfg.MQTT.SharedGroup != "" {
			topic = fmt.Sprintf("$share/%s/%s", i.cfg.MQTT.SharedGroup, i.cfg.MQTT.Topic)
		}
		i.logger.Logger.Info().Str("topic", topic).Msg("MQTT connected, subscribing to topic")
		if token := c.Subscribe(topic, 1, i.onMessage); token.Wait() && token.Error() != nil {
			i.logger.Logger.Error().Err(token.Error()).Str("topic", topic).Msg("Failed to subscribe to MQTT topic")
		}
	}

	i.mqttClient = mqtt.NewClient(opts)
	if tk := i.mqttClient.Connect(); tk.Wait() && tk.Error() != nil {
		return tk.Error()
	}

	i.wg.Add(1)
	go func() {
		defer i.wg.Done()
		i.forwarder(ctx)
	}()

	return nil
}

func (i *Ingestor) Stop() {
	if i.mqttClient != nil && i.mqttClient.IsConnected() {
		i.mqttClient.Disconnect(500)
	}
	close(i.msgCh)
	i.wg.Wait()
}

func (i *Ingestor) IsConnected() bool {
	return i.mqttClient != nil && i.mqttClient.IsConnected()
}

// onMessage decodes and validates one published reading, then queues it for
// forwarding so the paho callback never blocks on the API round-trip
func (i *Ingestor) onMessage(_ mqtt.Client, m mqtt.Message) {
	i.logger.Logger.Debug().Str("topic", m.Topic()).Str("payload", string(m.Payload())).Msg("Received MQTT message")

	var payload map[string]interface{}
	if err := json.Unmarshal(m.Payload(), &payload); err != nil {
		i.logger.Logger.Warn().Err(err).Str("topic", m.Topic()).Msg("Dropping non-JSON message")
		return
	}

	input, verr := validation.ParseReadingPayload(payload)
	if verr != nil {
		i.logger.Logger.Warn().
			Str("kind", string(verr.Kind)).
			Str("field", verr.Field).
			Str("topic", m.Topic()).
			Msg("Dropping invalid reading payload")
		return
	}

	i.msgCh <- *input
}

// forwarder submits queued readings to the API Service one at a time
func (i *Ingestor) forwarder(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case input, ok := <-i.msgCh:
			if !ok {
				return
			}
			reading, err := i.apiClient.SubmitReading(ctx, input)
			if err != nil {
				i.logger.Logger.Error().Err(err).Str("esp_id", input.EspID).Msg("Error submitting reading to API Service")
				continue
			}
			i.logger.Logger.Debug().
				Str("esp_id", reading.EspID).
				Int64("id", reading.ID).
				Msg("Reading forwarded")
		}
	}
}

func (i *Ingestor) tlsConfig(caFile string) (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if caFile == "" {
		return cfg, nil
	}
	ca, err := os.ReadFile(caFile)
	if err != nil {
		return nil, err
	}
	cp := x509.NewCertPool()
	if !cp.AppendCertsFromPEM(ca) {
		return nil, fmt.Errorf("bad CA file")
	}
	cfg.RootCAs = cp
	return cfg, nil
}
