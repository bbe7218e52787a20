package hub

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"

	"github.com/rllynch/pi-garage-smartthings/pkg/ssdp"
)

// sender delivers subscription requests to sensors with bounded
// retries. Sensors are small embedded boards on flaky Wi-Fi, so a
// couple of quick retries recover most transient failures.
type sender struct {
	client         *retryablehttp.Client
	callback       string
	callbackSuffix string
}

func newSender(callback, callbackSuffix string) *sender {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = 10 * time.Second
	client.Logger = retryLogger{}

	return &sender{
		client:         client,
		callback:       callback,
		callbackSuffix: callbackSuffix,
	}
}

// subscribe sends a SUBSCRIBE to the sensor at endpoint. Any 2xx
// response counts as success; sensors answer with 200 and an empty body.
func (sn *sender) subscribe(ctx context.Context, endpoint, path string) error {
	req := ssdp.BuildSubscribeRequest(endpoint, sn.callback, path, sn.callbackSuffix)

	httpReq, err := req.HTTP(ctx)
	if err != nil {
		return err
	}
	rreq, err := retryablehttp.FromRequest(httpReq)
	if err != nil {
		return fmt.Errorf("wrap subscribe request: %w", err)
	}

	resp, err := sn.client.Do(rreq)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("subscribe %s: unexpected status %d", endpoint, resp.StatusCode)
	}
	return nil
}

// retryLogger adapts the retry client's leveled logger to zerolog.
type retryLogger struct{}

func (retryLogger) Error(msg string, keysAndValues ...any) {
	log.Error().Fields(keysAndValues).Msg(msg)
}

func (retryLogger) Warn(msg string, keysAndValues ...any) {
	log.Warn().Fields(keysAndValues).Msg(msg)
}

func (retryLogger) Info(msg string, keysAndValues ...any) {
	log.Debug().Fields(keysAndValues).Msg(msg)
}

func (retryLogger) Debug(msg string, keysAndValues ...any) {
	log.Trace().Fields(keysAndValues).Msg(msg)
}
