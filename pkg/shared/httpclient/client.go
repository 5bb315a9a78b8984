package httpclient

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/codescope-dev/codescope/pkg/shared/config"
)

// HclogAdapter adapts an hclog.Logger to be compatible with the resty log.Logger interface.
type HclogAdapter struct {
	logger hclog.Logger
}

// NewHclogAdapter creates a new adapter that will forward messages to a hclog.Logger.
func NewHclogAdapter(logger hclog.Logger) resty.Logger {
	return &HclogAdapter{logger: logger}
}

// Errorf logs a message at error level.
func (a *HclogAdapter) Errorf(format string, v ...interface{}) {
	a.logger.Error(fmt.Sprintf(format, v...))
}

// Warnf logs a message at warning level.
func (a *HclogAdapter) Warnf(format string, v ...interface{}) {
	a.logger.Warn(fmt.Sprintf(format, v...))
}

// Debugf logs a message at debug level.
func (a *HclogAdapter) Debugf(format string, v ...interface{}) {
	a.logger.Debug(fmt.Sprintf(format, v...))
}

// New initializes a resty client configured from the http_client section,
// with defaults applied for everything left unset.
func New(logger hclog.Logger, cfg *config.Config) *resty.Client {
	client := resty.New()
	if logger != nil {
		client.SetLogger(NewHclogAdapter(logger))
	}

	httpCfg := config.HttpClient{}
	if cfg != nil {
		httpCfg = cfg.HttpClient
	}

	client.SetRetryCount(config.SetThen(httpCfg.RetryCount, 5))
	client.SetRetryWaitTime(config.SetThen(httpCfg.RetryWaitTime, 1*time.Second))
	client.SetRetryMaxWaitTime(config.SetThen(httpCfg.RetryMaxWaitTime, 2*time.Second))
	client.SetTimeout(config.SetThen(httpCfg.Timeout, 30*time.Second))
	client.SetDebug(httpCfg.Debug)

	client.SetTLSClientConfig(&tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: !config.GetBoolValue(httpCfg.TlsClientConfig.Verify, true),
	})

	if httpCfg.Proxy.Host != "" {
		proxy := httpCfg.Proxy.Host
		if httpCfg.Proxy.Port != "" {
			proxy = fmt.Sprintf("%s:%s", httpCfg.Proxy.Host, httpCfg.Proxy.Port)
		}
		client.SetProxy(proxy)
	}

	return client
}
