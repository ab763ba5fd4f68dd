package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/izipay"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/models"
	"github.com/pkg/errors"
)

const (
	ModeEmbedded = "embedded"
	ModeRedirect = "redirect"

	defaultScriptTimeout = 15 * time.Second
)

// ErrSDKLoadTimeout means the form script never became reachable within
// the configured window. Fatal for the attempt; the buyer retries from
// the cart.
var ErrSDKLoadTimeout = errors.New("payment form script load timed out")

// Presenter builds what the result of checkout submission needs to render
// the hosted form: either an embedded-form configuration or a redirect to
// the gateway's hosted page.
type Presenter struct {
	Gateway         *izipay.Client
	Mode            string
	RedirectBaseURL string
	ScriptTimeout   time.Duration

	mu        sync.Mutex
	scriptURL string
}

type FormConfig struct {
	Mode        string `json:"mode"`
	FormToken   string `json:"form_token"`
	PublicKey   string `json:"public_key"`
	ScriptURL   string `json:"script_url,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// Present consumes the session once and returns the render configuration
// for the configured integration mode.
func (p *Presenter) Present(ctx context.Context, session *models.PaymentSession) (*FormConfig, error) {
	if session == nil || session.FormToken == "" {
		return nil, errors.New("missing payment session")
	}

	if p.Mode == ModeRedirect {
		return &FormConfig{
			Mode:        ModeRedirect,
			FormToken:   session.FormToken,
			RedirectURL: fmt.Sprintf("%s?kr-form-token=%s", p.RedirectBaseURL, session.FormToken),
		}, nil
	}

	scriptURL, err := p.ensureScript(ctx)
	if err != nil {
		return nil, err
	}

	return &FormConfig{
		Mode:      ModeEmbedded,
		FormToken: session.FormToken,
		PublicKey: session.PublicKey,
		ScriptURL: scriptURL,
	}, nil
}

// ensureScript resolves the form script URL once per process and reuses
// it afterwards. Failures are not cached so a later attempt can recover.
func (p *Presenter) ensureScript(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.scriptURL != "" {
		return p.scriptURL, nil
	}

	timeout := p.ScriptTimeout
	if timeout <= 0 {
		timeout = defaultScriptTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	scriptURL, err := p.Gateway.FetchScriptURL(ctx)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", ErrSDKLoadTimeout
		}
		return "", errors.Wrap(err, "failed loading payment form script")
	}

	p.scriptURL = scriptURL
	return scriptURL, nil
}
