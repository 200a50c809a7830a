// Package browser provides the live page controller driving headless
// Chrome via Rod. One controller owns one rendered page; every probe in
// a session runs against it.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"github.com/PentesterFlow/OpenFuzzer/internal/logger"
	"github.com/PentesterFlow/OpenFuzzer/internal/parser"
)

// Config defines browser configuration.
type Config struct {
	Headless          bool          `json:"headless" yaml:"headless"`
	Timeout           time.Duration `json:"timeout" yaml:"timeout"`
	UserAgent         string        `json:"user_agent" yaml:"user_agent"`
	ViewportWidth     int           `json:"viewport_width" yaml:"viewport_width"`
	ViewportHeight    int           `json:"viewport_height" yaml:"viewport_height"`
	IgnoreHTTPSErrors bool          `json:"ignore_https_errors" yaml:"ignore_https_errors"`
}

// DefaultConfig returns default browser configuration.
func DefaultConfig() Config {
	return Config{
		Headless:          true,
		Timeout:           15 * time.Second,
		UserAgent:         "OpenFuzzer/1.0 (Security Scanner)",
		ViewportWidth:     1920,
		ViewportHeight:    1080,
		IgnoreHTTPSErrors: true,
	}
}

// RodController is the Rod-backed page controller.
type RodController struct {
	browser *rod.Browser
	page    *rod.Page
	config  Config
	log     *logger.Logger
}

var _ Controller = (*RodController)(nil)

// NewRodController launches a headless browser and opens the shared page.
func NewRodController(config Config, log *logger.Logger) (*RodController, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("browser")

	l := launcher.New()
	if config.Headless {
		l = l.Headless(true)
	}
	if config.IgnoreHTTPSErrors {
		l = l.Set("ignore-certificate-errors", "true")
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	browser = browser.Timeout(config.Timeout)

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	_ = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  config.ViewportWidth,
		Height: config.ViewportHeight,
	})

	if config.UserAgent != "" {
		_ = proto.NetworkSetUserAgentOverride{
			UserAgent: config.UserAgent,
		}.Call(page)
	}

	// Enable network events so submissions can capture responses.
	if err := (proto.NetworkEnable{}).Call(page); err != nil {
		log.Warnf("network events unavailable: %v", err)
	}

	return &RodController{
		browser: browser,
		page:    page,
		config:  config,
		log:     log,
	}, nil
}

// Navigate loads a URL in the shared page.
func (c *RodController) Navigate(ctx context.Context, url string) error {
	pg := c.page.Context(ctx)

	if err := pg.Navigate(url); err != nil {
		return err
	}
	if err := pg.WaitLoad(); err != nil {
		return err
	}

	// Short settle for late-rendering content.
	time.Sleep(200 * time.Millisecond)
	return nil
}

// CurrentURL returns the page's current URL.
func (c *RodController) CurrentURL() string {
	info, err := c.page.Info()
	if err != nil || info == nil {
		return ""
	}
	return info.URL
}

// FillField sets a field's value, replacing any existing content.
// Typing is preferred; fields that reject keyboard input (hidden,
// select) get their value assigned directly.
func (c *RodController) FillField(selector, value string) error {
	pg := c.page.Timeout(c.config.Timeout)

	el, err := pg.Element(selector)
	if err != nil {
		return fmt.Errorf("element %s not found: %w", selector, err)
	}

	if err := el.SelectAllText(); err == nil {
		if err := el.Input(value); err == nil {
			return nil
		}
	}

	if _, err := el.Eval(`(v) => { this.value = v }`, value); err != nil {
		return fmt.Errorf("could not set value on %s: %w", selector, err)
	}
	return nil
}

// Click clicks an element.
func (c *RodController) Click(selector string) error {
	pg := c.page.Timeout(c.config.Timeout)

	el, err := pg.Element(selector)
	if err != nil {
		return fmt.Errorf("element %s not found: %w", selector, err)
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// SubmitForm submits the form matching selector and captures the next
// document response. When no document response arrives before the
// timeout (AJAX forms, dead submits), the record is built from the
// page as it stands, with a zero status.
func (c *RodController) SubmitForm(selector string) (*ResponseRecord, error) {
	pg := c.page.Timeout(c.config.Timeout)

	var resp *proto.NetworkResponseReceived
	wait := pg.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type == proto.NetworkResourceTypeDocument {
			resp = e
			return true
		}
		return false
	})

	el, err := pg.Element(selector)
	if err != nil {
		return nil, fmt.Errorf("form %s not found: %w", selector, err)
	}

	if _, err := el.Eval(`() => { this.requestSubmit ? this.requestSubmit() : this.submit() }`); err != nil {
		return nil, fmt.Errorf("could not submit form %s: %w", selector, err)
	}

	wait()
	_ = pg.WaitLoad()

	if resp == nil {
		c.log.Debugf("no document response captured for %s", selector)
		html, _ := c.page.HTML()
		return &ResponseRecord{
			Status:  0,
			URL:     c.CurrentURL(),
			Headers: map[string]string{},
			Body:    html,
		}, nil
	}

	record := &ResponseRecord{
		Status:  resp.Response.Status,
		URL:     resp.Response.URL,
		Headers: headerMap(resp.Response.Headers),
	}

	body, err := proto.NetworkGetResponseBody{RequestID: resp.RequestID}.Call(c.page)
	if err == nil {
		record.Body = body.Body
	} else {
		// Response body already evicted; the rendered page is the
		// closest thing to it.
		html, _ := c.page.HTML()
		record.Body = html
	}

	return record, nil
}

// ExtractLinks returns the outbound links of the current page.
func (c *RodController) ExtractLinks() ([]string, error) {
	html, err := c.page.HTML()
	if err != nil {
		return nil, err
	}

	p, err := parser.NewHTMLParser(c.CurrentURL())
	if err != nil {
		return nil, err
	}
	return p.ExtractLinks(html)
}

// ExtractForms reconstructs the forms of the current page.
func (c *RodController) ExtractForms() ([]Form, error) {
	html, err := c.page.HTML()
	if err != nil {
		return nil, err
	}

	p, err := parser.NewHTMLParser(c.CurrentURL())
	if err != nil {
		return nil, err
	}

	parsed, err := p.ExtractForms(html)
	if err != nil {
		return nil, err
	}

	forms := make([]Form, 0, len(parsed))
	for _, pf := range parsed {
		form := Form{
			ID:            pf.ID,
			Name:          pf.Name,
			Action:        pf.Action,
			Method:        pf.Method,
			Selector:      pf.Selector,
			Fields:        make([]Field, 0, len(pf.Inputs)),
			SubmitTargets: pf.SubmitTargets,
		}
		for _, in := range pf.Inputs {
			form.Fields = append(form.Fields, Field{
				Name:     in.Name,
				ID:       in.ID,
				Type:     ParseFieldType(in.Type),
				Selector: in.Selector,
				Required: in.Required,
			})
		}
		forms = append(forms, form)
	}

	return forms, nil
}

// Close releases the browser.
func (c *RodController) Close() error {
	if c.page != nil {
		_ = c.page.Close()
	}
	if c.browser != nil {
		return c.browser.Close()
	}
	return nil
}

// headerMap flattens CDP network headers to plain strings.
func headerMap(h proto.NetworkHeaders) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = headerString(v)
	}
	return out
}

func headerString(v gson.JSON) string {
	return v.Str()
}
