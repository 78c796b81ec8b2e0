package inmovilla_client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alex-potenzzia/inmovilla-api-client/internal/contextkeys"
	"github.com/alex-potenzzia/inmovilla-api-client/internal/core/port"
)

// Config - учетные данные агентства и адрес API.
type Config struct {
	BaseURL  string
	Agency   string
	Password string
	Language int
	Domain   string
	Timeout  time.Duration
}

// Client - клиент процессного API Inmovilla.
// Все запросы - POST формы с полем param вида
// "agency;password;language;lostipos;<process>;<start>;<limit>;<where>;<order>".
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient - конструктор. Ошибка означает неверную конфигурацию, а не недоступность API.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Agency == "" {
		return nil, fmt.Errorf("inmovilla agency is required")
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("inmovilla password is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid inmovilla API URL %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// errParamSeparator - значение содержит ';' и сломало бы разбиение param на поля.
var errParamSeparator = errors.New("inmovilla param field must not contain ';'")

func (c *Client) buildParam(process string, start, limit int, where, order string) (string, error) {
	if strings.Contains(where, ";") || strings.Contains(order, ";") {
		return "", errParamSeparator
	}
	return strings.Join([]string{
		c.cfg.Agency,
		c.cfg.Password,
		strconv.Itoa(c.cfg.Language),
		"lostipos",
		process,
		strconv.Itoa(start),
		strconv.Itoa(limit),
		where,
		order,
	}, ";"), nil
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *Client) doRequest(ctx context.Context, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// process выполняет один процесс API и возвращает его секцию ответа:
// первый элемент - метаданные, остальные - записи.
func (c *Client) process(ctx context.Context, process string, start, limit int, where, order string) ([]json.RawMessage, error) {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "InmovillaClient",
		"process":   process,
		"start":     start,
		"limit":     limit,
	})

	param, err := c.buildParam(process, start, limit, where, order)
	if err != nil {
		clientLogger.Error("Refusing to send malformed request", err, port.Fields{"where": where})
		return nil, err
	}

	form := url.Values{}
	form.Set("param", param)
	form.Set("elDominio", c.cfg.Domain)
	form.Set("json", "1")

	clientLogger.Debug("Sending request to Inmovilla", port.Fields{"where": where})

	resp, err := c.doRequest(ctx, form)
	if err != nil {
		clientLogger.Error("Failed to perform request to Inmovilla", err, nil)
		return nil, fmt.Errorf("inmovilla request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err := fmt.Errorf("inmovilla returned non-200 status: %d, body: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
		clientLogger.Error("Received non-OK response from Inmovilla", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	var envelope map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		clientLogger.Error("Failed to decode response from Inmovilla", err, nil)
		return nil, fmt.Errorf("failed to decode inmovilla response: %w", err)
	}

	rawSection, ok := envelope[process]
	if !ok {
		if apiErr, ok := envelope["error"]; ok {
			msg, _ := scalarString(apiErr)
			if msg == "" {
				msg = string(apiErr)
			}
			return nil, fmt.Errorf("inmovilla error: %s", msg)
		}
		return nil, fmt.Errorf("inmovilla response has no %q section", process)
	}

	var section []json.RawMessage
	if err := json.Unmarshal(rawSection, &section); err != nil {
		return nil, fmt.Errorf("failed to decode inmovilla %q section: %w", process, err)
	}

	clientLogger.Debug("Received response from Inmovilla", port.Fields{"records": max(len(section)-1, 0)})
	return section, nil
}
