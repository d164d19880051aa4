package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"detect-bot/internal/domain/entity"
	"detect-bot/internal/domain/port"
)

// Client — HTTP-клиент сервиса детекции. Дедлайн вызова задаёт
// вызывающая сторона через контекст, свой таймаут клиент не держит.
type Client struct {
	baseURL string
	http    *http.Client
}

// New создаёт клиент с базовым адресом сервиса.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// Predict вызывает POST /predict?imgName=<ключ> и разбирает ответ.
func (c *Client) Predict(ctx context.Context, imgKey string) (*entity.Prediction, error) {
	endpoint := fmt.Sprintf("%s/predict?imgName=%s", c.baseURL, url.QueryEscape(imgKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build predict request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call predict: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("predict: unexpected status %s: %s", resp.Status, body)
	}

	var pred entity.Prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return nil, fmt.Errorf("decode predict response: %w", err)
	}
	return &pred, nil
}

// Проверка реализации интерфейса
var _ port.Predictor = (*Client)(nil)
