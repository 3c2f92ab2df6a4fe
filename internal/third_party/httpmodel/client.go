package httpmodel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrMissingTranslation means the model answered without a translation field.
var ErrMissingTranslation = errors.New("model response has no translation")

// Client calls a translation model exposed as a plain HTTP endpoint.
// The endpoint receives {text, source_lang, target_lang} and answers
// {translation}.
type Client struct {
	endpoint string
	http     *resty.Client
}

func NewHTTPModelClient(endpoint string, timeout time.Duration) *Client {
	c := resty.New().SetTimeout(timeout)
	return &Client{endpoint: endpoint, http: c}
}

type translateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type translateResponse struct {
	Translation *string `json:"translation"`
}

// Translate posts the text to the model endpoint.
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	var resp translateResponse
	r, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(translateRequest{Text: text, SourceLang: sourceLang, TargetLang: targetLang}).
		ForceContentType("application/json").
		SetResult(&resp).
		Post(c.endpoint)
	if err != nil {
		return "", err
	}
	if !r.IsSuccess() {
		return "", fmt.Errorf("model translate: %s", r.Status())
	}
	if resp.Translation == nil {
		return "", ErrMissingTranslation
	}
	return *resp.Translation, nil
}
