// Package coolify triggers deployments through the Coolify HTTP API.
package coolify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/openclaw/clawkeeper/internal/constants"
	"github.com/openclaw/clawkeeper/internal/utils"
)

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Logger     *zap.SugaredLogger
}

func NewClient(baseURL, token string, logger *zap.SugaredLogger) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: constants.DefaultHTTPTimeout},
		Logger:     logger.Named("coolify"),
	}
}

// TriggerDeploy asks Coolify to deploy the resource. The call is synchronous
// from our side but only enqueues the deployment on Coolify's.
func (c *Client) TriggerDeploy(ctx context.Context, resourceID string, force bool) error {
	endpoint := fmt.Sprintf("%s/api/v1/deploy?uuid=%s&force=%t", c.BaseURL, url.QueryEscape(resourceID), force)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return utils.EngineErrorf("build deploy request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Errorw("Deploy trigger request failed", "error", err, "resource", resourceID)
		return utils.EngineErrorf("deploy trigger request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.Logger.Errorw("Deploy trigger rejected", "status", resp.StatusCode, "body", string(body), "resource", resourceID)
		return utils.EngineErrorf("deploy trigger returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	c.Logger.Infow("Deployment triggered", "resource", resourceID, "force", force)
	return nil
}
