package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apiplugins "github.com/girder/girderctl/api/types/plugins"
)

func (c *client) GetPlugins(ctx context.Context) (apiplugins.Status, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("system", "plugins"), nil)
	if err != nil {
		return apiplugins.Status{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apiplugins.Status{}, err
	}
	defer resp.Body.Close()

	res := apiplugins.Status{}
	if err := unmarshalJsonResponse(
		resp, &res,
		MessageFor{
			Status4xx: fmt.Sprintf("reading plugins is rejected by server (status code = %d); admin only", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return apiplugins.Status{}, err
	}

	return res, nil
}

func (c *client) SetPlugins(ctx context.Context, names []string) ([]string, error) {
	value, err := json.Marshal(names)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(
		ctx, http.MethodPut, c.apipath("system", "plugins"),
		form(map[string]string{"plugins": string(value)}),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	enabled := []string{}
	if err := unmarshalJsonResponse(
		resp, &enabled,
		MessageFor{
			Status4xx: fmt.Sprintf("updating plugins is rejected by server (status code = %d); admin only", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}

	return enabled, nil
}
