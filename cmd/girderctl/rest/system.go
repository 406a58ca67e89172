package rest

import (
	"context"
	"fmt"
	"net/http"

	apisystem "github.com/girder/girderctl/api/types/system"
)

func (c *client) GetVersion(ctx context.Context) (apisystem.Version, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("system", "version"), nil)
	if err != nil {
		return apisystem.Version{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apisystem.Version{}, err
	}
	defer resp.Body.Close()

	res := apisystem.Version{}
	if err := unmarshalJsonResponse(
		resp, &res,
		MessageFor{
			Status4xx: fmt.Sprintf("[BUG] client is not compatible with the server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return apisystem.Version{}, err
	}

	return res, nil
}
