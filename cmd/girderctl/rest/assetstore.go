package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	apiassetstores "github.com/girder/girderctl/api/types/assetstores"
)

func (c *client) ListAssetstores(ctx context.Context) ([]apiassetstores.Detail, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("assetstore"), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	found := make([]apiassetstores.Detail, 0, 5)
	if err := unmarshalJsonResponse(
		resp, &found,
		MessageFor{
			Status4xx: fmt.Sprintf("listing assetstores is rejected by server (status code = %d); admin only", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}

	return found, nil
}

func (c *client) CreateAssetstore(ctx context.Context, spec apiassetstores.Spec) (apiassetstores.Detail, error) {
	req, err := c.newRequest(
		ctx, http.MethodPost, c.apipath("assetstore"),
		form(map[string]string{
			"name": spec.Name,
			"type": strconv.Itoa(int(spec.Type)),
			"root": spec.Root,
		}),
	)
	if err != nil {
		return apiassetstores.Detail{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apiassetstores.Detail{}, err
	}
	defer resp.Body.Close()

	res := apiassetstores.Detail{}
	if err := unmarshalJsonResponse(
		resp, &res,
		MessageFor{
			Status4xx: fmt.Sprintf("creating assetstore is rejected by server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return apiassetstores.Detail{}, err
	}

	return res, nil
}

func (c *client) SetAssetstoreCurrent(ctx context.Context, store apiassetstores.Detail) (apiassetstores.Detail, error) {
	// PUT assetstore/:id requires the full mutable state, not just the flag.
	req, err := c.newRequest(
		ctx, http.MethodPut, c.apipath("assetstore", store.Id),
		form(map[string]string{
			"name":    store.Name,
			"root":    store.Root,
			"current": "true",
		}),
	)
	if err != nil {
		return apiassetstores.Detail{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apiassetstores.Detail{}, err
	}
	defer resp.Body.Close()

	res := apiassetstores.Detail{}
	if err := unmarshalJsonResponse(
		resp, &res,
		MessageFor{
			Status4xx: fmt.Sprintf("updating assetstore %s is rejected by server (status code = %d)", store.Id, resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return apiassetstores.Detail{}, err
	}

	return res, nil
}
