package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	apicollections "github.com/girder/girderctl/api/types/collections"
)

func (c *client) GetCollection(ctx context.Context, id string) (apicollections.Detail, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("collection", id), nil)
	if err != nil {
		return apicollections.Detail{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apicollections.Detail{}, err
	}
	defer resp.Body.Close()

	res := apicollections.Detail{}
	if err := unmarshalJsonResponse(
		resp, &res,
		MessageFor{
			Status4xx: fmt.Sprintf("collection %s is not accessible (status code = %d)", id, resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return apicollections.Detail{}, err
	}

	return res, nil
}

func (c *client) GetCollectionRaw(ctx context.Context, id string) (map[string]any, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("collection", id), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	res := map[string]any{}
	if err := unmarshalJsonResponse(
		resp, &res,
		MessageFor{
			Status4xx: fmt.Sprintf("collection %s is not accessible (status code = %d)", id, resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}

	return res, nil
}

func (c *client) FindCollections(ctx context.Context, text string, limit int, offset int) ([]apicollections.Detail, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("collection"), nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	if text != "" {
		q.Add("text", text)
	}
	q.Add("limit", strconv.Itoa(limit))
	q.Add("offset", strconv.Itoa(offset))
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	found := make([]apicollections.Detail, 0, 5)
	if err := unmarshalJsonResponse(
		resp, &found,
		MessageFor{
			Status4xx: fmt.Sprintf("finding collections is rejected by server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}

	return found, nil
}

func (c *client) CreateCollection(ctx context.Context, spec apicollections.Spec) (apicollections.Detail, error) {
	req, err := c.newRequest(
		ctx, http.MethodPost, c.apipath("collection"),
		form(map[string]string{
			"name":        spec.Name,
			"description": spec.Description,
			"public":      strconv.FormatBool(spec.Public),
		}),
	)
	if err != nil {
		return apicollections.Detail{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apicollections.Detail{}, err
	}
	defer resp.Body.Close()

	res := apicollections.Detail{}
	if err := unmarshalJsonResponse(
		resp, &res,
		MessageFor{
			Status4xx: fmt.Sprintf("creating collection is rejected by server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return apicollections.Detail{}, err
	}

	return res, nil
}
