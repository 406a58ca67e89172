package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	apiusers "github.com/girder/girderctl/api/types/users"
)

func (c *client) Authenticate(ctx context.Context, login string, password string) (apiusers.Authentication, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("user", "authentication"), nil)
	if err != nil {
		return apiusers.Authentication{}, err
	}
	req.SetBasicAuth(login, password)

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apiusers.Authentication{}, err
	}
	defer resp.Body.Close()

	res := apiusers.Authentication{}
	if err := unmarshalJsonResponse(
		resp, &res,
		MessageFor{
			Status4xx: fmt.Sprintf("login is rejected by server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return apiusers.Authentication{}, err
	}

	c.setToken(res.AuthToken.Token)
	return res, nil
}

func (c *client) AuthenticateWithKey(ctx context.Context) (apiusers.Token, error) {
	if c.apiKey == "" {
		return apiusers.Token{}, fmt.Errorf("no api key in profile")
	}

	req, err := c.newRequest(
		ctx, http.MethodPost, c.apipath("api_key", "token"),
		form(map[string]string{"key": c.apiKey}),
	)
	if err != nil {
		return apiusers.Token{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apiusers.Token{}, err
	}
	defer resp.Body.Close()

	res := struct {
		AuthToken apiusers.Token `json:"authToken"`
	}{}
	if err := unmarshalJsonResponse(
		resp, &res,
		MessageFor{
			Status4xx: fmt.Sprintf("api key is rejected by server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return apiusers.Token{}, err
	}

	c.setToken(res.AuthToken.Token)
	return res.AuthToken, nil
}

func (c *client) FindUsers(ctx context.Context, text string) ([]apiusers.Detail, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("user"), nil)
	if err != nil {
		return nil, err
	}

	if text != "" {
		q := req.URL.Query()
		q.Add("text", text)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	found := make([]apiusers.Detail, 0, 5)
	if err := unmarshalJsonResponse(
		resp, &found,
		MessageFor{
			Status4xx: fmt.Sprintf("finding users is rejected by server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}

	return found, nil
}

func (c *client) CreateUser(ctx context.Context, spec apiusers.Spec) (apiusers.Detail, error) {
	req, err := c.newRequest(
		ctx, http.MethodPost, c.apipath("user"),
		form(map[string]string{
			"login":     spec.Login,
			"email":     spec.Email,
			"firstName": spec.FirstName,
			"lastName":  spec.LastName,
			"password":  spec.Password,
			"admin":     strconv.FormatBool(spec.Admin),
		}),
	)
	if err != nil {
		return apiusers.Detail{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apiusers.Detail{}, err
	}
	defer resp.Body.Close()

	res := apiusers.Detail{}
	if err := unmarshalJsonResponse(
		resp, &res,
		MessageFor{
			Status4xx: fmt.Sprintf("creating user is rejected by server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return apiusers.Detail{}, err
	}

	return res, nil
}
