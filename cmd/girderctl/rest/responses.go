package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apierr "github.com/girder/girderctl/api/types/errors"
	cerr "github.com/girder/girderctl/cmd/girderctl/errors"
)

type MessageFor map[StatusCodeRange]string

// unmarshal http response which has json content.
//
// args:
//   - resp: http response to be processed.
//   - v: value which response should be.
//   - messageFor: title of error message for HTTP status code range.
//
// return:
//
//	error if...
//	- can not read response body
//	- response body is not shaped of v
//	- status code is in 4xx or 5xx
func unmarshalJsonResponse[T any](resp *http.Response, v *T, messageFor MessageFor) error {
	scr := StatusCodeRangeOf(resp)
	if scr <= Status2xx {

		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			message := fmt.Sprintf("unexpected error: %s (status code = %d)", err.Error(), resp.StatusCode)
			return cerr.NewCuiError(message, cerr.WithCause(err))
		}
		return nil
	}

	message, ok := messageFor[scr]
	if !ok {
		message = scr.String()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		e := cerr.NewCuiError(
			fmt.Sprintf(
				"%s\ncannot read server message: %s",
				message, err.Error(),
			),
			cerr.WithCause(err),
		)
		return e
	}

	detail := parseErrorMessage(body)
	return cerr.NewCuiError(
		message,
		cerr.WithDetail(func(summary string) (string, error) {
			return summary + "\n" + detail, nil
		}),
	)
}

func jsonUnmarshal[T any](buf []byte) (*T, error) {
	ret := new(T)
	if err := json.Unmarshal(buf, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// parseErrorMessage renders an error response body for display.
//
// Girder errors have the shape {"message": ..., "type": ..., "field": ...}.
// Anything else is shown as is.
func parseErrorMessage(body []byte) string {
	if eresp, err := jsonUnmarshal[apierr.ErrorMessage](body); err == nil {
		return eresp.String()
	}
	return string(body)
}
