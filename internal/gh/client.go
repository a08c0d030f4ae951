package gh

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"github.com/weehong/github-repository-metadata-generator/internal/utils/logutils"
	"golang.org/x/oauth2"
)

type Client struct {
	httpClient *http.Client
	gh         *githubv4.Client
	baseUrl    string
}

const defaultApiBaseUrl = "https://api.github.com"

// NewClient creates a GitHub API client authenticated with the given token.
// baseUrl overrides the API endpoint (for GitHub Enterprise); pass "" for
// github.com.
func NewClient(token string, baseUrl string) (*Client, error) {
	if token == "" {
		return nil, errors.Errorf("no GitHub token provided (do you need to configure one?)")
	}
	if baseUrl == "" {
		baseUrl = defaultApiBaseUrl
	}
	baseUrl = strings.TrimSuffix(baseUrl, "/")
	src := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := oauth2.NewClient(context.Background(), src)
	return &Client{httpClient, githubv4.NewClient(httpClient), baseUrl}, nil
}

func (c *Client) query(ctx context.Context, query any, variables map[string]any) (reterr error) {
	log := logrus.WithFields(logrus.Fields{
		"variables": logutils.Format("%#+v", variables),
	})
	log.Debug("executing GitHub API query...")
	startTime := time.Now()
	defer func() {
		log := log.WithFields(logrus.Fields{
			"elapsed": time.Since(startTime),
			"result":  logutils.Format("%#+v", query),
		})
		if reterr != nil {
			log.WithError(reterr).Debug("GitHub API query failed")
		} else {
			log.Debug("GitHub API query succeeded")
		}
	}()
	return c.gh.Query(ctx, query, variables)
}

// rest executes a request against the REST endpoint (e.g., /user/repos).
// It unmarshals the response into the given result type (unless it's nil).
// A 404 response is returned as an *HTTPError satisfying IsNotFound.
func (c *Client) rest(ctx context.Context, method string, endpoint string, body any, result any) error {
	if endpoint == "" || endpoint[0] != '/' {
		logrus.WithField("endpoint", endpoint).Panicf("malformed REST endpoint")
	}

	startTime := time.Now()
	url := c.baseUrl + endpoint
	log := logrus.WithFields(logrus.Fields{
		"method": method,
		"url":    url,
		"body":   logutils.Format("%#+v", body),
	})

	var reqBody io.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request body to JSON")
		}
		reqBody = bytes.NewBuffer(bodyJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	log.Debug("executing GitHub API request...")
	res, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to make API request")
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}
	log.WithFields(logrus.Fields{
		"elapsed": time.Since(startTime),
		"status":  res.StatusCode,
	}).Debug("GitHub API request completed")

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		log.WithFields(logrus.Fields{
			"status": res.StatusCode,
			"body":   string(resBody),
		}).Debug("GitHub API request failed")
		return errors.WithStack(&HTTPError{
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: res.StatusCode,
			Status:     res.Status,
		})
	}

	// Don't try to unmarshal into nil, it will return an error.
	if result == nil {
		return nil
	}

	if err := json.Unmarshal(resBody, result); err != nil {
		return errors.Wrap(err, "failed to unmarshal response body")
	}
	return nil
}

// Ptr returns a pointer to the argument.
// It's a convenience function to make working with the API easier: since Go
// disallows pointers-to-literals, and optional input fields are expressed as
// pointers, this function can be used to easily set optional fields to non-nil
// primitives.
func Ptr[T any](v T) *T {
	return &v
}
