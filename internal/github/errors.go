package github

import (
	"errors"
	"io"
	"net/http"

	gh "github.com/google/go-github/v82/github"

	apperrors "github.com/Kamar-Folarin/portfolio-api/internal/errors"
)

const maxErrorBodySize = 64 * 1024

// upstreamError converts a go-github error carrying an HTTP response into an
// UpstreamError. It returns nil for transport failures, which have no status.
func upstreamError(err error) error {
	var (
		rateErr     *gh.RateLimitError
		abuseErr    *gh.AbuseRateLimitError
		twoFactor   *gh.TwoFactorAuthError
		errResp     *gh.ErrorResponse
		acceptedErr *gh.AcceptedError
	)

	var (
		resp    *http.Response
		message string
	)
	switch {
	case errors.As(err, &rateErr):
		resp, message = rateErr.Response, rateErr.Message
	case errors.As(err, &abuseErr):
		resp, message = abuseErr.Response, abuseErr.Message
	case errors.As(err, &twoFactor):
		resp, message = twoFactor.Response, twoFactor.Message
	case errors.As(err, &errResp):
		resp, message = errResp.Response, errResp.Message
	case errors.As(err, &acceptedErr):
		return apperrors.NewUpstreamError(http.StatusAccepted, string(acceptedErr.Raw))
	}

	if resp == nil {
		return nil
	}
	return apperrors.NewUpstreamError(resp.StatusCode, responseBody(resp, message))
}

// responseBody prefers the raw body go-github keeps on the response and falls
// back to the decoded message.
func responseBody(resp *http.Response, fallback string) string {
	if resp.Body == nil {
		return fallback
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil || len(data) == 0 {
		return fallback
	}
	return string(data)
}
