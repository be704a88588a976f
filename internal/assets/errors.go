package assets

import (
	"errors"
	"strings"
)

// QuotaError marks an image-service failure as rate/quota limited, the only
// class of failure the fetcher retries.
type QuotaError struct {
	Err error
}

func (e *QuotaError) Error() string {
	return "image service quota exceeded: " + e.Err.Error()
}

func (e *QuotaError) Unwrap() error {
	return e.Err
}

// quotaSignatures are matched case-insensitively against errors from foreign
// SDKs that do not carry a typed classification.
var quotaSignatures = []string{"429", "quota", "rate limit", "resource_exhausted"}

// IsQuota reports whether err counts as a retryable quota failure: either a
// *QuotaError or an error whose text carries a known quota signature.
func IsQuota(err error) bool {
	if err == nil {
		return false
	}

	var qe *QuotaError
	if errors.As(err, &qe) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, sig := range quotaSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}

	return false
}
