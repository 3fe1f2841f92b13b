// File: internal/services/ai/errors.go
package ai

import (
	"fmt"

	"github.com/iyunix/go-newsbot/internal/domain"
)

// newProviderError wraps a backend failure so its message reaches the caller.
func newProviderError(provider, operation string, cause error) *domain.AppError {
	return domain.NewUpstreamError(fmt.Sprintf("%s %s", provider, operation), cause)
}
