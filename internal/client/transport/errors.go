package transport

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/gophupload/internal/common"
)

// classify maps a storage failure onto the orchestrator's error kinds.
func classify(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", common.ErrCanceled, err)
	}

	// The SDK's operation error is verbose; the API error alone reads better
	// in a status line.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %w", common.ErrTransport, apiErr)
	}
	return fmt.Errorf("%w: %w", common.ErrTransport, err)
}
