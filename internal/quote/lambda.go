package quote

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

// HandleAPIGateway adapts Handle to the Lambda proxy integration used by
// Netlify Functions. The ticker comes from the query string; a request
// without query parameters is treated as a missing ticker. The returned
// error is always nil so the platform never reports a failed invocation.
func (h *Handler) HandleAPIGateway(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	res := h.Handle(ctx, req.QueryStringParameters["ticker"])
	return events.APIGatewayProxyResponse{
		StatusCode: res.StatusCode,
		Headers:    res.Headers,
		Body:       res.Body,
	}, nil
}
