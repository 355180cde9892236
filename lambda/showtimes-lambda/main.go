package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/drewfead/showtimes/internal/commands"
)

// lambdaHandler runs one CLI command whose arguments are the whitespace
// separated request body, e.g. "showtimes --cinema-id 56556 --skip-lookups".
func lambdaHandler(ctx context.Context, request events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	var out bytes.Buffer
	app := commands.NewApp()
	app.Writer = &out

	args := append([]string{"showtimes"}, strings.Fields(request.Body)...)
	if err := app.RunContext(ctx, args); err != nil {
		return events.LambdaFunctionURLResponse{Body: "error", StatusCode: http.StatusBadRequest}, fmt.Errorf("failed to execute app: %v", err)
	}

	return events.LambdaFunctionURLResponse{
		Body:       out.String(),
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}, nil
}

func main() {
	lambda.Start(lambdaHandler)
}
