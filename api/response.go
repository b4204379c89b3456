package api

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// Response messages shared with existing clients.
const (
	msgItemNotFound    = "Item not found"
	msgNoItemsFound    = "No items found"
	msgQueryFailed     = "Failed to query items"
	msgDeserializeFail = "Failed to deserialize item"
	msgAddFailed       = "Failed to add item to DynamoDB"
	msgItemAdded       = "Item added to DynamoDB"
	msgNotFound        = "Not found"
	msgMethodNotAllow  = "Method not allowed"
	msgInvalidBody     = "Invalid request body"
	msgHealthy         = "Healthy!"
	msgNotHealthy      = "Not healthy!"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// msgBody is the JSON shape of a successful write.
type msgBody struct {
	Msg string `json:"msg"`
}

func jsonResponse(status int, body any) events.LambdaFunctionURLResponse {
	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"error":"Failed to encode response"}`)
	}
	return events.LambdaFunctionURLResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(data),
	}
}

func errorResponse(status int, msg string) events.LambdaFunctionURLResponse {
	return jsonResponse(status, errorBody{Error: msg})
}

func textResponse(status int, body string) events.LambdaFunctionURLResponse {
	return events.LambdaFunctionURLResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "text/plain; charset=utf-8"},
		Body:       body,
	}
}
