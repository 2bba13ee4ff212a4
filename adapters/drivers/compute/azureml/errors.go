package azureml

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// isNotFoundError checks if an error is a 404 Not Found error.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode == http.StatusNotFound
	}
	return false
}

// azureShorterErrorString renders ResponseError as "404 Not Found (ResourceNotFound)".
func azureShorterErrorString(err error) string {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return fmt.Sprintf("%d %s (%s)", respErr.StatusCode, http.StatusText(respErr.StatusCode), respErr.ErrorCode)
	}
	return err.Error()
}
