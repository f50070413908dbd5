package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"vitalaid/vitalaid/types"
	"vitalaid/vitalaid/utils/logging"
)

type successResponse struct {
	Result  string `json:"result"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorResponse struct {
	Result  string `json:"result"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(successResponse{
		Result:  "SUCCESS",
		Message: "request processed successfully",
		Data:    data,
	})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, string(types.InvalidInput), message)
}

// writeFailure maps the pipeline failure taxonomy onto HTTP statuses while
// keeping the taxonomy code in the body.
func writeFailure(w http.ResponseWriter, err error) {
	kind, ok := types.KindOf(err)
	if !ok {
		logging.ErrorLogger.Error("unclassified request failure", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
		return
	}

	var f *types.Failure
	message := err.Error()
	if errors.As(err, &f) {
		message = f.Detail
	}
	writeError(w, statusForKind(kind), string(kind), message)
}

func statusForKind(kind types.FailureKind) int {
	switch kind {
	case types.InvalidInput:
		return http.StatusBadRequest
	case types.NotFound:
		return http.StatusNotFound
	case types.Timeout:
		return http.StatusGatewayTimeout
	case types.UpstreamUnavailable, types.UpstreamError, types.MalformedAdvice:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{
		Result:  "ERROR",
		Code:    code,
		Message: message,
	})
}
