package middleware

import (
	"encoding/json"
	"net/http"
)

// Códigos estables de error de esta capa. El front distingue por código,
// no por mensaje.
const (
	CodeNoToken              = "NO_TOKEN"
	CodeTokenInvalid         = "TOKEN_INVALID"
	CodeTokenExpired         = "TOKEN_EXPIRED"
	CodeTenantMismatch       = "TENANT_MISMATCH"
	CodeTenantNotFound       = "TENANT_NOT_FOUND"
	CodeTenantInactive       = "TENANT_INACTIVE"
	CodeSubscriptionInactive = "SUBSCRIPTION_INACTIVE"
	CodePrincipalNotFound    = "PRINCIPAL_NOT_FOUND"
	CodeAccountInactive      = "ACCOUNT_INACTIVE"
	CodeNotAuthenticated     = "NOT_AUTHENTICATED"
	CodeInsufficientPerms    = "INSUFFICIENT_PERMISSIONS"
	CodeRoleNotAuthorized    = "ROLE_NOT_AUTHORIZED"
	CodeRateLimitExceeded    = "RATE_LIMIT_EXCEEDED"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeNotFound             = "NOT_FOUND"
	CodeConflict             = "CONFLICT"
	CodeOrderBadState        = "ORDER_BAD_STATE"
	CodeInternal             = "INTERNAL"
)

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// WriteError emite el shape uniforme {success:false, message, code}.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{
		Success: false,
		Message: message,
		Code:    code,
	})
}
