package apiclient

// User-facing notification texts.
const (
	MsgOffline           = "network disconnected, please check your network settings"
	MsgBusinessFailure   = "server error, please try again later"
	MsgLoginExpired      = "login expired, please log in again"
	MsgForbidden         = "access denied"
	MsgNotFound          = "requested resource does not exist"
	MsgValidation        = "data validation failed"
	MsgTooManyRequests   = "too many requests, please try again later"
	MsgInternalServer    = "internal server error"
	MsgUnavailable       = "server temporarily unavailable, please try again later"
	MsgRequestFailed     = "network request failed"
	MsgTimeout           = "request timed out, please try again later"
	MsgConnectionFailed  = "network connection failed, please check your network settings"
	MsgRequestConfig     = "request configuration error"
	MsgNetworkNormal     = "network connection normal"
	MsgNetworkRestored   = "network connection restored"
	MsgNetworkDisconnect = "network disconnected"
)
