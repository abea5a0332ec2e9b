package middlewares

const (
	CtxUser      = "auth.user"
	CtxRequestID = "request_id"
)
