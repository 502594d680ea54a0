package handlers

const (
	ErrInvalidFormData       = "Invalid form data"
	ErrNotFound              = "Not found"
	ErrTooManyRequests       = "Too many requests"
	ErrServiceUnavailable    = "Service unavailable"
	ErrInternalServerError   = "Internal server error"
	ErrInternalServerErrorUC = "Internal Server Error"
)

// Query parameters carrying the flash shown after a redirect
const (
	NoticeParam = "notice"
	ErrorParam  = "error"
	EditParam   = "edit"
	PageParam   = "page"
)

// Flash keys, resolved to localized text by Messages.Flash
const (
	FlashCreated      = "created"
	FlashUpdated      = "updated"
	FlashDeleted      = "deleted"
	FlashCreateFailed = "create_failed"
	FlashUpdateFailed = "update_failed"
	FlashDeleteFailed = "delete_failed"
	FlashConflict     = "conflict"
	FlashNotFound     = "not_found"
	FlashTooLong      = "too_long"
)
